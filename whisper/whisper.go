// Package whisper runs speech-to-text over local audio files using the
// whisper.cpp command line tool.
package whisper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Sentinel errors for transcription.
var (
	// ErrWhisperNotInstalled indicates the whisper binary was not found.
	ErrWhisperNotInstalled = errors.New("whisper: binary not installed")
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("whisper: model file not found")
)

// DefaultTimeout bounds a single transcription run.
const DefaultTimeout = 10 * time.Minute

// commandRunner abstracts process execution for tests.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Engine transcribes audio files with whisper.cpp. Runs are serialized:
// the model is memory-heavy and concurrent invocations thrash the machine.
type Engine struct {
	// Path is the whisper executable (whisper-cli or compatible).
	Path string
	// Model is the path to the ggml model file.
	Model string
	// Timeout bounds a single run. Zero uses DefaultTimeout.
	Timeout time.Duration

	mu      sync.Mutex
	runner  commandRunner
	checked bool
}

// New creates a transcription engine. Empty path defaults to "whisper-cli"
// resolved from PATH.
func New(path, model string) *Engine {
	if path == "" {
		path = "whisper-cli"
	}
	return &Engine{
		Path:   path,
		Model:  model,
		runner: execRunner{},
	}
}

// Transcribe converts the audio file to text. A non-empty langHint is
// passed to the model; otherwise whisper auto-detects the language.
// The returned text may be empty when the audio carries no speech.
func (e *Engine) Transcribe(ctx context.Context, audioPath, langHint string) (string, error) {
	if audioPath == "" {
		return "", fmt.Errorf("audio path is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkModel(); err != nil {
		return "", err
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// whisper-cli writes the transcript to <outputBase>.txt when -otxt
	// is given.
	outputBase := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	outputPath := outputBase + ".txt"

	args := []string{
		"-m", e.Model,
		"-f", audioPath,
		"-of", outputBase,
		"-otxt",
	}
	if langHint != "" {
		args = append(args, "-l", langHint)
	}

	_, stderr, err := e.runner.Run(ctx, e.Path, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrWhisperNotInstalled, e.Path)
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("transcription timed out after %s: %w", timeout, ctx.Err())
		}
		if msg := strings.TrimSpace(stderr); msg != "" {
			return "", fmt.Errorf("whisper run failed: %s", firstLine(msg))
		}
		return "", fmt.Errorf("whisper run failed: %w", err)
	}

	text, err := os.ReadFile(outputPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}
	os.Remove(outputPath)

	return strings.TrimSpace(string(text)), nil
}

// checkModel verifies the model file once per engine.
func (e *Engine) checkModel() error {
	if e.checked {
		return nil
	}
	if e.Model == "" {
		return fmt.Errorf("%w: no model configured", ErrModelNotFound)
	}
	if _, err := os.Stat(e.Model); err != nil {
		return fmt.Errorf("%w: %s", ErrModelNotFound, e.Model)
	}
	e.checked = true
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
