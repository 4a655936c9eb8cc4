package youtube

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner records invocations and plays back scripted results.
type fakeRunner struct {
	calls  [][]string
	stdout string
	stderr string
	err    error
	// onRun, when set, runs before returning the scripted result.
	onRun func(name string, args []string)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.onRun != nil {
		f.onRun(name, args)
	}
	return f.stdout, f.stderr, f.err
}

func containsArgPair(args []string, flag, value string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func TestDownloadSuccess(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "audio.mp3")
	runner := &fakeRunner{
		onRun: func(name string, args []string) {
			os.WriteFile(dest, []byte("fake mp3 data"), 0o644)
		},
	}
	d := NewAudioDownloader("yt-dlp")
	d.runner = runner

	if err := d.Download(context.Background(), "dQw4w9WgXcQ", dest, 0); err != nil {
		t.Fatalf("Download: %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(runner.calls))
	}
	args := runner.calls[0][1:]
	if !containsArgPair(args, "--extractor-args", "youtube:player_client=web") {
		t.Errorf("first attempt should use web client: %v", args)
	}
	if !containsArgPair(args, "-o", dest) {
		t.Errorf("missing output path: %v", args)
	}
	if args[len(args)-1] != "dQw4w9WgXcQ" {
		t.Errorf("video ID should be the last argument: %v", args)
	}
}

func TestDownloadProfileRotation(t *testing.T) {
	tests := []struct {
		attempt      int
		playerClient string
		wantUA       bool
	}{
		{0, "youtube:player_client=web", false},
		{1, "youtube:player_client=android", true},
		{2, "youtube:player_client=ios", true},
		{3, "youtube:player_client=web", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "audio.mp3")
			runner := &fakeRunner{
				onRun: func(name string, args []string) {
					os.WriteFile(dest, []byte("data"), 0o644)
				},
			}
			d := NewAudioDownloader("")
			d.runner = runner

			if err := d.Download(context.Background(), "dQw4w9WgXcQ", dest, tt.attempt); err != nil {
				t.Fatalf("Download: %v", err)
			}

			args := runner.calls[0][1:]
			if !containsArgPair(args, "--extractor-args", tt.playerClient) {
				t.Errorf("attempt %d: expected %s in %v", tt.attempt, tt.playerClient, args)
			}
			hasUA := false
			for _, a := range args {
				if a == "--user-agent" {
					hasUA = true
				}
			}
			if hasUA != tt.wantUA {
				t.Errorf("attempt %d: user agent present = %v, want %v", tt.attempt, hasUA, tt.wantUA)
			}
		})
	}
}

func TestDownloadEmptyFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "audio.mp3")
	runner := &fakeRunner{
		onRun: func(name string, args []string) {
			os.WriteFile(dest, nil, 0o644)
		},
	}
	d := NewAudioDownloader("")
	d.runner = runner

	err := d.Download(context.Background(), "dQw4w9WgXcQ", dest, 0)
	if !errors.Is(err, ErrEmptyDownload) {
		t.Errorf("expected ErrEmptyDownload, got %v", err)
	}
}

func TestDownloadMissingFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "audio.mp3")
	d := NewAudioDownloader("")
	d.runner = &fakeRunner{}

	err := d.Download(context.Background(), "dQw4w9WgXcQ", dest, 0)
	if !errors.Is(err, ErrEmptyDownload) {
		t.Errorf("expected ErrEmptyDownload, got %v", err)
	}
}

func TestDownloadYtdlpNotInstalled(t *testing.T) {
	d := NewAudioDownloader("/nonexistent/yt-dlp")
	d.runner = &fakeRunner{err: fmt.Errorf("start: %w", exec.ErrNotFound)}

	err := d.Download(context.Background(), "dQw4w9WgXcQ", filepath.Join(t.TempDir(), "a.mp3"), 0)
	if !errors.Is(err, ErrYtdlpNotInstalled) {
		t.Errorf("expected ErrYtdlpNotInstalled, got %v", err)
	}
}

func TestDownloadStderrSurfaced(t *testing.T) {
	d := NewAudioDownloader("")
	d.runner = &fakeRunner{
		stderr: "WARNING: something minor\nERROR: [youtube] dQw4w9WgXcQ: Sign in to confirm you're not a bot\n",
		err:    errors.New("exit status 1"),
	}

	err := d.Download(context.Background(), "dQw4w9WgXcQ", filepath.Join(t.TempDir(), "a.mp3"), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Sign in to confirm"
	if got := err.Error(); !strings.Contains(got, want) || !strings.Contains(got, "android") {
		t.Errorf("error should carry last stderr line and profile name, got %q", got)
	}
}

func TestDownloadEmptyVideoID(t *testing.T) {
	d := NewAudioDownloader("")
	d.runner = &fakeRunner{}
	if err := d.Download(context.Background(), "", "out.mp3", 0); err == nil {
		t.Error("expected error for empty video ID")
	}
}
