package youtube

import (
	"strings"
	"testing"
)

var formatEntries = []CaptionEntry{
	{Start: 0, Duration: 1.5, Text: "Hello world"},
	{Start: 61.25, Duration: 2.0, Text: "One minute in"},
	{Start: 3661.5, Duration: 0.5, Text: "Over an hour"},
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"txt", FormatText, false},
		{"srt", FormatSRT, false},
		{"SRT", FormatSRT, false},
		{"vtt", FormatVTT, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText(formatEntries)
	want := "Hello world\nOne minute in\nOver an hour"
	if got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

func TestPlainTextSkipsEmpty(t *testing.T) {
	entries := []CaptionEntry{{Text: "a"}, {Text: ""}, {Text: "b"}}
	if got := PlainText(entries); got != "a\nb" {
		t.Errorf("PlainText = %q", got)
	}
}

func TestConvertSRT(t *testing.T) {
	out, err := Convert(formatEntries, FormatSRT)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	for _, want := range []string{
		"1\n00:00:00,000 --> 00:00:01,500\nHello world",
		"2\n00:01:01,250 --> 00:01:03,250\nOne minute in",
		"3\n01:01:01,500 --> 01:01:02,000\nOver an hour",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SRT output missing %q:\n%s", want, out)
		}
	}
}

func TestConvertVTT(t *testing.T) {
	out, err := Convert(formatEntries, FormatVTT)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if !strings.HasPrefix(out, "WEBVTT\n") {
		t.Errorf("VTT output missing header:\n%s", out)
	}
	if !strings.Contains(out, "00:00:00.000 --> 00:00:01.500\nHello world") {
		t.Errorf("VTT output missing first cue:\n%s", out)
	}
	if !strings.Contains(out, "01:01:01.500 --> 01:01:02.000\nOver an hour") {
		t.Errorf("VTT output missing hour cue:\n%s", out)
	}
}

func TestConvertUnknownFormat(t *testing.T) {
	if _, err := Convert(formatEntries, Format("docx")); err == nil {
		t.Error("expected error for unknown format")
	}
}
