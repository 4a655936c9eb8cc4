package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		hint string
		want []string
	}{
		{"no hint", "", []string{"en", "vi"}},
		{"english code", "en", []string{"en", "vi"}},
		{"english name", "English", []string{"en", "vi"}},
		{"vietnamese code", "vi", []string{"vi", "en"}},
		{"vietnamese name", "Vietnamese", []string{"vi", "en"}},
		{"vietnamese uppercase", "VI", []string{"vi", "en"}},
		{"unrecognized hint falls back", "fr", []string{"en", "vi"}},
		{"garbage hint falls back", "not a language", []string{"en", "vi"}},
		{"whitespace only", "   ", []string{"en", "vi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.hint))
		})
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		hint   string
		want   string
		wantOK bool
	}{
		{"en", "en", true},
		{"ENGLISH", "en", true},
		{" english ", "en", true},
		{"vi", "vi", true},
		{"vietnamese", "vi", true},
		{"fr", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			code, ok := Canonical(tt.hint)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestDetectEnglish(t *testing.T) {
	text := "Hello everyone and welcome back to the channel, today we are going " +
		"to talk about something that I have wanted to cover for a very long time."
	assert.Equal(t, "en", Detect(text))
}

func TestDetectVietnamese(t *testing.T) {
	text := "Xin chào các bạn, hôm nay chúng ta sẽ nói về một chủ đề rất thú vị " +
		"mà nhiều người đã yêu cầu trong thời gian qua."
	assert.Equal(t, "vi", Detect(text))
}

func TestDetectEmptyTextIsUnknown(t *testing.T) {
	assert.Equal(t, Unknown, Detect(""))
	assert.Equal(t, Unknown, Detect("   \n\t "))
}

func TestDetectUsesPrefixOnly(t *testing.T) {
	// A long mixed text: only the first 100 characters should matter.
	english := "This is a perfectly ordinary English sentence that keeps going for a while to fill the prefix. "
	padding := ""
	for i := 0; i < 50; i++ {
		padding += "xin chào các bạn "
	}
	assert.Equal(t, "en", Detect(english+padding))
}
