package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare ID", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch URL with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL123", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"live", "https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"whitespace trimmed", "  dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.in); got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidVideoID(t *testing.T) {
	valid := []string{"dQw4w9WgXcQ", "abc-DEF_123"}
	for _, id := range valid {
		if !IsValidVideoID(id) {
			t.Errorf("IsValidVideoID(%q) = false, want true", id)
		}
	}

	invalid := []string{"", "short", "waytoolongvideoid", "bad?chars!!", "dQw4w9WgXcQ2"}
	for _, id := range invalid {
		if IsValidVideoID(id) {
			t.Errorf("IsValidVideoID(%q) = true, want false", id)
		}
	}
}
