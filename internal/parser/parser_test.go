package parser

import "testing"

func TestIsDocument(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want bool
	}{
		{"notes/a.md", ".md", true},
		{"notes/A.MD", ".md", true},
		{"notes/a.markdown", ".md", false},
		{"notes/a.markdown", ".markdown", true},
		{"image.png", ".md", false},
		{"md", ".md", false},
		{"a.md", "", false},
	}
	for _, tt := range tests {
		if got := IsDocument(tt.name, tt.ext); got != tt.want {
			t.Errorf("IsDocument(%q, %q) = %v, want %v", tt.name, tt.ext, got, tt.want)
		}
	}
}

func TestTrimDocExtension(t *testing.T) {
	if got := TrimDocExtension("dir/page.md", ".md"); got != "dir/page" {
		t.Errorf("expected %q, got %q", "dir/page", got)
	}
	if got := TrimDocExtension("dir/photo.png", ".md"); got != "dir/photo.png" {
		t.Errorf("expected unchanged name, got %q", got)
	}
}
