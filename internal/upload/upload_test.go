package upload

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Minimal valid PNG header; DetectContentType only needs the magic bytes.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestSaveAcceptsAllowedImage(t *testing.T) {
	dir := t.TempDir()
	s := NewSaver(dir)

	name, err := s.Save("Family Photo (1).png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(name, "Family-Photo-1") || !strings.HasSuffix(name, ".png") {
		t.Errorf("unexpected stored name %q", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestSaveRejectsDisallowedType(t *testing.T) {
	s := NewSaver(t.TempDir())

	if _, err := s.Save("evil.png", strings.NewReader("%PDF-1.4 not an image")); err == nil {
		t.Fatal("non-image content accepted")
	}
}

func TestSaveRejectsOversized(t *testing.T) {
	s := NewSaver(t.TempDir())

	big := make([]byte, MaxSizeBytes+1)
	copy(big, pngHeader)
	if _, err := s.Save("big.png", bytes.NewReader(big)); err == nil {
		t.Fatal("oversized upload accepted")
	}
}

func TestSaveRejectsEmpty(t *testing.T) {
	s := NewSaver(t.TempDir())
	if _, err := s.Save("empty.png", strings.NewReader("")); err == nil {
		t.Fatal("empty upload accepted")
	}
}

func TestSanitizeNameStripsPathTricks(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "../../etc/passwd", want: "passwd"},
		{in: "nice photo.jpg", want: "nice-photo"},
		{in: "///", want: "upload"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
