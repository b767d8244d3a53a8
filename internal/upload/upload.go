package upload

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaxSizeBytes is the upload ceiling. Fixed product constant.
const MaxSizeBytes = 5 << 20 // 5 MB

// allowedMIME is the image allow-list, keyed by sniffed content type.
var allowedMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Saver validates and writes uploaded images under the public asset path.
type Saver struct {
	Dir string
}

func NewSaver(dir string) *Saver {
	return &Saver{Dir: dir}
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeName strips path components and unsafe characters from the
// client-supplied filename.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = unsafeNameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "upload"
	}
	return name
}

// Save validates the content against the MIME allow-list and size ceiling,
// then writes it with a collision-resistant name (sanitized original name +
// timestamp). Returns the stored filename.
func (s *Saver) Save(originalName string, r io.Reader) (string, error) {
	// Read one byte past the limit to distinguish "exactly at" from "over".
	data, err := io.ReadAll(io.LimitReader(r, MaxSizeBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxSizeBytes {
		return "", fmt.Errorf("file exceeds %d byte limit", MaxSizeBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty upload")
	}

	// Sniff the content type; the client-supplied extension is not trusted.
	mime := http.DetectContentType(data)
	ext, ok := allowedMIME[mime]
	if !ok {
		return "", fmt.Errorf("unsupported file type %q", mime)
	}

	filename := fmt.Sprintf("%s-%d%s", sanitizeName(originalName), time.Now().UnixNano(), ext)

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return filename, nil
}
