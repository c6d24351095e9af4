package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var unsafeChars = regexp.MustCompile(`[^\w.-]`)

// splitName returns the sanitized base name and lower-cased extension.
func splitName(filename string) (string, string) {
	filename = filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if filename == "." || filename == "/" {
		return "upload", ""
	}
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = unsafeChars.ReplaceAllString(base, "_")
	if base == "" {
		base = "upload"
	}
	return base, ext
}

// localName is base + millisecond timestamp + random suffix + ext.
func localName(filename string, now time.Time) string {
	base, ext := splitName(filename)
	suffix := gonanoid.MustGenerate("0123456789", 9)
	return fmt.Sprintf("%s%d-%s%s", base, now.UnixMilli(), suffix, ext)
}

// timestampName is <unix-ms>_<base><ext>.
func timestampName(filename string, now time.Time) string {
	base, ext := splitName(filename)
	return fmt.Sprintf("%d_%s%s", now.UnixMilli(), base, ext)
}

// uuidName keeps only the extension.
func uuidName(prefix, filename string) string {
	_, ext := splitName(filename)
	return prefix + uuid.NewString() + ext
}
