package sanitizer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	dots       = regexp.MustCompile(`\.{2,}`)
	unsafe     = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
)

// SanitizeFileName cleans up a recording name for use as a local file name.
// Returns the sanitized name and a boolean indicating if changes were made
func SanitizeFileName(name string) (string, bool) {
	original := name

	// Trim leading/trailing whitespace
	cleaned := strings.TrimSpace(name)

	// Drop characters that are not allowed in file names
	cleaned = unsafe.ReplaceAllString(cleaned, "_")

	// Replace internal spaces with dots
	cleaned = whitespace.ReplaceAllString(cleaned, ".")

	// Clean up any double dots that might result
	cleaned = dots.ReplaceAllString(cleaned, ".")

	// Trim leading/trailing dots that might result from the above operations
	cleaned = strings.Trim(cleaned, ".")

	return cleaned, cleaned != original
}

// NeedsSanitization checks if a name needs to be sanitized
func NeedsSanitization(name string) bool {
	_, needsCleaning := SanitizeFileName(name)
	return needsCleaning
}

// LocalPath maps a recorder relative path such as "videos1/x.mp4" to a path
// under baseDir. Every segment is sanitized so the result cannot escape baseDir.
func LocalPath(baseDir, relativePath string) (string, error) {
	segments := strings.FieldsFunc(filepath.ToSlash(relativePath), func(r rune) bool { return r == '/' })

	parts := []string{baseDir}
	for _, seg := range segments {
		clean, _ := SanitizeFileName(seg)
		if clean == "" {
			continue
		}
		parts = append(parts, clean)
	}
	if len(parts) == 1 {
		return "", fmt.Errorf("invalid recording path %q", relativePath)
	}

	return filepath.Join(parts...), nil
}
