package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// ImageExtensions lists the input extensions the loader decodes
var ImageExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}

// GetFileExtension returns the lower-cased extension without the dot
func GetFileExtension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// IsImageFile reports whether filename has a decodable image extension
func IsImageFile(filename string) bool {
	return lo.Contains(ImageExtensions, GetFileExtension(filename))
}

// CheckImageFile verifies that path is an existing regular file with an
// image extension
func CheckImageFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input image: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input image %s is a directory", path)
	}
	if !IsImageFile(path) {
		return fmt.Errorf("input image %s: unsupported extension %q (want one of %s)",
			path, GetFileExtension(path), strings.Join(ImageExtensions, ", "))
	}
	return nil
}

// CropFilename names the crop of box index i with its label
func CropFilename(outputDir string, i int, label, format string) string {
	name := SanitizeFilename(label)
	if name == "" {
		name = "box"
	}
	return filepath.Join(outputDir, fmt.Sprintf("%03d_%s.%s", i+1, name, format))
}

// SanitizeFilename removes or replaces invalid characters in filenames
func SanitizeFilename(filename string) string {
	// Replace invalid characters with underscores
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " "}
	result := filename

	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}

	// Remove leading/trailing underscores and dots
	result = strings.Trim(result, "_.")

	return result
}
