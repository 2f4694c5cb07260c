package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReplaceExt returns path with its extension swapped for ext. ext may be
// given with or without the leading dot.
func ReplaceExt(path, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// SiblingWithSuffix returns path with suffix inserted before the extension:
// /a/movie.mp4 + "_subtitled" -> /a/movie_subtitled.mp4.
func SiblingWithSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
