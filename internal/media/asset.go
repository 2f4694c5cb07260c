package media

import (
	"fmt"
	"os"
	"strings"

	"scribe/internal/services"
)

// Asset is an immutable handle to a media file on disk. Stages produce and
// consume assets; the file itself is the artifact, the Asset records what was
// known about it at creation time.
type Asset struct {
	Path     string
	Size     int64
	Duration float64
}

// NewAsset stats path and returns an asset handle. The duration is optional;
// pass 0 when unknown.
func NewAsset(path string, duration float64) (Asset, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Asset{}, services.Wrap(services.ErrValidation, "media", "new asset", "empty path", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Asset{}, services.Wrap(services.ErrMediaNotFound, "media", "new asset", fmt.Sprintf("file not found: %s", path), err)
		}
		return Asset{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Asset{}, services.Wrap(services.ErrValidation, "media", "new asset", fmt.Sprintf("%s is a directory", path), nil)
	}
	return Asset{Path: path, Size: info.Size(), Duration: duration}, nil
}

// Exists reports whether the asset's file is still present on disk.
func (a Asset) Exists() bool {
	info, err := os.Stat(a.Path)
	return err == nil && !info.IsDir()
}
