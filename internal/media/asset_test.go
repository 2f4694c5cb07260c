package media

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/services"
)

func TestNewAsset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, []byte("not really a video"), 0o644); err != nil {
		t.Fatal(err)
	}

	asset, err := NewAsset(path, 10.5)
	if err != nil {
		t.Fatalf("NewAsset returned error: %v", err)
	}
	if asset.Path != path {
		t.Fatalf("unexpected path: %q", asset.Path)
	}
	if asset.Size == 0 {
		t.Fatal("expected non-zero size")
	}
	if asset.Duration != 10.5 {
		t.Fatalf("unexpected duration: %v", asset.Duration)
	}
	if !asset.Exists() {
		t.Fatal("expected asset to exist")
	}
}

func TestNewAssetMissingFile(t *testing.T) {
	_, err := NewAsset(filepath.Join(t.TempDir(), "missing.mp4"), 0)
	if !errors.Is(err, services.ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestNewAssetRejectsDirectory(t *testing.T) {
	_, err := NewAsset(t.TempDir(), 0)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
