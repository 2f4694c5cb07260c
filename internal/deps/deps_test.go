package deps

import (
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Unset", Command: "  "}})
	if results[0].Available {
		t.Fatal("expected unset command to be unavailable")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail %q", results[0].Detail)
	}
}

func TestRequirementsWhisperOptionalWithCloud(t *testing.T) {
	cfg := config.Default()
	cfg.Whisper.Command = "whisper"

	for _, req := range Requirements(&cfg) {
		if req.Name == "Whisper" && req.Optional {
			t.Fatal("whisper must be required when cloud is disabled")
		}
	}

	cfg.Cloud.Enabled = true
	found := false
	for _, req := range Requirements(&cfg) {
		if req.Name == "Whisper" {
			found = true
			if !req.Optional {
				t.Fatal("whisper must be optional when cloud is enabled")
			}
		}
	}
	if !found {
		t.Fatal("whisper requirement missing")
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []Status{
		{Name: "FFmpeg", Available: true},
		{Name: "FFprobe", Available: false},
		{Name: "Whisper", Available: false, Optional: true},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0] != "FFprobe" {
		t.Fatalf("unexpected missing set %v", missing)
	}
}
