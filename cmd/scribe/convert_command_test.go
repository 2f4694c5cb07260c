package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConvertCommandWritesVTT(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "movie.srt")
	srt := "1\n00:00:00,000 --> 00:00:02,500\nhello, world\n\n"
	if err := os.WriteFile(source, []byte(srt), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newConvertCommand()
	cmd.SetArgs([]string{source})
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	target := filepath.Join(dir, "movie.vtt")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read vtt: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "WEBVTT\n\n") {
		t.Fatalf("missing WEBVTT header:\n%s", text)
	}
	if !strings.Contains(text, "00:00:00.000 --> 00:00:02.500") {
		t.Fatalf("timing line not converted:\n%s", text)
	}
	if !strings.Contains(text, "hello, world") {
		t.Fatalf("cue text must keep its commas:\n%s", text)
	}
	if !strings.Contains(out.String(), target) {
		t.Fatalf("expected output path in command output, got %q", out.String())
	}
}

func TestConvertCommandExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "movie.srt")
	if err := os.WriteFile(source, []byte("1\n00:00:00,000 --> 00:00:01,000\nhi\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "custom.vtt")

	cmd := newConvertCommand()
	cmd.SetArgs([]string{source, "-o", target})
	cmd.SetOut(new(bytes.Buffer))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected output at %s: %v", target, err)
	}
}

func TestConvertCommandMissingInput(t *testing.T) {
	cmd := newConvertCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.srt")})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing input")
	}
}
