package subtitles

import (
	"strings"
	"testing"
)

func TestToVTT(t *testing.T) {
	srt := "1\n00:00:00,000 --> 00:00:02,500\nhello, world\n\n"
	vtt := ToVTT(srt)

	if !strings.HasPrefix(vtt, "WEBVTT\n\n") {
		t.Fatalf("expected WEBVTT header, got %q", vtt)
	}
	if !strings.Contains(vtt, "00:00:00.000 --> 00:00:02.500") {
		t.Fatalf("expected period separators in timestamps, got %q", vtt)
	}
	// Text commas survive; only timestamp lines are rewritten.
	if !strings.Contains(vtt, "hello, world") {
		t.Fatalf("expected text comma preserved, got %q", vtt)
	}
}
