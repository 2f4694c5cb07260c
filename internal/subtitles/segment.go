package subtitles

import (
	"fmt"
	"strings"

	"scribe/internal/services"
)

// Segment is a single timed subtitle unit. Index is 1-based and contiguous
// within a Transcript.
type Segment struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Transcript is the ordered output of a transcription backend. Segments are
// sorted by start time and non-overlapping; Normalize enforces this before a
// Transcript is handed to later stages.
type Transcript struct {
	Segments []Segment
	Language string
	Source   string
}

// OrderPolicy controls how Normalize treats invariant violations.
type OrderPolicy int

const (
	// Strict fails on any ordering or shape violation.
	Strict OrderPolicy = iota
	// RepairOverlaps drops segments that overlap their predecessor or carry
	// no usable timing or text, keeping the rest.
	RepairOverlaps
)

// Normalize validates the segment ordering invariant and returns a sequence
// with contiguous 1-based indices. Under Strict, any violation returns
// ErrMalformedTranscript. Under RepairOverlaps, offending segments are
// dropped and the count of dropped segments is reported.
func Normalize(segments []Segment, policy OrderPolicy) ([]Segment, int, error) {
	out := make([]Segment, 0, len(segments))
	dropped := 0
	prevEnd := 0.0

	for i, seg := range segments {
		if reason := segmentDefect(seg, prevEnd); reason != "" {
			if policy == Strict {
				return nil, 0, services.Wrap(services.ErrMalformedTranscript, "subtitles", "normalize",
					fmt.Sprintf("segment %d: %s", i+1, reason), nil)
			}
			dropped++
			continue
		}
		seg.Index = len(out) + 1
		out = append(out, seg)
		prevEnd = seg.End
	}

	return out, dropped, nil
}

func segmentDefect(seg Segment, prevEnd float64) string {
	switch {
	case strings.TrimSpace(seg.Text) == "":
		return "empty text"
	case seg.Start < 0:
		return fmt.Sprintf("negative start %.3f", seg.Start)
	case seg.End <= seg.Start:
		return fmt.Sprintf("end %.3f not after start %.3f", seg.End, seg.Start)
	case seg.Start < prevEnd:
		return fmt.Sprintf("start %.3f overlaps previous end %.3f", seg.Start, prevEnd)
	}
	return ""
}

// Validate checks the ordering and indexing invariants without modifying the
// transcript.
func (t Transcript) Validate() error {
	prevEnd := 0.0
	for i, seg := range t.Segments {
		if seg.Index != i+1 {
			return services.Wrap(services.ErrMalformedTranscript, "subtitles", "validate",
				fmt.Sprintf("segment %d: index %d is not contiguous", i+1, seg.Index), nil)
		}
		if reason := segmentDefect(seg, prevEnd); reason != "" {
			return services.Wrap(services.ErrMalformedTranscript, "subtitles", "validate",
				fmt.Sprintf("segment %d: %s", i+1, reason), nil)
		}
		prevEnd = seg.End
	}
	return nil
}
