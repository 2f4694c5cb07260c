package transcribe

import (
	"fmt"
	"strconv"
	"strings"

	"scribe/internal/subtitles"
)

// Item types in the remote result document. Pronunciation items carry their
// own timing; punctuation items do not and attach to the preceding word.
const (
	itemTypePronunciation = "pronunciation"
	itemTypePunctuation   = "punctuation"
)

// ResultDocument is the transcript JSON a completed job points at.
type ResultDocument struct {
	Results struct {
		LanguageCode string       `json:"language_code"`
		Items        []ResultItem `json:"items"`
	} `json:"results"`
}

// ResultItem is one recognized token in the result document. Times arrive as
// decimal strings.
type ResultItem struct {
	Type         string `json:"type"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Alternatives []struct {
		Content string `json:"content"`
	} `json:"alternatives"`
}

func (i ResultItem) content() string {
	if len(i.Alternatives) == 0 {
		return ""
	}
	return strings.TrimSpace(i.Alternatives[0].Content)
}

// wordSegments converts the item list to one segment per pronunciation item,
// the reference-compatible default. Punctuation items are discarded.
func wordSegments(items []ResultItem) ([]subtitles.Segment, error) {
	segments := make([]subtitles.Segment, 0, len(items))
	for i, item := range items {
		if !strings.EqualFold(item.Type, itemTypePronunciation) {
			continue
		}
		start, end, err := itemTimes(item, i)
		if err != nil {
			return nil, err
		}
		segments = append(segments, subtitles.Segment{Start: start, End: end, Text: item.content()})
	}
	return segments, nil
}

// sentenceSegments groups pronunciation items into sentence-level segments.
// Punctuation attaches to the preceding word without a space; a segment
// closes on sentence-ending punctuation.
func sentenceSegments(items []ResultItem) ([]subtitles.Segment, error) {
	var segments []subtitles.Segment
	var sb strings.Builder
	var start, end float64
	open := false

	flush := func() {
		if !open {
			return
		}
		segments = append(segments, subtitles.Segment{Start: start, End: end, Text: sb.String()})
		sb.Reset()
		open = false
	}

	for i, item := range items {
		switch {
		case strings.EqualFold(item.Type, itemTypePronunciation):
			s, e, err := itemTimes(item, i)
			if err != nil {
				return nil, err
			}
			if !open {
				start = s
				open = true
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteString(item.content())
			end = e
		case strings.EqualFold(item.Type, itemTypePunctuation):
			if !open {
				continue
			}
			mark := item.content()
			sb.WriteString(mark)
			if isSentenceEnd(mark) {
				flush()
			}
		}
	}
	flush()
	return segments, nil
}

func isSentenceEnd(mark string) bool {
	switch mark {
	case ".", "?", "!":
		return true
	}
	return false
}

func itemTimes(item ResultItem, index int) (float64, float64, error) {
	start, err := strconv.ParseFloat(strings.TrimSpace(item.StartTime), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("item %d: invalid start_time %q", index+1, item.StartTime)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(item.EndTime), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("item %d: invalid end_time %q", index+1, item.EndTime)
	}
	return start, end, nil
}
