package subtitles

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatSRT renders a transcript as SRT text. Each segment becomes a block of
// the form "index\nstart --> end\ntext\n\n".
func FormatSRT(t Transcript) string {
	var sb strings.Builder
	for _, seg := range t.Segments {
		sb.WriteString(strconv.Itoa(seg.Index))
		sb.WriteByte('\n')
		sb.WriteString(FormatTimestamp(seg.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(seg.End))
		sb.WriteByte('\n')
		sb.WriteString(seg.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// FormatTimestamp renders seconds as the SRT timestamp HH:MM:SS,mmm. Hours
// are not wrapped at 24.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(math.Round(seconds * 1000))
	hours := totalMillis / 3_600_000
	minutes := totalMillis % 3_600_000 / 60_000
	secs := totalMillis % 60_000 / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseSRT is the inverse of FormatSRT. Blocks are separated by blank lines;
// a block needs an index line, a timestamp range, and at least one text line.
// Malformed blocks are skipped and reported as diagnostics rather than
// failing the whole parse.
func ParseSRT(text string) ([]Segment, []string) {
	content := strings.ReplaceAll(text, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(content), "\n\n")

	segments := make([]Segment, 0, len(blocks))
	var diagnostics []string
	for i, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		seg, err := parseBlock(block)
		if err != nil {
			diagnostics = append(diagnostics, fmt.Sprintf("block %d: %v", i+1, err))
			continue
		}
		segments = append(segments, seg)
	}
	return segments, diagnostics
}

func parseBlock(block string) (Segment, error) {
	lines := strings.Split(block, "\n")
	if len(lines) < 3 {
		return Segment{}, fmt.Errorf("expected at least 3 lines, got %d", len(lines))
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || index < 1 {
		return Segment{}, fmt.Errorf("invalid index line %q", lines[0])
	}

	parts := strings.Split(lines[1], "-->")
	if len(parts) != 2 {
		return Segment{}, fmt.Errorf("invalid timestamp line %q", lines[1])
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return Segment{}, err
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return Segment{}, err
	}

	text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
	if text == "" {
		return Segment{}, fmt.Errorf("empty text")
	}

	return Segment{Index: index, Start: start, End: end, Text: text}, nil
}

// ParseTimestamp converts an SRT timestamp back to seconds. A period
// millisecond separator is normalized to the SRT comma form.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
