package subtitles

import "strings"

// ToVTT converts SRT text to WebVTT. Only timestamp lines have their comma
// millisecond separators replaced; commas inside subtitle text are left
// untouched.
func ToVTT(srt string) string {
	lines := strings.Split(strings.ReplaceAll(srt, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if strings.Contains(line, "-->") {
			lines[i] = strings.ReplaceAll(line, ",", ".")
		}
	}
	return "WEBVTT\n\n" + strings.Join(lines, "\n")
}
