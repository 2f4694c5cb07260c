package language

import (
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Spoken-name forms users commonly pass on the command line. BCP 47 parsing
// handles every code form; this only covers plain English names.
var byWord = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
}

func parse(code string) (xlang.Base, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return xlang.Base{}, false
	}
	if mapped, ok := byWord[code]; ok {
		code = mapped
	}
	tag, err := xlang.Parse(code)
	if err != nil {
		return xlang.Base{}, false
	}
	base, confidence := tag.Base()
	if confidence == xlang.No {
		return xlang.Base{}, false
	}
	return base, true
}

// ToISO2 normalizes a language code, 3-letter code, or English language name
// to ISO 639-1. Unrecognized input returns an empty string.
func ToISO2(code string) string {
	base, ok := parse(code)
	if !ok {
		return ""
	}
	two := base.String()
	if len(two) != 2 {
		return ""
	}
	return two
}

// ToISO3 converts any recognized language form to the ISO 639-2 code ffmpeg
// expects in stream metadata. Unrecognized input returns "und".
func ToISO3(code string) string {
	base, ok := parse(code)
	if !ok {
		return "und"
	}
	return base.ISO3()
}

// DisplayName returns the English name of a language, "Unknown" for empty
// input, or the uppercased input when it cannot be parsed.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	base, ok := parse(trimmed)
	if !ok {
		return strings.ToUpper(trimmed)
	}
	tag := xlang.Make(base.String())
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(trimmed)
}
