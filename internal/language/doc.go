// Package language normalizes the language identifiers that flow between
// the pipeline's tools: whisper and LibreTranslate speak ISO 639-1, while
// ffmpeg stream metadata wants ISO 639-2.
package language
