// Package pipeline sequences the transcription stages for a single video:
// audio extraction, speech recognition, subtitle formatting, and the
// optional translation and muxing steps.
//
// The intermediate audio artifact is always cleaned up unless the caller
// asked to keep it; stage errors propagate unchanged so their markers stay
// inspectable with errors.Is.
package pipeline
