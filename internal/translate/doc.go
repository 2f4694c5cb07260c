// Package translate renders transcripts into another language through a
// LibreTranslate-compatible HTTP service.
//
// The client exposes the service's translate, detect, and languages
// endpoints. The Translator works segment by segment so a single remote
// failure never discards an entire transcript: failed segments keep their
// original text and are counted in the run report.
package translate
