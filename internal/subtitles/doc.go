// Package subtitles owns the timed-segment data model and the SRT/VTT text
// formats.
//
// Key types:
//   - Segment: one timed subtitle unit (1-based index, start, end, text)
//   - Transcript: ordered, non-overlapping segment sequence plus language
//
// Backends run Normalize over raw output before building a Transcript; the
// policy decides between repairing overlaps and failing hard. FormatSRT and
// ParseSRT are inverses over valid transcripts.
package subtitles
