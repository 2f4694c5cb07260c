// Package media provides the Asset handle passed between pipeline stages and
// a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Asset: immutable handle to a media file (path, size, duration)
//   - ProbeResult: parsed ffprobe output containing streams and format metadata
//
// Primary entry points:
//   - NewAsset: stats a file and returns a handle
//   - Probe: executes ffprobe and returns a parsed ProbeResult
package media
