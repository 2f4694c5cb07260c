// Package ffmpeg drives the external ffmpeg binary for the two container
// transforms the pipeline needs: pulling the audio track out of a video and
// embedding a subtitle file as a soft track.
//
// Every invocation passes paths and parameters as discrete argv entries
// through exec.CommandContext; no command line is ever assembled for a shell.
// The command runner is injectable so tests can capture the exact argv.
package ffmpeg
