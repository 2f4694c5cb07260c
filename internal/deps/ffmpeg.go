package deps

import (
	"context"
	"os/exec"
	"strings"
)

// FFmpegVersion reports the first line of `ffmpeg -version` for status
// output, or an empty string when the binary cannot be run.
func FFmpegVersion(ctx context.Context, command string) string {
	binary := strings.TrimSpace(command)
	if binary == "" {
		binary = "ffmpeg"
	}
	output, err := exec.CommandContext(ctx, binary, "-version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line)
}
