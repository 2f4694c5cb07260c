package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const ffmpegCommand = "ffmpeg"

// CommandRunner executes an external command. Paths and parameters travel as
// discrete argv entries; nothing is ever interpreted by a shell.
type CommandRunner func(ctx context.Context, name string, args ...string) error

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		// Include tool output in the error for diagnostics.
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
