package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/fileutil"
	"scribe/internal/subtitles"
)

func newConvertCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:         "convert <subtitles.srt>",
		Short:       "Convert an SRT subtitle file to WebVTT",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			data, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("read subtitles: %w", err)
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = fileutil.ReplaceExt(source, ".vtt")
			}
			if err := os.WriteFile(target, []byte(subtitles.ToVTT(string(data))), 0o644); err != nil {
				return fmt.Errorf("write vtt: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "WebVTT written to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: input with .vtt extension)")
	return cmd
}
