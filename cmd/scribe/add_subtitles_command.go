package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/ffmpeg"
	"scribe/internal/media"
)

func newAddSubtitlesCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var language string

	cmd := &cobra.Command{
		Use:   "add-subtitles <video> <subtitles>",
		Short: "Mux a subtitle file into a copy of a video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			video, err := media.NewAsset(args[0], 0)
			if err != nil {
				return err
			}
			subtitles, err := media.NewAsset(args[1], 0)
			if err != nil {
				return err
			}

			muxer := ffmpeg.NewMuxer(cfg.FFmpegBinary(), logger)
			subtitled, err := muxer.Mux(cmd.Context(), ffmpeg.MuxRequest{
				Video:         video,
				Subtitles:     subtitles,
				OutputPath:    outputPath,
				SubtitleCodec: cfg.Mux.SubtitleCodec,
				Language:      language,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Subtitled video written to %s\n", subtitled.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: <video>_subtitled.<ext>)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Subtitle track language tag")
	return cmd
}
