package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/ffmpeg"
	"scribe/internal/media"
)

func newExtractAudioCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		copyStream bool
	)

	cmd := &cobra.Command{
		Use:   "extract-audio <video>",
		Short: "Extract the audio track from a video file",
		Args:  cobra.ExactArgs(1),
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

			extractor := ffmpeg.NewExtractor(cfg.FFmpegBinary(), logger)
			var audio media.Asset
			if copyStream {
				audio, err = extractor.ExtractCopy(cmd.Context(), video, outputPath)
			} else {
				audio, err = extractor.Extract(cmd.Context(), video, ffmpeg.AudioSpec{
					SampleRate: cfg.Audio.SampleRate,
					Channels:   cfg.Audio.Channels,
					Bitrate:    cfg.Audio.Bitrate,
					Codec:      cfg.Audio.Codec,
					Format:     cfg.Audio.Format,
				}, outputPath)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Audio written to %s (%s)\n", audio.Path, formatSize(audio.Size))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Audio output path (default: alongside the video)")
	cmd.Flags().BoolVar(&copyStream, "copy", false, "Copy the source audio streams without re-encoding")
	return cmd
}
