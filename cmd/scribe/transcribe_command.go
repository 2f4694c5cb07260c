package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"scribe/internal/language"
	"scribe/internal/media"
	"scribe/internal/pipeline"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var languageFlag string
	var model string
	var addToVideo bool
	var keepAudio bool
	var doTranslate bool

	cmd := &cobra.Command{
		Use:   "transcribe <video>",
		Short: "Generate subtitles for a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if model != "" {
				cfg.Whisper.Model = model
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			videoPath := args[0]
			out := cmd.OutOrStdout()
			if probe, err := media.Probe(cmd.Context(), cfg.FFprobeBinary(), videoPath); err == nil {
				fmt.Fprintln(out, probeSummary(videoPath, probe))
			}

			p, cleanup, err := ctx.newPipeline(cfg, logger, doTranslate)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := p.Run(cmd.Context(), videoPath, pipeline.Options{
				OutputPath: outputPath,
				Language:   languageFlag,
				KeepAudio:  keepAudio,
				AddToVideo: addToVideo,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Subtitles written to %s (%d segments, language %s, %s)\n",
				report.SubtitlePath, report.Segments, language.DisplayName(report.Language), report.Elapsed.Round(time.Millisecond))
			if report.TranslationFailures > 0 {
				fmt.Fprintf(out, "Warning: %d segments kept their original text after translation failures\n",
					report.TranslationFailures)
			}
			if report.MuxedVideoPath != "" {
				fmt.Fprintf(out, "Subtitled video written to %s\n", report.MuxedVideoPath)
			}
			if report.AudioRetained {
				fmt.Fprintf(out, "Intermediate audio kept at %s\n", report.AudioPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Subtitle output path (default: alongside the video)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Spoken language hint (default: auto detect)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Whisper model override")
	cmd.Flags().BoolVarP(&addToVideo, "add-to-video", "a", false, "Mux the subtitles into a copy of the video")
	cmd.Flags().BoolVarP(&keepAudio, "keep-audio", "k", false, "Keep the intermediate audio file")
	cmd.Flags().BoolVar(&doTranslate, "translate", false, "Translate subtitles to the configured target language")
	return cmd
}

func probeSummary(path string, probe media.ProbeResult) string {
	rows := []table.Row{
		{"File", path},
		{"Duration", formatDuration(probe.DurationSeconds())},
		{"Size", formatSize(probe.SizeBytes())},
	}
	if stream, ok := probe.VideoStream(); ok {
		rows = append(rows, table.Row{"Video", fmt.Sprintf("%s %dx%d", stream.CodecName, stream.Width, stream.Height)})
	}
	if stream, ok := probe.AudioStream(); ok {
		rows = append(rows, table.Row{"Audio", stream.CodecName})
	}
	return renderTable(table.Row{"Property", "Value"}, rows)
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "unknown"
	}
	return time.Duration(seconds * float64(time.Second)).Round(time.Second).String()
}

func formatSize(bytes int64) string {
	if bytes <= 0 {
		return "unknown"
	}
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

