package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/fileutil"
	"scribe/internal/subtitles"
	"scribe/internal/translate"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var target string
	var source string

	cmd := &cobra.Command{
		Use:   "translate <subtitles.srt>",
		Short: "Translate an existing subtitle file",
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
			if target != "" {
				cfg.Translation.TargetLanguage = target
			}
			if cfg.Translation.TargetLanguage == "" {
				return fmt.Errorf("no target language: set --target or translation.target_language")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read subtitles: %w", err)
			}
			segments, diagnostics := subtitles.ParseSRT(string(data))
			for _, diag := range diagnostics {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", diag)
			}
			if len(segments) == 0 {
				return fmt.Errorf("no usable subtitle segments in %s", args[0])
			}

			translator := translate.NewTranslator(cfg, ctx.translationClient(cfg), logger)
			transcript := subtitles.Transcript{Segments: segments, Language: source, Source: args[0]}
			translated, failed, err := translator.TranslateTranscript(cmd.Context(), transcript)
			if err != nil {
				return err
			}

			destination := strings.TrimSpace(outputPath)
			if destination == "" {
				destination = fileutil.SiblingWithSuffix(args[0], "_"+cfg.Translation.TargetLanguage)
			}
			if err := os.WriteFile(destination, []byte(subtitles.FormatSRT(translated)), 0o644); err != nil {
				return fmt.Errorf("write subtitles: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Translated subtitles written to %s\n", destination)
			if failed > 0 {
				fmt.Fprintf(out, "Warning: %d segments kept their original text after translation failures\n", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: input with language suffix)")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Target language code")
	cmd.Flags().StringVarP(&source, "source", "s", "", "Source language code (default: auto detect)")
	return cmd
}
