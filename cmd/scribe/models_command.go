package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"scribe/internal/config"
)

// Rough parameter counts for the published whisper model sizes.
var modelParameters = map[string]string{
	"tiny":   "39M",
	"base":   "74M",
	"small":  "244M",
	"medium": "769M",
	"large":  "1550M",
}

func newModelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the available whisper models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(config.WhisperModels))
			for _, model := range config.WhisperModels {
				marker := ""
				if model == cfg.Whisper.Model {
					marker = "*"
				}
				rows = append(rows, table.Row{marker, model, modelParameters[model]})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(table.Row{"", "Model", "Parameters"}, rows, 3))
			if cfg.Cloud.Enabled {
				fmt.Fprintln(out, "Cloud transcription is enabled; the local model is only used as a fallback.")
			}
			return nil
		},
	}
}
