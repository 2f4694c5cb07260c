package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages the translation service supports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Translation.URL == "" {
				return fmt.Errorf("no translation service configured: set translation.url")
			}

			client := ctx.translationClient(cfg)
			languages, err := client.Languages(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(languages))
			for _, lang := range languages {
				rows = append(rows, table.Row{lang.Code, lang.Name, nativeName(lang.Code)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(table.Row{"Code", "Name", "Native"}, rows))
			return nil
		},
	}
}

// nativeName renders a language code in its own language, or an empty
// string when the code is unknown.
func nativeName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return display.Self.Name(tag)
}
