package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lunaword/internal/library"
)

func newSpeakCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "speak <word>",
		Short: "Save the pronunciation of a word as mp3",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			synthesizer, err := newSynthesizer(cfg)
			if err != nil {
				return err
			}

			word := library.NormalizeWord(strings.Join(args, " "))
			audio, err := synthesizer.Synthesize(cmd.Context(), word)
			if err != nil {
				return fmt.Errorf("synthesizer.Synthesize(%s) > %w", word, err)
			}
			if output == "" {
				output = strings.ReplaceAll(word, " ", "_") + ".mp3"
			}
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(output), err)
			}
			if err := os.WriteFile(output, audio, 0o644); err != nil {
				return fmt.Errorf("os.WriteFile(%s) > %w", output, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", output)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (defaults to <word>.mp3)")
	return cmd
}
