package cmd

import (
	"fmt"
	"strings"

	"github.com/Yates-Labs/promptsmith/internal/prompt"
	"github.com/spf13/cobra"
)

var presetsFile string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available option presets",
	Long: `List the presets defined in the presets YAML file and the clauses each
one enables.

A presets file maps names to modifier settings:

  review:
    code: true
    program_language: Go
    elegant_code: true`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.Flags().StringVar(&presetsFile, "presets-file", "", "Path to the presets YAML file (default $PROMPTSMITH_PRESETS or presets.yaml)")
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := resolvePresetsPath(presetsFile)

	presets, err := prompt.LoadPresets(path)
	if err != nil {
		return err
	}

	if len(presets) == 0 {
		fmt.Fprintln(out, contextStyle.Render("No presets defined in "+path))
		return nil
	}

	for _, name := range presets.Names() {
		opts, _ := presets.Get(name)
		fmt.Fprintf(out, "%s  %s\n", headerStyle.Render(name), contextStyle.Render(describe(opts)))
	}

	return nil
}

// describe lists the clauses a preset enables.
func describe(opts prompt.Options) string {
	fired := prompt.Describe(opts)
	if len(fired) == 0 {
		return "(no modifiers)"
	}
	return strings.Join(fired, ", ")
}
