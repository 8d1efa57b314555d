package cmd

import (
	"fmt"
	"strings"

	"github.com/Yates-Labs/promptsmith/internal/prompt"
	"github.com/spf13/cobra"
)

var composeOptions optionFlags

var composeCmd = &cobra.Command{
	Use:   "compose [prompt]",
	Short: "Print the composed prompt without sending it",
	Long: `Compose a prompt from the given text and modifier flags and print it
together with the effective temperature. No request is made and no
credentials are needed.

Examples:
  promptsmith compose "Write a sort function" --code --language Go
  promptsmith compose "Why is the sky blue?" --role physicist --learner`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)
	composeOptions.register(composeCmd.Flags())
	composeCmd.MarkFlagsMutuallyExclusive("snippet", "snippet-file")
}

func runCompose(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	opts, err := composeOptions.options(cmd.Flags())
	if err != nil {
		return err
	}

	composed, err := prompt.Compose(joinArgs(args), opts)
	if err != nil {
		return err
	}

	logger.Debug("composed prompt", "clauses", composed.Clauses)

	fmt.Fprintln(out, headerStyle.Render("Prompt:"))
	fmt.Fprintln(out, composed.Text)
	fmt.Fprintln(out)
	fmt.Fprintln(out, contextStyle.Render(fmt.Sprintf("temperature: %.1f", composed.Temperature)))
	if len(composed.Clauses) > 0 {
		fmt.Fprintln(out, contextStyle.Render("clauses: "+strings.Join(composed.Clauses, ", ")))
	}

	return nil
}
