package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Yates-Labs/promptsmith/internal/assistant"
	"github.com/spf13/cobra"
)

var (
	askOptions    optionFlags
	askGeneration generationFlags
	raw           bool
	asJSON        bool
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Compose a prompt and send it to the model",
	Long: `Compose a prompt from the given text and modifier flags, send it to the
configured chat completion model, and print the answer.

The composed prompt is logged to stderr before the request is made.

Requires a config file with an api_key in the [chatgpt] section:

  [chatgpt]
  api_key = ${OPENAI_API_KEY}

Examples:
  promptsmith ask "What is 2+2?"
  promptsmith ask "Write a sort function" --code --language Go --function --comments
  promptsmith ask "Explain recursion" --learner --level "first year student"
  promptsmith ask "Review this" --preset review --snippet-file main.go
  promptsmith ask "What is 2+2?" --json`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{requiresConfig: "true"},
	RunE:        runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askOptions.register(askCmd.Flags())
	askGeneration.register(askCmd.Flags())
	askCmd.Flags().BoolVar(&raw, "raw", false, "Print the answer without markdown rendering")
	askCmd.Flags().BoolVar(&asJSON, "json", false, "Print the answer, composed prompt and request details as JSON")
	askCmd.MarkFlagsMutuallyExclusive("snippet", "snippet-file")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := joinArgs(args)
	out := cmd.OutOrStdout()

	opts, err := askOptions.options(cmd.Flags())
	if err != nil {
		return err
	}

	a, err := assistant.FromConfig(cfg, logger)
	if err != nil {
		return err
	}
	a = a.WithParams(askGeneration.apply(cmd.Flags(), a.Params()))

	if asJSON {
		answer, err := a.Ask(cmd.Context(), question, opts)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	// Print question
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Question:"))
	fmt.Fprintln(out, promptStyle.Render(question))
	fmt.Fprintln(out)

	if verbose {
		params := a.Params()
		fmt.Fprintln(out, contextStyle.Render(fmt.Sprintf("→ Asking %s (%s)...", params.Model, cfg.ChatGPT.Provider)))
	}

	answer, err := a.Ask(cmd.Context(), question, opts)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(out, contextStyle.Render(fmt.Sprintf("✓ Answered at temperature %.1f", answer.Temperature)))
		fmt.Fprintln(out)
	}

	// Print answer
	fmt.Fprintln(out, headerStyle.Render("Answer:"))
	fmt.Fprintln(out)
	if raw {
		fmt.Fprintln(out, strings.TrimSpace(answer.Text))
	} else {
		fmt.Fprintln(out, renderAnswer(answer.Text))
	}
	fmt.Fprintln(out)

	return nil
}
