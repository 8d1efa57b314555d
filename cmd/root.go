package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Yates-Labs/promptsmith/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// requiresConfig marks commands that need the configuration file loaded
// before they run.
const requiresConfig = "requires-config"

var (
	configPath string
	verbose    bool

	logger *slog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "promptsmith",
	Short: "Promptsmith - Prompt composer for chat completion models",
	Long: `Promptsmith turns a plain question into a structured prompt and sends it
to a chat completion model.

Modifier flags add framing clauses (persona, audience, step by step
instructions, code generation requirements) in a fixed order. Code
generation lowers the sampling temperature to 0.2.

Credentials are read from the [chatgpt] section of an INI file.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the INI config file (default $PROMPTSMITH_CONFIG or config.ini)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Show debug logging and request details")
}

// setup builds the logger and, for commands that talk to a provider, loads
// the configuration once.
func setup(cmd *cobra.Command, args []string) error {
	logger = newLogger(cmd.ErrOrStderr(), verbose)
	cfg = nil

	if cmd.Annotations[requiresConfig] == "" {
		return nil
	}

	loaded, err := config.Load(config.Resolve(configPath))
	if err != nil {
		return err
	}
	cfg = loaded

	logger.Debug("loaded configuration",
		"path", loaded.Path,
		"provider", loaded.ChatGPT.Provider,
		"model", loaded.ChatGPT.Model,
	)
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}
