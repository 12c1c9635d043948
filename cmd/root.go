package cmd

import (
	"github.com/abhisek/hanzidrill/internal/config"
	"github.com/abhisek/hanzidrill/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hanzidrill",
	Short: "Chinese vocabulary and grammar drills for Vietnamese learners",
	Long: `hanzidrill is a terminal app for practising Chinese from Vietnamese
study material: vocabulary quizzes over CSV or spreadsheet word lists,
speaking and translation drills, and grammar notes with flashcards.

Sentences written in hard and translation modes are checked by an LLM when
one is configured (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or
OPENROUTER_API_KEY), and by a local rule otherwise.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("no-splash")
		return runTUI(cmd, tuiStart{skipSplash: skip})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HANZIDRILL_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides HANZIDRILL_CONFIG env var)")
	rootCmd.Flags().Bool("no-splash", false, "Open the home screen directly")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(grammarCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(submissionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads --config when given, else HANZIDRILL_CONFIG or the
// default file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return config.LoadFile(p)
	}
	return config.Load()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then HANZIDRILL_DB or the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Store.DBPath != "" {
		return cfg.Store.DBPath, store.EnsureDir(cfg.Store.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the database for commands that only need storage.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
