package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aptiz/internal/logging"
	"github.com/abhisek/aptiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "aptiz",
	Short: "Aptis exam practice in the terminal",
	Long:  "Aptiz — terminal practice for the Aptis General English test, with AI-generated grammar, reading and listening sections.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv(".env")
	},
	RunE: runPlay,

	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event log (overrides APTIZ_DB env var)")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads path into the environment if it exists. Variables that
// are already set win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then APTIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event log named by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newLogger builds the process logger. console is off for the TUI.
func newLogger(console bool) (*zap.Logger, func() error, error) {
	cfg := logging.FromEnv(logging.DefaultConfig())
	cfg.Console = console
	return logging.New(cfg)
}
