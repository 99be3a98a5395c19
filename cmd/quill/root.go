package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/core"
)

var (
	verbose   bool
	storePath string
	adapter   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "A tiny ordered note list with atomic local storage",
	Long: `Quill keeps a list of short notes in a single local file (or bbolt database).
Notes keep the order you give them and every change is saved atomically.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&storePath, "path", "p", "", "Notes file (default from quill.yaml, $QUILL_PATH or ~/.quill/notes.json)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs or bolt")
}

// settings merges quill.yaml, the environment and command line flags.
func settings() (string, []quill.Option) {
	cwd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get CWD", err)
	}

	cfg, err := quill.LoadConfig(cwd)
	if err != nil {
		fatal("Failed to load config", err)
	}

	path := cfg.Path
	if storePath != "" {
		path = storePath
	}

	opts := cfg.Options()
	if adapter != "" {
		opts = append(opts, quill.WithAdapter(adapter))
	}
	opts = append(opts, quill.WithLogger(slog.Default()))
	return path, opts
}

// openStore opens the configured store. Callers must Close it.
func openStore() *core.Store {
	path, opts := settings()
	store, err := quill.Open(path, opts...)
	if err != nil {
		fatal("Failed to open notes", err)
	}
	return store
}
