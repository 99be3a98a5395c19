package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill"
	quilllifecycle "github.com/aretw0/quill/pkg/adapters/lifecycle"
	"github.com/aretw0/quill/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the list again whenever the notes file changes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		path, opts := settings()
		storage, err := quill.Init(path, opts...)
		if err != nil {
			fatal("Failed to open notes", err)
		}

		watchable, ok := storage.(core.Watchable)
		if !ok {
			fatal("Cannot watch", fmt.Errorf("storage %T does not support watching", storage))
		}

		store := core.NewStore(ctx, storage, core.Config{Logger: slog.Default()})
		defer store.Close()
		printNotes(os.Stdout, store.List())

		events, err := watchable.Watch(ctx)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		src := quilllifecycle.NewSource(events)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}

		for e := range src.Events() {
			slog.Debug("notes changed", "event", e.String())
			fmt.Println()
			printNotes(os.Stdout, store.Load(ctx))
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
