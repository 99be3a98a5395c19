package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [content...]",
	Short: "Append a new note",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer store.Close()

		note, err := store.Create(context.Background(), strings.Join(args, " "))
		if err != nil {
			fatal("Failed to add note", err)
		}

		fmt.Printf("Note added: %s\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
