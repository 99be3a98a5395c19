package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [id] [content...]",
	Short: "Replace the content of a note",
	Long:  `Replace the content of the note with the given ID. Its timestamp is set to now.`,
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer store.Close()

		note, err := store.Update(context.Background(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			fatal("Failed to edit note", err)
		}

		fmt.Printf("Note updated: %s\n", note.ID)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
