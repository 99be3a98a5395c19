package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	moveFrom []int
	moveTo   int
)

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move notes to a new position",
	Long: `Move the notes at the --from positions so they sit just before position --to
of the current list, keeping their relative order.

  quill move --from 0 --to 2     # [A B C] -> [B A C]
  quill move --from 1,3 --to 0   # selected notes go to the top`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer store.Close()

		if err := store.Reorder(context.Background(), moveFrom, moveTo); err != nil {
			fatal("Failed to move notes", err)
		}

		fmt.Printf("Moved %d note(s).\n", len(moveFrom))
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().IntSliceVar(&moveFrom, "from", nil, "Positions to move")
	moveCmd.Flags().IntVar(&moveTo, "to", 0, "Destination position")
	moveCmd.MarkFlagRequired("from")
	moveCmd.MarkFlagRequired("to")
}
