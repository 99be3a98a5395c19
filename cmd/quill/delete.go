package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteIndices []int

var deleteCmd = &cobra.Command{
	Use:   "delete [ids...]",
	Short: "Delete notes by ID or position",
	Long: `Delete removes every note whose ID is given, plus the notes at the positions
passed with --index. Unknown IDs are ignored.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && len(deleteIndices) == 0 {
			fmt.Println("Error: give at least one id or --index")
			cmd.Usage()
			return
		}

		store := openStore()
		defer store.Close()

		ids, err := resolveIndices(store.List(), deleteIndices)
		if err != nil {
			fatal("Invalid index", err)
		}
		ids = append(ids, args...)

		before := len(store.List())
		if err := store.Delete(context.Background(), ids...); err != nil {
			fatal("Failed to delete notes", err)
		}

		fmt.Printf("Notes deleted: %d\n", before-len(store.List()))
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().IntSliceVarP(&deleteIndices, "index", "i", nil, "Positions to delete (as shown by list)")
}
