package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill/pkg/core"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in display order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := openStore()
		defer store.Close()

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(store.List()); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		printNotes(os.Stdout, store.List())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}

// printNotes writes one line per note: index, id, local time and the first
// line of the content.
func printNotes(w io.Writer, notes []core.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes.")
		return
	}
	for i, n := range notes {
		title, _, more := strings.Cut(n.Content, "\n")
		if more {
			title += " …"
		}
		fmt.Fprintf(w, "%3d  %s  %s  %s\n", i, n.ID, n.Timestamp.Local().Format("2006-01-02 15:04"), title)
	}
}
