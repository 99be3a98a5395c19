package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/internal/platform"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a quill.yaml in the current directory",
	Long: `Create a quill.yaml so that quill commands run in this directory (or below)
use a project-local notes file instead of ~/.quill/notes.json.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		cfg := quill.Config{Path: platform.DefaultFileName, Adapter: adapter}
		if storePath != "" {
			cfg.Path = storePath
		} else if adapter == quill.AdapterBolt {
			cfg.Path = platform.DefaultDBName
		}

		file, err := platform.WriteConfig(cwd, cfg)
		if err != nil {
			fatal("Failed to write config", err)
		}

		fmt.Println("Initialized quill in", file)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
