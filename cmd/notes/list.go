package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, api := mustSetup()

		result, err := api.List(context.Background())
		if err != nil {
			fatal("failed to list notes", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(result); err != nil {
				fatal("failed to encode notes", err)
			}
			return
		}

		for _, note := range result {
			fmt.Printf("%s  %s  %s\n",
				note.NoteID,
				note.CreatedAt.Local().Format("2006-01-02 15:04"),
				note.Content)
		}
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}
