package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get <note-id>",
	Short: "Show a single note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, api := mustSetup()

		note, err := api.Get(context.Background(), args[0])
		if err != nil {
			fatal("failed to get note", err)
		}

		if getJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(note); err != nil {
				fatal("failed to encode note", err)
			}
			return
		}

		fmt.Printf("%s  %s\n%s\n",
			note.NoteID,
			note.CreatedAt.Local().Format("2006-01-02 15:04"),
			note.Content)
	},
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(getCmd)
}
