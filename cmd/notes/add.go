package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a new note",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, api := mustSetup()

		content := strings.Join(args, " ")
		note, err := api.Create(context.Background(), content)
		if err != nil {
			fatal("failed to add note", err)
		}

		fmt.Println(note.NoteID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
