package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <note-id> <content>",
	Short: "Replace a note's content",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		_, api := mustSetup()

		content := strings.Join(args[1:], " ")
		note, err := api.Update(context.Background(), args[0], content)
		if err != nil {
			fatal("failed to edit note", err)
		}

		fmt.Println(note.NoteID)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
