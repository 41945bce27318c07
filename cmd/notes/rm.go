package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kuitang/swift-notes/internal/client"
)

var rmCmd = &cobra.Command{
	Use:   "rm <note-id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, api := mustSetup()

		if err := api.Delete(context.Background(), args[0]); err != nil {
			if errors.Is(err, client.ErrNotFound) {
				fmt.Fprintln(os.Stderr, "note not found")
				os.Exit(1)
			}
			fatal("failed to delete note", err)
		}

		fmt.Println("deleted", args[0])
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
