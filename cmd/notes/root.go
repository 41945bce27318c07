package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kuitang/swift-notes/internal/cli"
	"github.com/kuitang/swift-notes/internal/client"
	"github.com/kuitang/swift-notes/internal/obs"
	"github.com/kuitang/swift-notes/internal/tui"
)

var serverFlag string

// rootCmd launches the interactive client when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "A minimal note-taking client",
	Long: `Notes is a terminal client for the notes server.
Run it bare for the interactive view, or use the subcommands for scripting.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, api := mustSetup()

		// The TUI owns the terminal, so logs go to a file.
		restore, err := redirectLogsToFile(cfg.LogFile)
		if err != nil {
			fatal("failed to open log file", err)
		}
		defer restore()

		program := tea.NewProgram(tui.NewAppModel(api), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			fatal("failed to run interactive view", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Server URL (overrides config and SWIFT_NOTES_SERVER)")
}

// mustSetup loads client config and builds the API client.
func mustSetup() (*cli.Config, *client.Client) {
	cfg, err := cli.Load(serverFlag)
	if err != nil {
		fatal("failed to load configuration", err)
	}
	return cfg, client.New(cfg.ServerURL)
}

func redirectLogsToFile(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	restoreOutput := obs.SetOutput(f)
	return func() {
		restoreOutput()
		f.Close()
	}, nil
}
