// Package main implements glassdesk, a desktop environment drawn in the
// terminal. Windows open from desktop icons and a start menu, stack by focus,
// drag with the mouse and minimize to a taskbar.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode   bool
	asciiOnly   bool
	themeName   string
	wallpaper   string
	hideClock   bool
	hideTray    bool
	cellWidth   float64
	cellHeight  float64
	doubleClick time.Duration
	watchConfig bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glassdesk",
		Short: "A desktop in your terminal",
		Long: `glassdesk - a desktop in your terminal

Double-click desktop icons or use the start menu to open windows. Drag them
by the title bar, minimize them to the taskbar and bring them back with a
click. Serve the same desktop to others over SSH or in a browser.`,
		Example: `  # Run locally
  glassdesk

  # Run with a theme and a different wallpaper
  glassdesk --theme dracula --wallpaper stripes

  # Reload the config file while running
  glassdesk --watch-config

  # Serve over SSH
  glassdesk ssh --port 2222

  # Replay a script headlessly
  glassdesk replay demo.yaml --json`,
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLocal(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write a debug log to the XDG state directory")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Unicode symbols")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord). Leave empty for the built-in palette")
	rootCmd.PersistentFlags().StringVar(&wallpaper, "wallpaper", "", "Wallpaper: solid, dots, stripes, bliss (default: from config or bliss)")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the taskbar clock")
	rootCmd.PersistentFlags().BoolVar(&hideTray, "hide-tray", false, "Hide the CPU and memory readout")
	rootCmd.PersistentFlags().Float64Var(&cellWidth, "cell-width", 0, "Pixels per terminal column (default: from config or 8)")
	rootCmd.PersistentFlags().Float64Var(&cellHeight, "cell-height", 0, "Pixels per terminal row (default: from config or 16)")
	rootCmd.PersistentFlags().DurationVar(&doubleClick, "double-click", 0, "Icon double-click threshold (default: from config or 300ms)")
	rootCmd.Flags().BoolVar(&watchConfig, "watch-config", false, "Reload the config file when it changes")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve glassdesk over SSH",
		Long: `Serve glassdesk over SSH

Every connection gets its own desktop. The server generates a host key
automatically if none exists.`,
		Example: `  # Start SSH server on default port
  glassdesk ssh

  # Listen on all interfaces
  glassdesk ssh --host 0.0.0.0 --port 2222`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSSHServer(cmd.Context(), sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve glassdesk in the browser",
		Long: `Serve glassdesk to web browsers

Every browser tab gets its own desktop.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWebServer(cmd.Context())
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage glassdesk configuration",
		Long:  `Manage the glassdesk configuration file`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printConfigPath(cmd.OutOrStdout())
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the glassdesk configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi and nano in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the glassdesk configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return resetConfigToDefaults(cmd.InOrStdin(), cmd.OutOrStdout(), resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "List desktop icons and start menu entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCatalog(cmd.OutOrStdout())
		},
	}

	keysCmd := &cobra.Command{
		Use:     "keys",
		Aliases: []string{"keybinds", "kb"},
		Short:   "List keybindings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listKeybindings(cmd.OutOrStdout())
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listThemes(cmd.OutOrStdout())
		},
	}

	var replayJSON bool
	replayCmd := &cobra.Command{
		Use:   "replay <file.yaml>",
		Short: "Replay a script against a headless desktop",
		Long: `Replay a YAML script against a headless desktop and print the result

Steps open, close, minimize and focus windows by content type, feed pointer
and touch events, toggle overlays and shut the desktop down.`,
		Example: `  # Print the final windows as a table
  glassdesk replay demo.yaml

  # Get the final snapshot as JSON
  glassdesk replay demo.yaml --json | jq '.snapshot.windows'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), cmd.OutOrStdout(), args[0], replayJSON)
		},
	}
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(sshCmd, webCmd, configCmd, catalogCmd, keysCmd, themesCmd, replayCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
