package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the carousel command line until ctx is cancelled.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "carousel",
		Short: "Slide carousel for the terminal",
		Long:  "Carousel: present a deck of slides with timed transitions and autoplay.",
		// Running without a subcommand opens the TUI.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, playFlags{})
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "Path to config.toml (default: ~/.config/carousel/config.toml)")

	root.AddCommand(newPlayCmd())
	root.AddCommand(newHeadlessCmd())
	return root
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flag error:", err)
		os.Exit(2)
	}
	return v
}

// autoplayOverride returns nil unless the flag was given explicitly, so the
// config file decides by default.
func autoplayOverride(cmd *cobra.Command, value bool) *bool {
	if !cmd.Flags().Changed("autoplay") {
		return nil
	}
	return &value
}
