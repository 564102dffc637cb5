package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/carousel/internal/app"
)

type playFlags struct {
	deck     string
	autoplay bool
	interval time.Duration
}

func newPlayCmd() *cobra.Command {
	var flags playFlags
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the TUI and present a deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.deck, "deck", "d", "", "Deck file (.toml or .yaml); overrides the config")
	cmd.Flags().BoolVar(&flags.autoplay, "autoplay", false, "Advance slides automatically")
	cmd.Flags().DurationVar(&flags.interval, "interval", 0, "Autoplay interval (e.g. 5s)")
	return cmd
}

func runPlay(cmd *cobra.Command, flags playFlags) error {
	return app.Run(cmd.Context(), app.Options{
		ConfigPath: mustGetStringFlag(cmd.Root(), "config"),
		DeckPath:   flags.deck,
		Autoplay:   autoplayOverride(cmd, flags.autoplay),
		Interval:   flags.interval,
	})
}
