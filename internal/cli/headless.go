package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/carousel/internal/app"
)

func newHeadlessCmd() *cobra.Command {
	var (
		deck     string
		autoplay bool
		interval time.Duration
		runFor   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run the slider without a UI, logging every transition",
		Long: "Run the slider on a background loop and log every notification to stderr.\n" +
			"Commands are read from stdin, one per line: next, prev, goto N, pause, resume, toggle.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunHeadless(cmd.Context(), app.HeadlessOptions{
				ConfigPath: mustGetStringFlag(cmd.Root(), "config"),
				DeckPath:   deck,
				Autoplay:   autoplayOverride(cmd, autoplay),
				Interval:   interval,
				For:        runFor,
				Output:     cmd.ErrOrStderr(),
				Input:      cmd.InOrStdin(),
			})
		},
	}
	cmd.Flags().StringVarP(&deck, "deck", "d", "", "Deck file (.toml or .yaml); overrides the config")
	cmd.Flags().BoolVar(&autoplay, "autoplay", false, "Advance slides automatically")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Autoplay interval (e.g. 5s)")
	cmd.Flags().DurationVar(&runFor, "for", 0, "Stop after this long (default: until interrupted)")
	return cmd
}
