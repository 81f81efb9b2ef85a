package cli

import (
	"fmt"
	"log/slog"

	"github.com/sanitrack/cleanlog-go/internal/artifact"
	"github.com/sanitrack/cleanlog-go/internal/config"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove export artifacts older than the TTL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := config.Load()
		store, err := artifact.NewStore(c.ArtifactDir, c.ArtifactTTL,
			artifact.LocatorMode(c.LocatorMode), slog.Default())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Sweep(); err != nil {
			return err
		}
		fmt.Printf("Swept %s (TTL %s)\n", c.ArtifactDir, c.ArtifactTTL)
		return nil
	},
}
