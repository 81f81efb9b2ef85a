package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var facilitiesCmd = &cobra.Command{
	Use:   "facilities",
	Short: "List all known facilities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		facilities, err := dbClient.ListFacilities(context.Background())
		if err != nil {
			return fmt.Errorf("list facilities: %w", err)
		}
		if len(facilities) == 0 {
			fmt.Println("No facilities registered.")
			return nil
		}
		for _, f := range facilities {
			fmt.Printf("%-30s  %-10s  %s\n", f.Name, f.Code, f.Area.Label())
		}
		return nil
	},
}
