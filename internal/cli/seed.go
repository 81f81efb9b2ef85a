package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sanitrack/cleanlog-go/internal/models"
	"github.com/spf13/cobra"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

var seedDays int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo facilities, operators and cleaning history",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedDays, "days", 10, "days of history to generate per facility")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	operators := []struct{ id, name string }{
		{"op_ana", "Ana Ribeiro"},
		{"op_joao", "João Mendes"},
		{"op_marta", "Marta Silva"},
	}
	for _, o := range operators {
		if _, err := dbClient.CreateOperator(ctx, o.id, o.name); err != nil {
			fmt.Printf("operator %s skipped: %v\n", o.id, err)
		}
	}

	facilities := []struct {
		id, name, code string
		area           models.AreaClass
	}{
		{"room_5a", "Room 5 (A)", "R5A", models.AreaCritical},
		{"room_5b", "Room 5 (B)", "R5B", models.AreaCritical},
		{"icu_1", "ICU Ward 1", "ICU1", models.AreaCritical},
		{"reception", "Main Reception", "REC", models.AreaNonCritical},
		{"lab_2", "Laboratory 2", "LAB2", models.AreaSemiCritical},
	}

	for _, f := range facilities {
		if _, err := dbClient.CreateFacility(ctx, f.id, f.name, f.code, f.area); err != nil {
			fmt.Printf("facility %s skipped: %v\n", f.id, err)
			continue
		}

		for d := 0; d < seedDays; d++ {
			at := time.Now().AddDate(0, 0, -d).Add(-time.Duration(rand.Intn(8)) * time.Hour)
			op := surrealmodels.NewRecordID("operator", operators[rand.Intn(len(operators))].id)
			entry := models.HistoryEntry{
				Facility:     surrealmodels.NewRecordID("facility", f.id),
				At:           at,
				Start:        at.Format("15:04"),
				End:          at.Add(45 * time.Minute).Format("15:04"),
				Detergent:    true,
				Disinfectant: f.area == models.AreaCritical,
				Wiper:        rand.Intn(2) == 0,
				Mop:          true,
				Terminal:     d%7 == 0,
				Concurrent:   d%7 != 0,
				Observation:  "",
				Operator:     &op,
			}
			if err := dbClient.CreateHistory(ctx, entry); err != nil {
				return fmt.Errorf("seed history for %s: %w", f.id, err)
			}
		}
		fmt.Printf("seeded %s with %d days of history\n", f.name, seedDays)
	}

	return nil
}
