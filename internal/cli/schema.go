package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initSchemaCmd = &cobra.Command{
	Use:   "init-schema",
	Short: "Define tables, fields and the facility name full-text index",
	Long: `Apply the schema definitions to the configured database. Safe to run
repeatedly; definitions are idempotent. The schema is also applied
automatically on server start, so this command is mainly useful for
provisioning a database before the first run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// PersistentPreRunE already connected and applied the schema.
		fmt.Printf("Schema applied to %s/%s\n", cfg.SurrealDBNamespace, cfg.SurrealDBDatabase)
		return nil
	},
}
