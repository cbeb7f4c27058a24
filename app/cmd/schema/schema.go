package schema

import (
	"context"
	"fmt"

	"github.com/onelastai/memory-notes/persistence/v1/schema"
	"github.com/onelastai/memory-notes/platform/resources"
	"github.com/onelastai/memory-notes/sys"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Command groups the schema commands
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the snapshots table used by the mysql backend",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Creates the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context) error {
				cmd.Println("creating schema")
				if err := schema.Create(ctx); err != nil {
					return fmt.Errorf("failed to create schema: %w", err)
				}
				cmd.Println("created schema")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Deletes the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd.Context(), func(ctx context.Context) error {
				cmd.Println("deleting schema")
				if err := schema.Drop(ctx); err != nil {
					return fmt.Errorf("failed to delete schema: %w", err)
				}
				cmd.Println("deleted schema")
				return nil
			})
		},
	})

	return cmd
}

// withDatabase runs fn against sys.R.Database, opening mysql when it is not set yet
func withDatabase(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if sys.R.Database != nil {
		return fn(ctx)
	}

	// empty logger
	log := zap.NewNop().Sugar()
	resources.LoadConfigs(log)
	sys.R.Log = log

	db, err := resources.OpenDatabase(ctx, "mysql", sys.Configs.Database.ConnectionURL)
	if err != nil {
		return err
	}
	sys.R.Database = db
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("could not close db conn gracefully: %s", err)
		}
		sys.R.Database = nil
	}()

	return fn(ctx)
}
