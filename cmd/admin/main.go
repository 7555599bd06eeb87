// Command admin runs maintenance tasks against the MongoDB store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fernandoludvig/finance-api/internal/config"
	"github.com/fernandoludvig/finance-api/internal/database"
	"github.com/fernandoludvig/finance-api/internal/logging"
	"github.com/fernandoludvig/finance-api/internal/repository/mongodb"
	"github.com/fernandoludvig/finance-api/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Maintenance commands for the finance API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newEnsureIndexesCmd(), newPromoteCmd())
	return root
}

func newEnsureIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create the unique and lookup indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMongo(cmd.Context(), func(ctx context.Context, _ *config.Config, m *database.Mongo) error {
				return mongodb.EnsureIndexes(ctx, m.DB)
			})
		},
	}
}

func newPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant the admin role to an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMongo(cmd.Context(), func(ctx context.Context, cfg *config.Config, m *database.Mongo) error {
				users := services.NewUserService(mongodb.NewUserRepository(m.DB), cfg)
				user, err := users.Promote(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now an admin\n", user.Email)
				return nil
			})
		},
	}
}

func withMongo(parent context.Context, fn func(context.Context, *config.Config, *database.Mongo) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)
	if cfg.Storage != config.StorageMongo {
		return fmt.Errorf("admin commands need STORAGE=%s", config.StorageMongo)
	}
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithTimeout(parent, time.Minute)
	defer cancel()

	m, err := database.ConnectMongo(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Disconnect(context.Background()); err != nil {
			slog.Warn("disconnect failed", "error", err)
		}
	}()
	return fn(ctx, cfg, m)
}
