package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/embedding"
)

var migrateBackfill bool

// backfillWorkers caps concurrent embedding requests; local inference servers
// handle little parallelism.
const backfillWorkers = 4

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create database tables",
	Long:  `Create any missing database tables. With --backfill, also compute embeddings for items that are missing one.`,
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateBackfill, "backfill", false, "Compute embeddings for items missing one")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := cmd.Context()

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	logger.Info().Msg("database migrated")

	if !migrateBackfill {
		return nil
	}

	embedder := embedding.New(embedding.Config{
		BaseURL:        cfg.EmbeddingURL,
		Model:          cfg.EmbeddingModel,
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
	})

	return backfillEmbeddings(ctx, logger, store, embedder)
}

func backfillEmbeddings(ctx context.Context, logger zerolog.Logger, store *db.Store, embedder *embedding.Client) error {
	total := 0
	for _, kind := range db.Kinds() {
		items, err := store.ListMissingEmbeddings(ctx, kind)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			continue
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(backfillWorkers)
		for _, item := range items {
			g.Go(func() error {
				vector, err := embedder.Encode(gctx, item.Text)
				if err != nil {
					return fmt.Errorf("failed to embed %s: %w", item.PublicID(), err)
				}
				encoded, err := json.Marshal(vector)
				if err != nil {
					return err
				}
				return store.UpdateEmbedding(gctx, kind, item.ID, string(encoded))
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		logger.Info().Str("kind", string(kind)).Int("count", len(items)).Msg("backfilled embeddings")
		total += len(items)
	}

	logger.Info().Int("total", total).Msg("backfill complete")
	return nil
}
