package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/config"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/graph/neo4jsync"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/logger"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/storage/postgres"
)

func datasetKey(path, fromFile string) string {
	if fromFile != "" {
		return fromFile
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func newImportCmd() *cobra.Command {
	var dsn string
	var migrate bool
	cmd := &cobra.Command{
		Use:   "import <dataset>...",
		Short: "Validate datasets and store them in the genealogy tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withContext(cmd)
			pool, err := bootstrap.OpenPool(ctx, bootstrap.DBOptions{DSN: dsn})
			if err != nil {
				return err
			}
			defer pool.Close()

			store := postgres.NewGenealogyStore(pool)
			if migrate {
				if err := store.Migrate(ctx); err != nil {
					return err
				}
			}
			for _, path := range args {
				ds, _, _, err := loadGraph(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				ds.Key = datasetKey(path, ds.Key)
				if err := store.SaveDataset(ctx, ds); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d batches)\n", ds.Key, len(ds.Batches))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", os.Getenv("DB_DSN"), "postgres connection string")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "create the genealogy tables first")
	return cmd
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync <dataset>...",
		Short: "Push genealogy graphs to Neo4j (NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withContext(cmd)
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Neo4j.URI == "" {
				return fmt.Errorf("NEO4J_URI is not set")
			}
			log, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			client, err := neo4jsync.New(ctx, neo4jsync.Options{
				URI:      cfg.Neo4j.URI,
				User:     cfg.Neo4j.User,
				Password: cfg.Neo4j.Password,
				Database: cfg.Neo4j.Database,
			}, log)
			if err != nil {
				return err
			}
			defer client.Close(ctx)

			for _, path := range args {
				ds, g, _, err := loadGraph(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err := neo4jsync.Push(ctx, client, datasetKey(path, ds.Key), g); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
	return cmd
}
