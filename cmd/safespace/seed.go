package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/safespace-sl/safespace/internal/knowledge"
	"github.com/safespace-sl/safespace/modules/memory/sqlite"
	"github.com/safespace-sl/safespace/modules/provider/gemini"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the starter knowledge corpus into the fact store",
		Long: `Embeds the built-in Sierra Leone mental health facts and stores
them in the configured database. Requires a Gemini API key for the
embedding model.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Providers.Gemini.APIKey == "" {
				return fmt.Errorf("seeding requires a Gemini API key for embeddings")
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			store, err := sqlite.Open(cfg.Storage.SQLite, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			embedder, err := gemini.New(cfg.Providers.Gemini)
			if err != nil {
				return err
			}

			retriever := knowledge.New(embedder, store.Facts())
			corpus := knowledge.StarterCorpus()

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			if err := retriever.Seed(ctx, corpus); err != nil {
				return err
			}

			fmt.Printf("Seeded %d facts\n", len(corpus))
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	return cmd
}
