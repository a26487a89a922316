package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/safespace-sl/safespace/internal/config"
	"github.com/safespace-sl/safespace/internal/counselor"
	"github.com/safespace-sl/safespace/internal/culture"
	"github.com/safespace-sl/safespace/internal/gateway"
	"github.com/safespace-sl/safespace/internal/knowledge"
	"github.com/safespace-sl/safespace/internal/provider"
	"github.com/safespace-sl/safespace/internal/respond"
	"github.com/safespace-sl/safespace/internal/retention"
	"github.com/safespace-sl/safespace/internal/rng"
	"github.com/safespace-sl/safespace/modules/memory/sqlite"
	"github.com/safespace-sl/safespace/modules/provider/anthropic"
	"github.com/safespace-sl/safespace/modules/provider/gemini"
	"github.com/safespace-sl/safespace/modules/provider/groq"
)

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the counseling service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger, err := buildLogger(cfg.Log)
			if err != nil {
				return err
			}

			return run(cfg, logger)
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	return cmd
}

func buildLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler), nil
}

// buildCascade constructs providers in configured priority order. A
// provider whose constructor fails aborts startup; missing API keys do
// not — the cascade skips unconfigured providers at request time.
func buildCascade(cfg config.ProvidersConfig, logger *slog.Logger) (*provider.Cascade, *gemini.Provider, error) {
	timeout := time.Duration(cfg.AttemptTimeoutSeconds) * time.Second

	var geminiProvider *gemini.Provider
	var entries []provider.Entry

	for _, name := range cfg.Order {
		var p provider.Provider
		var err error

		switch name {
		case "gemini":
			geminiProvider, err = gemini.New(cfg.Gemini)
			p = geminiProvider
		case "groq":
			p, err = groq.New(cfg.Groq)
		case "anthropic":
			p, err = anthropic.New(cfg.Anthropic)
		default:
			err = fmt.Errorf("unknown provider %q", name)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("building provider %s: %w", name, err)
		}
		entries = append(entries, provider.Entry{Provider: p, Timeout: timeout})
	}

	return provider.NewCascade(entries, provider.WithLogger(logger)), geminiProvider, nil
}

func run(cfg *config.Config, logger *slog.Logger) error {
	store, err := sqlite.Open(cfg.Storage.SQLite, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	cascade, embedder, err := buildCascade(cfg.Providers, logger)
	if err != nil {
		return err
	}

	var retriever counselor.FactSearcher
	if embedder != nil {
		retriever = knowledge.New(embedder, store.Facts(), knowledge.WithLogger(logger))
	}

	randSource := rng.Default()
	counselorCfg := cfg.Counselor
	if counselorCfg.FactLimit == 0 {
		counselorCfg.FactLimit = cfg.Knowledge.FactLimit
	}

	c, err := counselor.New(counselorCfg, counselor.Deps{
		Generator: respond.New(randSource),
		Adapter:   culture.New(randSource, cfg.Culture.Probabilities),
		Cascade:   cascade,
		Retriever: retriever,
		History:   store.History(),
		Summaries: store.Summaries(),
		Profiles:  store.Profiles(),
		Rand:      randSource,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer c.Close()

	gw, err := gateway.New(gateway.Config{
		Listen:          cfg.Gateway.Listen,
		MaxBodyBytes:    cfg.Gateway.MaxBodyBytes,
		ReadTimeout:     time.Duration(cfg.Gateway.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:    time.Duration(cfg.Gateway.WriteTimeoutSeconds) * time.Second,
		ShutdownTimeout: time.Duration(cfg.Gateway.ShutdownTimeoutSeconds) * time.Second,
	}, c, cascade.Names(), logger)
	if err != nil {
		return err
	}

	if err := gw.Start(); err != nil {
		return err
	}

	var purger *retention.Purger
	if cfg.Retention.Enabled {
		purger, err = retention.New(retention.Config{
			Schedule: cfg.Retention.Schedule,
			MaxAge:   time.Duration(cfg.Retention.MaxAgeDays) * 24 * time.Hour,
		}, store.History(), logger)
		if err != nil {
			return err
		}
		if err := purger.Start(); err != nil {
			return err
		}
	}

	logger.Info("safespace started",
		"listen", cfg.Gateway.Listen,
		"providers", cascade.Names(),
		"retention", cfg.Retention.Enabled)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if purger != nil {
		_ = purger.Stop(shutdownCtx)
	}
	return gw.Stop(shutdownCtx)
}
