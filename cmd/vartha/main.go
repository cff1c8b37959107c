package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vartha-hq/vartha/internal/config"
	"github.com/vartha-hq/vartha/internal/crawler"
	"github.com/vartha-hq/vartha/internal/logger"
	"github.com/vartha-hq/vartha/internal/pipeline"
	"github.com/vartha-hq/vartha/internal/store"
	"github.com/vartha-hq/vartha/pkg/httpclient"
	"github.com/vartha-hq/vartha/pkg/providers"
	"github.com/vartha-hq/vartha/pkg/publishers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vartha:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := httpclient.NewRestyClient(cfg.HTTPTimeout)

	registry := providers.DefaultFetcherRegistry(client, providers.SitemapURLs{
		RNZ:      cfg.RNZSitemapURL,
		NZHerald: cfg.NZHeraldSitemapURL,
		OneNews:  cfg.OneNewsSitemapURL,
	}, cfg.NodeWorkers)

	st, err := store.Open(cfg.StorePath, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.WarnObj("store close failed", "store_close_error", map[string]any{
				"error": cerr.Error(),
			})
		}
	}()

	var sinks []publishers.Publisher
	if cfg.PublishersFile != "" {
		reg, err := publishers.LoadRegistry(cfg.PublishersFile)
		if err != nil {
			return fmt.Errorf("load publishers: %w", err)
		}
		sinks, err = publishers.BuildAll(ctx, publishers.DefaultRegistry(), reg.Enabled(), log)
		if err != nil {
			return fmt.Errorf("build publishers: %w", err)
		}
	}

	runner := pipeline.New(registry, crawler.NewScraper(client, log), st, sinks, log, cfg.BatchSize)

	records, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	return pipeline.WriteJSON(os.Stdout, records)
}
