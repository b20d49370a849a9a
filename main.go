package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"immobiliare-scraper/config"
	"immobiliare-scraper/models"
	"immobiliare-scraper/scraper/immobiliare"
	"immobiliare-scraper/services"
	"immobiliare-scraper/storage"
	"immobiliare-scraper/utils"
)

func main() {
	logger := utils.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration error: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// All cleanup lives behind run's defers; os.Exit here would skip them.
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Run failed: %v", err)
		stop()
		os.Exit(1)
	}
}

// run drives the full pipeline. Every resource it opens (storage handles, the
// browser process) is released through defers before the error reaches main.
func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== Immobiliare Scraping System starting ===")
	logger.Info("Config: max pages %d | listing limit %d | backend %s | headless %v",
		cfg.Scraper.MaxPages, cfg.Scraper.ListingLimit, cfg.Storage.Backend, cfg.Scraper.Headless)

	idStore, closeIDs, err := newStore[models.ListingId](ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open identity storage: %w", err)
	}
	defer closeIDs()

	detailStore, closeDetails, err := newStore[models.ListingDetails](ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open detail storage: %w", err)
	}
	defer closeDetails()

	recordStore, closeRecords, err := newStore[models.ListingRecord](ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open record storage: %w", err)
	}
	defer closeRecords()

	locators := immobiliare.DefaultLocators()
	pacing := immobiliare.NewPacingPolicy(cfg.Scraper.MinDelaySec, cfg.Scraper.MaxDelaySec, nil, nil)

	browser := immobiliare.NewBrowserSession(cfg.Scraper, locators, logger)
	session, err := browser.Open(ctx)
	if err != nil {
		return fmt.Errorf("open browser session: %w", err)
	}
	defer session.Close()

	if err := session.Warmup(ctx, cfg.Source.BaseURL, pacing); err != nil {
		return fmt.Errorf("session warmup: %w", err)
	}

	index := immobiliare.NewIndexCrawler(cfg, locators, idStore, pacing, logger)
	stored, err := index.Crawl(ctx, session)
	if err != nil {
		return fmt.Errorf("index crawl: %w", err)
	}
	if stored == 0 {
		return fmt.Errorf("no listing identities collected")
	}

	details := scrapeDetails(ctx, cfg, locators, session, pacing, index.Collected(), logger)
	if len(details) == 0 {
		return fmt.Errorf("no detail records scraped")
	}

	if n, err := detailStore.Append(ctx, details); err != nil {
		logger.Error("Detail storage write failed: %v", err)
	} else {
		logger.Info("Stored %d new detail records", n)
	}

	normalizer := services.NewNormalizer(logger)
	records := normalizer.NormalizeAll(details)
	if len(records) == 0 {
		return fmt.Errorf("all records were dropped during normalization")
	}

	if n, err := recordStore.Append(ctx, records); err != nil {
		logger.Error("Record storage write failed: %v", err)
	} else {
		logger.Info("Stored %d new normalized records", n)
	}

	fmt.Printf("  Done. %d identities, %d raw details, %d normalized records (backend: %s)\n\n",
		stored, len(details), len(records), cfg.Storage.Backend)
	return nil
}

// scrapeDetails walks the collected identities sequentially, one paced
// detail-page visit at a time. Per-listing failures are logged and skipped.
func scrapeDetails(
	ctx context.Context,
	cfg *config.Config,
	locators immobiliare.Locators,
	session *immobiliare.Session,
	pacing *immobiliare.PacingPolicy,
	ids []models.ListingId,
	logger *utils.Logger,
) []models.ListingDetails {
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.Scraper.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}
	counter := utils.NewInstanceCounter()

	details := make([]models.ListingDetails, 0, len(ids))
	for _, id := range ids {
		if ctx.Err() != nil {
			logger.Warn("Run cancelled, stopping detail crawl")
			break
		}

		tagged := logger.WithTag(fmt.Sprintf("detail#%d", counter.Next()))
		crawler, err := immobiliare.NewDetailCrawler(id, cfg, locators, pacing, tagged)
		if err != nil {
			logger.Warn("Skipping %s: %v", id.ID(), err)
			continue
		}

		var d models.ListingDetails
		err = retry.Do(ctx, id.ID(), func() error {
			var scrapeErr error
			d, scrapeErr = crawler.Scrape(ctx, session)
			return scrapeErr
		})
		if err != nil {
			logger.Error("Detail scrape failed for %s: %v", id.ID(), err)
			continue
		}

		details = append(details, d)
		logger.Info("Scraped detail %d/%d: %s", len(details), len(ids), id.ID())
		pacing.Wait()
	}
	return details
}

// newStore builds the configured storage backend for one document type,
// returning a close function for backends that hold connections.
func newStore[T storage.Document](ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.Storage[T], func() error, error) {
	switch cfg.Storage.Backend {
	case "csv":
		s, err := storage.NewCSVStorage[T](cfg.Storage.CSVDir, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "mongo":
		s, err := storage.NewMongoStorage[T](ctx, storage.MongoConfig{
			URI:          cfg.Storage.Mongo.URI,
			Database:     cfg.Storage.Mongo.Database,
			MaxPoolSize:  cfg.Storage.Mongo.MaxPoolSize,
			WriteTimeout: cfg.Storage.Mongo.WriteTimeout(),
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	case "postgres":
		s, err := storage.NewPostgresStorage[T](cfg.Storage.Postgres.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
