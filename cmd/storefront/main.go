package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/betichouu-bot/Poster-Point/internal/cart"
	"github.com/betichouu-bot/Poster-Point/internal/catalog"
	"github.com/betichouu-bot/Poster-Point/internal/checkout"
	"github.com/betichouu-bot/Poster-Point/internal/config"
	"github.com/betichouu-bot/Poster-Point/internal/events"
	httpserver "github.com/betichouu-bot/Poster-Point/internal/http"
	"github.com/betichouu-bot/Poster-Point/internal/offer"
)

func main() {
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	cat, err := buildCatalog(cfg, logger)
	if err != nil {
		logger.Fatalf("build catalog: %v", err)
	}

	engine, err := offer.NewEngine(cfg.OfferTiers)
	if err != nil {
		logger.Fatalf("offer tiers: %v", err)
	}

	store := cart.NewStore(cat)
	calc := checkout.NewCalculator(cfg.MinOrderValue, cfg.WhatsAppPhone)

	// Event publishing is optional; the shop works without a broker.
	var publisher httpserver.CartEventsPublisher
	if cfg.RabbitURL != "" {
		conn, err := events.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("connect rabbitmq: %v", err)
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn, events.NewMemorySequence())
		if err != nil {
			logger.Fatalf("create publisher: %v", err)
		}
		defer func() {
			if err := pub.Close(); err != nil {
				logger.Printf("publisher close error: %v", err)
			}
		}()
		publisher = pub
	}

	handler := httpserver.NewHandler(cat, store, engine, calc, publisher, cfg.MinOrderValue, logger)
	mux := httpserver.NewRouter(handler, cfg.CORSAllowOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
}

// buildCatalog assembles the product lists from either a manifest file or
// the image host's list endpoint, then probes the artwork so loaded images
// sort first.
func buildCatalog(cfg config.Config, logger *log.Logger) (*catalog.Catalog, error) {
	var m catalog.Manifest

	if cfg.ManifestFile != "" {
		loaded, err := catalog.LoadManifestFile(cfg.ManifestFile)
		if err != nil {
			return nil, err
		}
		m = loaded
	} else {
		client, err := catalog.NewClient(cfg.ImageBaseURL, nil)
		if err != nil {
			return nil, err
		}

		fetchCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		m = client.FetchManifest(fetchCtx, catalog.DefaultCategories(), logger.Printf)
	}

	cat := catalog.Build(m, logger.Printf)

	prober, err := catalog.NewProber(cfg.ImageBaseURL, cfg.ProbeTimeout)
	if err != nil {
		return nil, err
	}

	probeCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	cat.Validate(probeCtx, prober)

	return cat, nil
}
