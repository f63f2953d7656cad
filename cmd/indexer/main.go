package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/KMuszynski/dxly/internal/adapters/dataset"
	"github.com/KMuszynski/dxly/internal/adapters/search"
	"github.com/KMuszynski/dxly/internal/infrastructure/clients/typesense"
	"github.com/KMuszynski/dxly/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Deleting symptoms collection before reindex")
		if _, err := tsClient.Client().Collection(search.SymptomsCollection).Delete(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	adapter := search.NewSymptomSearchAdapter(tsClient)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	libraryRepo := dataset.NewSymptomLibraryAdapter(cfg.Dataset.SymptomLibraryPath)
	library, err := libraryRepo.Load(ctx)
	if err != nil {
		return err
	}

	indexed := 0
	for id, profile := range library {
		if err := adapter.Index(ctx, id, profile); err != nil {
			log.Printf("Warning: failed to index symptom %q: %v", id, err)
			continue
		}
		indexed++
	}

	log.Printf("Indexed %d of %d symptoms", indexed, len(library))
	return nil
}
