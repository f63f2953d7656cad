package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KMuszynski/dxly/internal/adapters/cache"
	"github.com/KMuszynski/dxly/internal/adapters/database"
	"github.com/KMuszynski/dxly/internal/adapters/dataset"
	"github.com/KMuszynski/dxly/internal/adapters/search"
	"github.com/KMuszynski/dxly/internal/api/handlers"
	"github.com/KMuszynski/dxly/internal/api/middleware"
	"github.com/KMuszynski/dxly/internal/api/routes"
	"github.com/KMuszynski/dxly/internal/application/services"
	domainproviders "github.com/KMuszynski/dxly/internal/domain/providers"
	"github.com/KMuszynski/dxly/internal/domain/repositories"
	"github.com/KMuszynski/dxly/internal/infrastructure/clients/postgres"
	"github.com/KMuszynski/dxly/internal/infrastructure/clients/redis"
	"github.com/KMuszynski/dxly/internal/infrastructure/clients/typesense"
	"github.com/KMuszynski/dxly/internal/infrastructure/observability"
	"github.com/KMuszynski/dxly/pkg/config"
	"github.com/KMuszynski/dxly/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	flags := services.NewFeatureFlags()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider domainproviders.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
	} else {
		log.Println("Typesense client initialized successfully")
	}

	var searchProvider domainproviders.SymptomSearchProvider
	if typesenseClient != nil {
		adapter := search.NewSymptomSearchAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchProvider = adapter
	}

	// Initialize reference data adapters
	caseTableAdapter := dataset.NewCaseTableAdapter(cfg.Dataset.CaseTablePath)
	libraryAdapter := dataset.NewSymptomLibraryAdapter(cfg.Dataset.SymptomLibraryPath)

	// Disease profiles come from a JSON file by default; PostgreSQL is
	// opt-in for deployments that manage profiles centrally.
	var profileRepo repositories.DiseaseProfileRepository = dataset.NewProfileAdapter(cfg.Dataset.DiseaseProfilesPath)
	var analyticsService *services.DiagnosisAnalyticsService

	if cfg.Dataset.ProfileSource == "postgres" {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
		}
		defer pgClient.Close()
		log.Println("PostgreSQL client initialized successfully")

		profileRepo = database.NewDiseaseProfileAdapter(pgClient)
		if flags.AnalyticsEnabled() {
			analyticsService = services.NewDiagnosisAnalyticsService(database.NewDiagnosisAnalyticsAdapter(pgClient))
		}
	}

	// Initialize symptom normalizer if configured
	var normalizer *utils.SymptomNormalizer
	if flags.SymptomNormalizationEnabled() && cfg.Dataset.NormalizerConfigPath != "" {
		normalizer, err = utils.NewSymptomNormalizer(cfg.Dataset.NormalizerConfigPath)
		if err != nil {
			log.Printf("Warning: Failed to load symptom normalizer config: %v", err)
		} else {
			log.Println("Symptom normalizer initialized successfully")
		}
	}

	// Initialize services
	diagnosisService := services.NewDiagnosisService(
		caseTableAdapter,
		profileRepo,
		libraryAdapter,
		analyticsService,
		metrics,
	)

	// Initialize handlers
	diagnoseHandler := handlers.NewDiagnoseHandler(diagnosisService, normalizer)
	differentialHandler := handlers.NewDifferentialHandler(diagnosisService)
	symptomHandler := handlers.NewSymptomHandler(diagnosisService, searchProvider)
	diseaseHandler := handlers.NewDiseaseHandler(diagnosisService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		diagnoseHandler,
		differentialHandler,
		symptomHandler,
		diseaseHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
