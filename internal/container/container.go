package container

import (
	"fmt"
	"net/http"

	"go-brightness-finder/internal/config"
	"go-brightness-finder/internal/engine"
	"go-brightness-finder/internal/factory"
	"go-brightness-finder/internal/logger"
	"go-brightness-finder/internal/observer"
	"go-brightness-finder/internal/repository"
	"go-brightness-finder/internal/service"
	"go-brightness-finder/internal/storage"
	"go-brightness-finder/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	mediaFetcher    storage.MediaFetcher
	mediaRepository repository.MediaRepository
	analyzer        *engine.Analyzer
	sourceFactory   factory.SourceFactory
	publisher       *observer.EventPublisher
	metrics         *observer.MetricsObserver
	analysisService service.AnalysisService
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Build dependency graph
	httpFetcher := storage.NewHTTPMediaFetcher(cfg.MaxMediaBytes)
	var blobFetcher storage.MediaFetcher
	if cfg.AzureEnabled() {
		blobFetcher, err = storage.NewAzureMediaFetcher(cfg.AzureAccountName, cfg.AzureAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob fetcher: %w", err)
		}
	}
	mediaFetcher := storage.NewRoutingFetcher(httpFetcher, blobFetcher)

	mediaRepository := repository.NewFetcherRepository(mediaFetcher)
	analyzer := engine.NewAnalyzer()
	sourceFactory := factory.NewSourceFactory()

	publisher := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	analysisService := service.NewBrightnessAnalysisService(
		mediaRepository, sourceFactory, analyzer, publisher, cfg)
	handler := transport.NewHandler(analysisService, metrics, cfg).SetupRoutes()

	return &Container{
		config:          cfg,
		mediaFetcher:    mediaFetcher,
		mediaRepository: mediaRepository,
		analyzer:        analyzer,
		sourceFactory:   sourceFactory,
		publisher:       publisher,
		metrics:         metrics,
		analysisService: analysisService,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// AnalysisService returns the analysis service
func (c *Container) AnalysisService() service.AnalysisService {
	return c.analysisService
}
