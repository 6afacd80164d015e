// Package main provides the entrypoint for the GreenSteps API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/greensteps/greensteps/internal/advice"
	"github.com/greensteps/greensteps/internal/advice/openai"
	"github.com/greensteps/greensteps/internal/api"
	"github.com/greensteps/greensteps/internal/api/middleware"
	"github.com/greensteps/greensteps/internal/carbon"
	"github.com/greensteps/greensteps/internal/carbon/carboninterface"
	"github.com/greensteps/greensteps/internal/config"
	"github.com/greensteps/greensteps/internal/geo"
	"github.com/greensteps/greensteps/internal/geo/ipapi"
	"github.com/greensteps/greensteps/internal/geo/ipwho"
	"github.com/greensteps/greensteps/internal/provider/resilience"
	"github.com/greensteps/greensteps/internal/submission"
	"github.com/greensteps/greensteps/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "greensteps-api"

	cfg := config.Load()

	// Setup structured logging
	logLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	log := zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting GreenSteps API")

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTELEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Provider registry feeds the ops status endpoint
	registry := resilience.NewRegistry()

	// Initialize geolocation provider
	var geoProvider geo.Provider
	switch cfg.GeoProvider {
	case config.GeoProviderIPWho:
		httpClient := resilience.NewClient(resilience.DefaultClientConfig(ipwho.ProviderName))
		registry.Register(ipwho.ProviderName, httpClient)
		geoProvider = ipwho.NewClient(ipwho.ClientConfig{
			HTTPClient: httpClient,
			Logger:     log,
		})
	default:
		httpClient := resilience.NewClient(resilience.DefaultClientConfig(ipapi.ProviderName))
		registry.Register(ipapi.ProviderName, httpClient)
		geoProvider = ipapi.NewClient(ipapi.ClientConfig{
			HTTPClient: httpClient,
			Logger:     log,
		})
	}
	geoService := geo.NewService(geo.ServiceConfig{
		Provider: geoProvider,
		Logger:   log,
	})
	log.Info().Str("provider", geoProvider.Name()).Msg("geolocation service initialized")

	// Initialize carbon estimator (remote provider only when credentialed)
	var carbonProvider carbon.Provider
	if cfg.CarbonAPIKey != "" {
		httpClient := resilience.NewClient(resilience.DefaultClientConfig(carboninterface.ProviderName))
		registry.Register(carboninterface.ProviderName, httpClient)
		carbonProvider = carboninterface.NewClient(carboninterface.ClientConfig{
			APIKey:         cfg.CarbonAPIKey,
			BaseURL:        cfg.CarbonBaseURL,
			VehicleModelID: cfg.CarbonVehicleModelID,
			Country:        cfg.CarbonCountry,
			State:          cfg.CarbonState,
			HTTPClient:     httpClient,
			Logger:         log,
		})
		log.Info().Msg("carbon estimate provider initialized")
	} else {
		log.Warn().Msg("CARBON_API_KEY not set - estimates use fallback formulas only")
	}
	carbonService := carbon.NewService(carbon.ServiceConfig{
		Provider: carbonProvider,
		Logger:   log,
	})

	// Initialize advice generator (remote completions only when credentialed)
	var completer advice.Completer
	if cfg.CompletionAPIKey != "" {
		httpClient := resilience.NewClient(resilience.DefaultClientConfig(openai.ProviderName))
		registry.Register(openai.ProviderName, httpClient)
		completer = openai.NewClient(openai.ClientConfig{
			APIKey:     cfg.CompletionAPIKey,
			BaseURL:    cfg.CompletionBaseURL,
			Model:      cfg.CompletionModel,
			HTTPClient: httpClient,
			Logger:     log,
		})
		log.Info().Msg("completion provider initialized")
	} else {
		log.Warn().Msg("COMPLETION_API_KEY not set - tips are generated locally")
	}
	adviceService := advice.NewService(advice.ServiceConfig{
		Completer: completer,
		LocalOnly: cfg.AdviceLocalOnly,
		Logger:    log,
	})

	// Initialize submission pipeline
	submissionService := submission.NewService(submission.ServiceConfig{
		Locator:   geoService,
		Estimator: carbonService,
		Adviser:   adviceService,
		Logger:    log,
	})
	log.Info().Msg("submission service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:           Version,
		BuildTime:         BuildTime,
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		SubmissionService: submissionService,
		ProviderRegistry:  registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
