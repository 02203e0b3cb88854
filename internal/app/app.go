package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/riskibarqy/fpl-insights/external/fplapi"
	"github.com/riskibarqy/fpl-insights/external/histarchive"
	"github.com/riskibarqy/fpl-insights/internal/config"
	"github.com/riskibarqy/fpl-insights/internal/interfaces/httpapi"
	"github.com/riskibarqy/fpl-insights/internal/platform/cache"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/platform/resilience"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	fplClient := fplapi.NewClient(fplapi.ClientConfig{
		BaseURL:           cfg.FPLBaseURL,
		Timeout:           cfg.FPLTimeout,
		SummaryTimeout:    cfg.FPLSummaryTimeout,
		SummaryMaxRetries: cfg.HistoryMaxRetries,
		Logger:            logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})

	var archive usecase.SeasonArchive
	if cfg.HistoryArchiveBaseURL != "" {
		archive = histarchive.NewClient(histarchive.ClientConfig{
			BaseURL: cfg.HistoryArchiveBaseURL,
		}, slog.Default())
	}

	historySvc := usecase.NewHistoryService(fplClient, archive, usecase.HistoryServiceConfig{
		Enabled:    cfg.HistoryEnabled,
		BatchSize:  cfg.HistoryBatchSize,
		Workers:    cfg.HistoryWorkers,
		BatchDelay: cfg.HistoryBatchDelay,
	}, logger)

	store := cache.NewStore(cfg.CacheTTL)
	snapshotSvc := usecase.NewSnapshotService(fplClient, historySvc, store, cfg.CacheEnabled, logger)

	handler := httpapi.NewHandler(
		usecase.NewPlayerService(snapshotSvc),
		usecase.NewStatsService(snapshotSvc),
		usecase.NewOptimizerService(snapshotSvc, logger),
		snapshotSvc,
		cfg.ServiceName,
		cfg.ServiceVersion,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
