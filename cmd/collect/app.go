package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/results-collector/internal/config"
	"github.com/yourusername/results-collector/internal/health"
	"github.com/yourusername/results-collector/internal/iracing"
	"github.com/yourusername/results-collector/internal/logger"
	"github.com/yourusername/results-collector/internal/metrics"
	"github.com/yourusername/results-collector/internal/repository"
	"github.com/yourusername/results-collector/internal/service"
)

// app holds the wired dependencies of one command invocation.
type app struct {
	cfg       *config.Config
	logger    *logrus.Logger
	ingest    *logger.IngestLogger
	repos     *repository.Repositories
	client    *iracing.Client
	sync      *service.ReferenceSync
	harvester *service.Harvester
	health    *health.Server
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	var logOpts []logger.Option
	if cfg.App.LogFile != "" {
		logOpts = append(logOpts, logger.WithFile(cfg.App.LogFile))
	}
	log := logger.NewLogger(cfg.App.LogLevel, logOpts...)
	log.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"driver":      cfg.Database.Driver,
		"version":     Version,
	}).Debug("Configuration loaded")

	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	httpClient := iracing.NewRateLimitedHTTPClient(iracing.HTTPClientConfigFrom(&cfg.IRacing), log)
	client := iracing.NewClient(&cfg.IRacing, httpClient, log)

	ingest := logger.NewIngestLogger(log)

	var progress service.ProgressReporter = service.NoProgress{}
	if cfg.Ingestion.ShowProgress {
		progress = service.NewBarProgress()
	}

	collectorOpts := []service.CollectorOption{service.WithCollectorProgress(progress)}
	if ttl := cfg.Ingestion.UnavailableTTL(); ttl > 0 {
		collectorOpts = append(collectorOpts, service.WithUnavailableTTL(ttl))
	}
	collector := service.NewCollector(client, repos, ingest, collectorOpts...)

	a := &app{
		cfg:       cfg,
		logger:    log,
		ingest:    ingest,
		repos:     repos,
		client:    client,
		sync:      service.NewReferenceSync(repos, ingest),
		harvester: service.NewHarvester(client, repos.Event, collector, ingest, service.WithHarvestProgress(progress)),
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		a.health = health.NewServer(health.Config{
			ServiceName:    cfg.App.Name,
			Version:        Version,
			Port:           cfg.Metrics.Port,
			MetricsPath:    cfg.Metrics.Path,
			MetricsHandler: metrics.Handler(),
			Logger:         log,
			Store:          repos,
			Session:        client,
		})
		if err := a.health.Start(ctx); err != nil {
			return nil, err
		}
		a.health.SetReady(true)
	}

	return a, nil
}

// loadConfig reads the config file, then applies secrets and flags.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		return nil, err
	}

	if username != "" {
		cfg.IRacing.Username = username
	}
	if password != "" {
		cfg.IRacing.Password = password
	}
	if logFile != "" {
		cfg.App.LogFile = logFile
	}
	if debug {
		cfg.App.LogLevel = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Close releases the store and the remote client.
func (a *app) Close() {
	if a.health != nil {
		_ = a.health.Shutdown()
	}
	_ = a.client.Close()
	if err := a.repos.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close store")
	}
}
