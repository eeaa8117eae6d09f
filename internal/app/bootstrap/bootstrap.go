// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	claimservice "claimerapi/contexts/snapshot-claims/claim-service"
	"claimerapi/contexts/snapshot-claims/claim-service/adapters/chainrpc"
	"claimerapi/contexts/snapshot-claims/claim-service/adapters/discord"
	postgresadapter "claimerapi/contexts/snapshot-claims/claim-service/adapters/postgres"
	workerapp "claimerapi/contexts/snapshot-claims/claim-service/application/workers"
	redistributionservice "claimerapi/contexts/snapshot-claims/redistribution-service"
	"claimerapi/contexts/snapshot-claims/redistribution-service/adapters/claimstore"
	redistapp "claimerapi/contexts/snapshot-claims/redistribution-service/application"
	"claimerapi/internal/platform/config"
	"claimerapi/internal/platform/db"
	"claimerapi/internal/platform/httpserver"
	"claimerapi/internal/platform/messaging"
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	cancel   context.CancelFunc
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.ChainNodeURL) == "" {
		return nil, errors.New("CHAIN_NODE_URL is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := postgresadapter.Migrate(pg.DB); err != nil {
		_ = pg.Close()
		return nil, err
	}

	chain, err := chainrpc.NewClient(chainrpc.Config{
		BaseURL: cfg.ChainNodeURL,
		Timeout: cfg.ChainTimeout,
	})
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	bus := messaging.NewBus(logger)
	repo := postgresadapter.NewRepository(pg.DB, logger)

	claims := claimservice.NewModule(claimservice.Dependencies{
		Claims:         repo,
		Chain:          chain,
		Clock:          postgresadapter.SystemClock{},
		Publisher:      bus,
		SnapshotHeight: cfg.SnapshotHeight,
		Deadline:       cfg.ClaimDeadline,
		ScaleDigits:    cfg.UnitScaleDigits,
		ServiceName:    cfg.ServiceName,
		Logger:         logger,
	})

	params, err := redistapp.NewParams(cfg.TotalSupply, cfg.CapRatioNum, cfg.CapRatioDen, cfg.UnitScaleDigits)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}
	redistribution := redistributionservice.NewModule(redistributionservice.Dependencies{
		Source: claimstore.Source{Claims: repo},
		Params: params,
		Logger: logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	if webhook := strings.TrimSpace(cfg.NotifyWebhookURL); webhook != "" {
		notifier, err := discord.NewNotifier(webhook, cfg.ChainTimeout)
		if err != nil {
			cancel()
			_ = pg.Close()
			return nil, err
		}
		consumer := workerapp.NotifyConsumer{
			Subscriber: bus,
			Notifier:   notifier,
			Logger:     logger,
		}
		if err := consumer.Start(ctx); err != nil {
			cancel()
			_ = pg.Close()
			return nil, err
		}
	} else {
		logger.Warn("notification webhook not configured; verified claims will not be announced",
			"event", "bootstrap_notify_disabled",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	server := httpserver.New(claims, redistribution, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		cancel:   cancel,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
