package main

import (
	"go.uber.org/zap"

	"github.com/felipedavolta/bolodebolo/internal/api/responses"
	"github.com/felipedavolta/bolodebolo/internal/domain/report/handler"
	"github.com/felipedavolta/bolodebolo/internal/domain/report/service"
	"github.com/felipedavolta/bolodebolo/pkg/config"
	"github.com/felipedavolta/bolodebolo/pkg/metrics"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Metrics *metrics.Metrics

	ReportService *service.Service

	ReportHandler *handler.ReportHandler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	responses.SetLogger(logger)

	deps.ReportService = service.New(logger.Named("report"), deps.Metrics)
	deps.ReportHandler = handler.NewReportHandler(deps.ReportService, logger.Named("http"))

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}
