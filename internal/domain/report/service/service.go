// Package service orchestrates report parsing: dialect detection,
// dispatch to the right parser and operational telemetry.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/felipedavolta/bolodebolo/internal/domain/report/exporter"
	"github.com/felipedavolta/bolodebolo/internal/domain/report/parser"
	"github.com/felipedavolta/bolodebolo/internal/domain/report/sniffer"
	"github.com/felipedavolta/bolodebolo/pkg/metrics"
)

// ErrUnrecognizedFormat is returned when a text carries no marker of
// either point-of-sale system.
var ErrUnrecognizedFormat = errors.New("formato de relatório não reconhecido")

// Service parses pasted report texts. Build one with New; the zero value
// panics on use.
type Service struct {
	log     *zap.Logger
	sniffer *sniffer.Sniffer
	metrics *metrics.Metrics
	now     func() time.Time
}

func New(log *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		log:     log,
		sniffer: sniffer.New(),
		metrics: m,
		now:     time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Parse detects the dialect of text and runs the matching parser.
// Blank input yields parser.ErrEmptyInput and unknown formats
// ErrUnrecognizedFormat, both before any parser runs.
func (s *Service) Parse(ctx context.Context, text string) (*parser.Result, sniffer.Dialect, error) {
	if err := ctx.Err(); err != nil {
		return nil, sniffer.DialectUnknown, err
	}

	parseID := uuid.New()
	start := s.now()

	if strings.TrimSpace(text) == "" {
		s.metrics.ObserveParse("none", "empty", s.now().Sub(start).Seconds())
		return nil, sniffer.DialectUnknown, parser.ErrEmptyInput
	}

	dialect := s.sniffer.Detect(text)
	log := s.log.With(
		zap.String("parse_id", parseID.String()),
		zap.Stringer("dialect", dialect),
		zap.Int("input_bytes", len(text)),
	)

	var (
		res *parser.Result
		err error
	)
	switch dialect {
	case sniffer.DialectKiosk:
		res, err = parser.ProcessSalesReport(text)
	case sniffer.DialectStore:
		res, err = parser.ParseStoreReport(text, s.now)
	default:
		s.metrics.ObserveParse(dialect.String(), "unrecognized", s.now().Sub(start).Seconds())
		log.Warn("texto sem marcadores de nenhum sistema")
		return nil, dialect, ErrUnrecognizedFormat
	}

	elapsed := s.now().Sub(start).Seconds()
	if err != nil {
		s.metrics.ObserveParse(dialect.String(), "error", elapsed)
		log.Error("falha ao processar relatório", zap.Error(err))
		return nil, dialect, fmt.Errorf("processar relatório %s: %w", dialect, err)
	}

	s.metrics.ObserveParse(dialect.String(), "ok", elapsed)
	log.Info("relatório processado",
		zap.Int("linhas_saida", len(res.Lines)),
		zap.Int("nao_reconhecidos", len(res.Unrecognized)),
		zap.Float64("faturamento_total", res.Stats.Revenue.Total),
	)
	return res, dialect, nil
}

// Export parses text and renders the result as an XLSX workbook.
func (s *Service) Export(ctx context.Context, text string) ([]byte, sniffer.Dialect, error) {
	res, dialect, err := s.Parse(ctx, text)
	if err != nil {
		return nil, dialect, err
	}

	book, err := exporter.Workbook(res)
	if err != nil {
		return nil, dialect, fmt.Errorf("gerar planilha: %w", err)
	}
	s.metrics.ExportsTotal.Inc()
	return book, dialect, nil
}
