package reportingservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/logger"
	"gocapacity/internal/service/capacityservice"
)

// ReportRepository persiste e recupera relatórios de utilização.
type ReportRepository interface {
	Save(ctx context.Context, report domain.UtilizationReport) error
	Latest(ctx context.Context) (domain.UtilizationReport, error)
}

// Service gera relatórios de utilização para os próximos dias do registro.
type Service struct {
	registry    capacityservice.Registry
	repo        ReportRepository
	horizonDays int
	logger      logger.Logger
}

// NewService cria o serviço. horizonDays é o número de dias cobertos a partir de amanhã.
func NewService(registry capacityservice.Registry, repo ReportRepository, horizonDays int, logger logger.Logger) *Service {
	return &Service{registry: registry, repo: repo, horizonDays: horizonDays, logger: logger}
}

// GenerateUtilizationReport calcula a ocupação de [amanhã, amanhã+horizonte-1] sobre um único
// snapshot do registro e salva o resultado.
func (s *Service) GenerateUtilizationReport(ctx context.Context, now time.Time) (domain.UtilizationReport, error) {
	start := domain.Day(now).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, s.horizonDays-1)

	warehouses, err := s.registry.Snapshot(ctx)
	if err != nil {
		return domain.UtilizationReport{}, apperror.NewInternalError("Falha interna ao carregar armazéns.", err)
	}

	engine := capacityservice.NewEngine(warehouses, capacityservice.WithClock(func() time.Time { return now }))

	daily, err := engine.CalculateAvailableCapacity(start, end)
	if err != nil {
		return domain.UtilizationReport{}, err
	}
	fully, err := engine.GetFullyUtilizedDates(start, end)
	if err != nil {
		return domain.UtilizationReport{}, err
	}
	leastUsed, err := engine.GetLeastUsedWarehouse(start, end)
	if err != nil {
		return domain.UtilizationReport{}, err
	}

	overbooked := []time.Time{}
	for _, d := range daily {
		if d.Available < 0 {
			overbooked = append(overbooked, d.Date)
		}
	}

	total := 0.0
	for _, w := range warehouses {
		total += w.Volume()
	}

	report := domain.UtilizationReport{
		ID:                 uuid.NewString(),
		GeneratedAt:        now.UTC(),
		StartDate:          start,
		EndDate:            end,
		WarehouseCount:     len(warehouses),
		TotalCapacity:      total,
		Daily:              daily,
		FullyUtilizedDates: fully,
		OverbookedDates:    overbooked,
		LeastUsedWarehouse: leastUsed,
	}

	if err := s.repo.Save(ctx, report); err != nil {
		return domain.UtilizationReport{}, apperror.NewInternalError("Falha ao salvar relatório de utilização.", err)
	}

	s.logger.Info("Relatório de utilização gerado.", map[string]interface{}{
		"report_id":      report.ID,
		"start":          start.Format(domain.DateLayout),
		"end":            end.Format(domain.DateLayout),
		"fully_utilized": len(fully),
		"overbooked":     len(overbooked),
		"least_used":     leastUsed,
	})
	return report, nil
}

// LatestReport devolve o último relatório salvo.
func (s *Service) LatestReport(ctx context.Context) (domain.UtilizationReport, error) {
	return s.repo.Latest(ctx)
}
