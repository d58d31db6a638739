package capacityservice

import (
	"context"
	"time"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/logger"
)

// Registry fornece o retrato atual do registro de armazéns, na ordem do registro e com os itens.
type Registry interface {
	Snapshot(ctx context.Context) ([]domain.Warehouse, error)
}

// Service executa as consultas de capacidade sobre o estado atual do registro.
// Cada chamada lê um retrato novo e monta um Engine próprio, então chamadas concorrentes
// não compartilham estado mutável.
type Service struct {
	registry Registry
	logger   logger.Logger
	now      func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Capacidade.
func NewService(registry Registry, logger logger.Logger) *Service {
	return &Service{registry: registry, logger: logger, now: utcNow}
}

// SetClock troca o relógio usado na verificação de datas no passado.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) engine(ctx context.Context) (*Engine, error) {
	warehouses, err := s.registry.Snapshot(ctx)
	if err != nil {
		s.logger.Error("Falha ao carregar o registro de armazéns.", err)
		return nil, apperror.NewInternalError("Falha interna ao carregar armazéns.", err)
	}
	s.logger.Debug("Registro de armazéns carregado.", map[string]interface{}{"warehouses": len(warehouses)})
	return NewEngine(warehouses, WithClock(s.now)), nil
}

// FindAvailableWarehouse busca o primeiro armazém com espaço para o item em todo o intervalo.
func (s *Service) FindAvailableWarehouse(ctx context.Context, start, end time.Time, dims domain.ThreeDRoom) (int, error) {
	s.logger.Debug("Buscando armazém disponível.", map[string]interface{}{
		"start": start.Format(domain.DateLayout),
		"end":   end.Format(domain.DateLayout),
		"dims":  dims,
	})

	eng, err := s.engine(ctx)
	if err != nil {
		return domain.NotFound, err
	}

	id, err := eng.FindAvailableWarehouse(start, end, dims.Height, dims.Width, dims.Length)
	if err != nil {
		s.logger.Warn("Busca de armazém rejeitada.", map[string]interface{}{"error": err.Error()})
		return domain.NotFound, err
	}

	if id == domain.NotFound {
		s.logger.Info("Nenhum armazém comporta o item no intervalo.", map[string]interface{}{"volume": dims.Volume()})
	} else {
		s.logger.Info("Armazém disponível encontrado.", map[string]interface{}{"warehouse_id": id})
	}
	return id, nil
}

// GetFullyUtilizedDates lista os dias totalmente utilizados do intervalo.
func (s *Service) GetFullyUtilizedDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	eng, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}

	dates, err := eng.GetFullyUtilizedDates(start, end)
	if err != nil {
		s.logger.Warn("Consulta de dias totalmente utilizados rejeitada.", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.logger.Info("Dias totalmente utilizados calculados.", map[string]interface{}{"count": len(dates)})
	return dates, nil
}

// CalculateAvailableCapacity retorna a capacidade restante por dia.
func (s *Service) CalculateAvailableCapacity(ctx context.Context, start, end time.Time) ([]domain.DailyCapacity, error) {
	eng, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}

	daily, err := eng.CalculateAvailableCapacity(start, end)
	if err != nil {
		s.logger.Warn("Consulta de capacidade disponível rejeitada.", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.logger.Info("Capacidade disponível calculada.", map[string]interface{}{"days": len(daily)})
	return daily, nil
}

// GetLeastUsedWarehouse retorna o armazém com menor uso em volume-dias.
func (s *Service) GetLeastUsedWarehouse(ctx context.Context, start, end time.Time) (int, error) {
	eng, err := s.engine(ctx)
	if err != nil {
		return domain.NotFound, err
	}

	id, err := eng.GetLeastUsedWarehouse(start, end)
	if err != nil {
		s.logger.Warn("Consulta de armazém menos usado rejeitada.", map[string]interface{}{"error": err.Error()})
		return domain.NotFound, err
	}

	s.logger.Info("Armazém menos usado calculado.", map[string]interface{}{"warehouse_id": id})
	return id, nil
}
