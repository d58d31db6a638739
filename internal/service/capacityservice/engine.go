package capacityservice

import (
	"time"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
)

// Engine responde às consultas de alocação sobre um registro ordenado de armazéns.
// A ordem do registro é o critério de desempate de todas as consultas.
// O Engine nunca altera os armazéns recebidos e não guarda resultados entre chamadas.
type Engine struct {
	warehouses []domain.Warehouse
	now        func() time.Time
}

// EngineOption configura um Engine.
type EngineOption func(*Engine)

// WithClock substitui o relógio usado para decidir o que é "hoje".
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// utcNow é o relógio padrão. "Hoje" é sempre o dia de calendário em UTC,
// independente do fuso do host.
func utcNow() time.Time {
	return time.Now().UTC()
}

// NewEngine guarda a referência ao registro sem copiar nem validar seu conteúdo.
func NewEngine(warehouses []domain.Warehouse, opts ...EngineOption) *Engine {
	e := &Engine{warehouses: warehouses, now: utcNow}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindAvailableWarehouse retorna o primeiro armazém (na ordem do registro) que comporta um item
// height x width x length em todos os dias de startDate a endDate.
// Retorna domain.NotFound quando nenhum armazém comporta o item.
func (e *Engine) FindAvailableWarehouse(startDate, endDate time.Time, height, width, length float64) (int, error) {
	if len(e.warehouses) == 0 {
		return domain.NotFound, apperror.ErrNoWarehousesAvailable
	}
	required := domain.ThreeDRoom{Height: height, Width: width, Length: length}
	if !required.IsValid() {
		return domain.NotFound, apperror.ErrInvalidDimensions
	}
	start, end := domain.Day(startDate), domain.Day(endDate)
	if start.After(end) {
		return domain.NotFound, apperror.ErrInvalidDateRange
	}
	if !start.After(domain.Day(e.now())) {
		return domain.NotFound, apperror.ErrStartDateInPast
	}

	requiredVolume := required.Volume()
	for _, w := range e.warehouses {
		if fits(w, start, end, requiredVolume) {
			return w.ID, nil
		}
	}
	return domain.NotFound, nil
}

// fits para no primeiro dia em que o volume pedido estoura a capacidade.
func fits(w domain.Warehouse, start, end time.Time, requiredVolume float64) bool {
	capacity := w.Volume()
	for day := range domain.Days(start, end) {
		if w.OccupiedOn(day)+requiredVolume > capacity {
			return false
		}
	}
	return true
}

// GetFullyUtilizedDates lista, em ordem crescente, os dias em que a ocupação somada de todos os
// armazéns atinge ou ultrapassa a capacidade somada.
func (e *Engine) GetFullyUtilizedDates(startDate, endDate time.Time) ([]time.Time, error) {
	daily, err := e.CalculateAvailableCapacity(startDate, endDate)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0)
	for _, d := range daily {
		if d.Available <= 0 {
			dates = append(dates, d.Date)
		}
	}
	return dates, nil
}

// CalculateAvailableCapacity retorna, para cada dia do intervalo, a capacidade total menos a
// ocupação somada. Valores negativos indicam excesso de reservas e não são truncados.
func (e *Engine) CalculateAvailableCapacity(startDate, endDate time.Time) ([]domain.DailyCapacity, error) {
	total, err := e.aggregateCapacity(startDate, endDate)
	if err != nil {
		return nil, err
	}

	daily := make([]domain.DailyCapacity, 0)
	for day := range domain.Days(startDate, endDate) {
		occupied := 0.0
		for _, w := range e.warehouses {
			occupied += w.OccupiedOn(day)
		}
		daily = append(daily, domain.DailyCapacity{Date: day, Available: total - occupied})
	}
	return daily, nil
}

// aggregateCapacity valida as pré-condições das consultas agregadas e devolve a capacidade total.
func (e *Engine) aggregateCapacity(startDate, endDate time.Time) (float64, error) {
	if len(e.warehouses) == 0 {
		return 0, apperror.ErrNoWarehousesAvailable
	}
	if domain.Day(startDate).After(domain.Day(endDate)) {
		return 0, apperror.ErrInvalidDateRange
	}
	total := 0.0
	for _, w := range e.warehouses {
		total += w.Volume()
	}
	if total <= 0 {
		return 0, apperror.ErrInvalidWarehouseConfiguration
	}
	return total, nil
}

// GetLeastUsedWarehouse retorna o armazém com menor uso em volume-dias no intervalo.
// Empates ficam com o primeiro na ordem do registro. Retorna domain.NotFound quando o registro
// está vazio ou quando nenhum armazém tem uso algum.
func (e *Engine) GetLeastUsedWarehouse(startDate, endDate time.Time) (int, error) {
	if domain.Day(startDate).After(domain.Day(endDate)) {
		return domain.NotFound, apperror.ErrInvalidDateRange
	}
	if len(e.warehouses) == 0 {
		return domain.NotFound, nil
	}

	leastID := domain.NotFound
	minUsage := 0.0
	anyUsage := false
	for i, w := range e.warehouses {
		usage := w.UsageBetween(startDate, endDate)
		if usage != 0 {
			anyUsage = true
		}
		if i == 0 || usage < minUsage {
			minUsage = usage
			leastID = w.ID
		}
	}

	if !anyUsage {
		return domain.NotFound, nil
	}
	return leastID, nil
}
