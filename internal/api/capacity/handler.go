package capacity

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/logger"
	"gocapacity/internal/pkg/respond"
)

// CapacityService define as quatro consultas de capacidade expostas pela API.
type CapacityService interface {
	FindAvailableWarehouse(ctx context.Context, start, end time.Time, dims domain.ThreeDRoom) (int, error)
	GetFullyUtilizedDates(ctx context.Context, start, end time.Time) ([]time.Time, error)
	CalculateAvailableCapacity(ctx context.Context, start, end time.Time) ([]domain.DailyCapacity, error)
	GetLeastUsedWarehouse(ctx context.Context, start, end time.Time) (int, error)
}

// DefaultMaxRangeDays é o limite de dias por consulta quando nenhum é configurado.
const DefaultMaxRangeDays = 366

// Handler agrupa os handlers de consulta de capacidade.
// MaxRangeDays limita o tamanho do intervalo: o motor varre cada dia de cada armazém.
type Handler struct {
	Service      CapacityService
	Logger       logger.Logger
	MaxRangeDays int
}

// NewHandler cria uma nova instância do Handler. maxRangeDays <= 0 usa DefaultMaxRangeDays.
func NewHandler(svc CapacityService, maxRangeDays int, log logger.Logger) *Handler {
	if maxRangeDays <= 0 {
		maxRangeDays = DefaultMaxRangeDays
	}
	return &Handler{
		Service:      svc,
		Logger:       log,
		MaxRangeDays: maxRangeDays,
	}
}

// FindAvailableWarehouseHandler lida com GET /v1/capacity/available-warehouse.
// @Summary Primeiro armazém (na ordem do registro) que comporta o item em todos os dias
// @Tags capacity
// @Produce json
// @Security BearerAuth
// @Param start query string true "Data inicial (YYYY-MM-DD), deve ser posterior a hoje"
// @Param end query string true "Data final (YYYY-MM-DD)"
// @Param height query number true "Altura do item"
// @Param width query number true "Largura do item"
// @Param length query number true "Comprimento do item"
// @Success 200 {object} domain.AvailableWarehouseResponse "warehouse_id -1 quando nenhum armazém comporta"
// @Failure 400 {object} domain.ErrorResponse "Datas ou dimensões inválidas"
// @Failure 409 {object} domain.ErrorResponse "Nenhum armazém cadastrado"
// @Router /capacity/available-warehouse [get]
func (h *Handler) FindAvailableWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.dateRange(r)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	dims, err := dimensions(r)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	id, err := h.Service.FindAvailableWarehouse(r.Context(), start, end, dims)
	respond.Service(w, r, h.Logger, domain.AvailableWarehouseResponse{WarehouseID: id, Found: id != domain.NotFound}, err, http.StatusOK)
}

// FullyUtilizedDatesHandler lida com GET /v1/capacity/fully-utilized.
// @Summary Dias em que a capacidade disponível agregada é zero ou negativa
// @Tags capacity
// @Produce json
// @Security BearerAuth
// @Param start query string true "Data inicial (YYYY-MM-DD)"
// @Param end query string true "Data final (YYYY-MM-DD)"
// @Success 200 {object} domain.FullyUtilizedResponse
// @Failure 400 {object} domain.ErrorResponse "Intervalo inválido"
// @Failure 409 {object} domain.ErrorResponse "Registro vazio ou sem capacidade"
// @Router /capacity/fully-utilized [get]
func (h *Handler) FullyUtilizedDatesHandler(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.dateRange(r)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	dates, err := h.Service.GetFullyUtilizedDates(r.Context(), start, end)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	resp := domain.FullyUtilizedResponse{Dates: make([]string, 0, len(dates))}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, d.Format(domain.DateLayout))
	}
	respond.JSON(w, h.Logger, http.StatusOK, resp)
}

// AvailableCapacityHandler lida com GET /v1/capacity/available.
// @Summary Capacidade disponível agregada por dia (pode ser negativa)
// @Tags capacity
// @Produce json
// @Security BearerAuth
// @Param start query string true "Data inicial (YYYY-MM-DD)"
// @Param end query string true "Data final (YYYY-MM-DD)"
// @Success 200 {array} domain.AvailableCapacityEntry
// @Failure 400 {object} domain.ErrorResponse "Intervalo inválido"
// @Failure 409 {object} domain.ErrorResponse "Registro vazio ou sem capacidade"
// @Router /capacity/available [get]
func (h *Handler) AvailableCapacityHandler(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.dateRange(r)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	daily, err := h.Service.CalculateAvailableCapacity(r.Context(), start, end)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	resp := make([]domain.AvailableCapacityEntry, 0, len(daily))
	for _, d := range daily {
		resp = append(resp, domain.AvailableCapacityEntry{Date: d.Date.Format(domain.DateLayout), Available: d.Available})
	}
	respond.JSON(w, h.Logger, http.StatusOK, resp)
}

// LeastUsedWarehouseHandler lida com GET /v1/capacity/least-used.
// @Summary Armazém com menor uso em volume-dias no intervalo
// @Tags capacity
// @Produce json
// @Security BearerAuth
// @Param start query string true "Data inicial (YYYY-MM-DD)"
// @Param end query string true "Data final (YYYY-MM-DD)"
// @Success 200 {object} domain.LeastUsedWarehouseResponse "warehouse_id -1 quando não há uso"
// @Failure 400 {object} domain.ErrorResponse "Intervalo inválido"
// @Router /capacity/least-used [get]
func (h *Handler) LeastUsedWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.dateRange(r)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	id, err := h.Service.GetLeastUsedWarehouse(r.Context(), start, end)
	respond.Service(w, r, h.Logger, domain.LeastUsedWarehouseResponse{WarehouseID: id, Found: id != domain.NotFound}, err, http.StatusOK)
}

// dateRange lê start/end e recusa intervalos maiores que MaxRangeDays.
// Intervalos invertidos seguem para o motor, que responde INVALID_DATE_RANGE.
func (h *Handler) dateRange(r *http.Request) (time.Time, time.Time, error) {
	start, err := queryDay(r, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := queryDay(r, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if days := domain.DaysBetween(start, end); days > h.MaxRangeDays {
		return time.Time{}, time.Time{}, apperror.NewValidationError(
			fmt.Sprintf("O intervalo tem %d dias; o máximo permitido é %d.", days, h.MaxRangeDays))
	}
	return start, end, nil
}

func queryDay(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, apperror.NewValidationError(fmt.Sprintf("O parâmetro '%s' é obrigatório (YYYY-MM-DD).", name))
	}
	day, err := domain.ParseDay(raw)
	if err != nil {
		return time.Time{}, apperror.NewValidationError(fmt.Sprintf("O parâmetro '%s' deve estar no formato YYYY-MM-DD.", name))
	}
	return day, nil
}

// dimensions lê height, width e length. Valores não positivos passam adiante para o motor decidir.
func dimensions(r *http.Request) (domain.ThreeDRoom, error) {
	var vals [3]float64
	for i, name := range []string{"height", "width", "length"} {
		raw := r.URL.Query().Get(name)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.ThreeDRoom{}, apperror.NewValidationError(fmt.Sprintf("O parâmetro '%s' deve ser numérico.", name))
		}
		vals[i] = v
	}
	return domain.ThreeDRoom{Height: vals[0], Width: vals[1], Length: vals[2]}, nil
}
