package warehouse

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/logger"
	"gocapacity/internal/pkg/respond"
)

// WarehouseService define o contrato que o Handler espera da camada de Serviço.
type WarehouseService interface {
	CreateWarehouse(ctx context.Context, req domain.CreateWarehouseRequest) (domain.Warehouse, error)
	GetWarehouseByID(ctx context.Context, id int) (domain.Warehouse, error)
	GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id int) error
	AddItem(ctx context.Context, warehouseID int, req domain.AddItemRequest) (domain.Item, error)
	DeactivateItem(ctx context.Context, warehouseID, itemID int) (domain.Item, error)
}

// Handler agrupa todos os métodos de Handler de armazéns.
type Handler struct {
	Service WarehouseService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc WarehouseService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateWarehouseHandler lida com a requisição POST /v1/warehouses.
// @Summary Cadastra um armazém
// @Tags warehouses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param warehouse body domain.CreateWarehouseRequest true "ID, nome e dimensões do armazém"
// @Success 201 {object} domain.Warehouse "Armazém criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "ID já cadastrado"
// @Router /warehouses [post]
func (h *Handler) CreateWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateWarehouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError("Payload JSON inválido."))
		return
	}

	warehouse, err := h.Service.CreateWarehouse(r.Context(), req)
	respond.Service(w, r, h.Logger, warehouse, err, http.StatusCreated)
}

// GetWarehouseByIDHandler lida com a requisição GET /v1/warehouses/{id}.
// @Summary Busca um armazém com seus itens
// @Tags warehouses
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do armazém"
// @Success 200 {object} domain.Warehouse
// @Failure 404 {object} domain.ErrorResponse "Armazém não encontrado"
// @Router /warehouses/{id} [get]
func (h *Handler) GetWarehouseByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}

	warehouse, err := h.Service.GetWarehouseByID(r.Context(), id)
	respond.Service(w, r, h.Logger, warehouse, err, http.StatusOK)
}

// GetAllWarehousesHandler lida com a requisição GET /v1/warehouses.
// @Summary Lista os armazéns na ordem do registro
// @Tags warehouses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Warehouse
// @Router /warehouses [get]
func (h *Handler) GetAllWarehousesHandler(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.Service.GetAllWarehouses(r.Context())
	respond.Service(w, r, h.Logger, warehouses, err, http.StatusOK)
}

// DeleteWarehouseHandler lida com a requisição DELETE /v1/warehouses/{id}.
// @Summary Remove um armazém e seus itens
// @Tags warehouses
// @Security BearerAuth
// @Param id path int true "ID do armazém"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse "Armazém não encontrado"
// @Router /warehouses/{id} [delete]
func (h *Handler) DeleteWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}

	err := h.Service.DeleteWarehouse(r.Context(), id)
	respond.Service(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// AddItemHandler lida com a requisição POST /v1/warehouses/{id}/items.
// @Summary Aloca um item em um armazém
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do armazém"
// @Param item body domain.AddItemRequest true "Item com dimensões e intervalo de datas (YYYY-MM-DD)"
// @Success 201 {object} domain.Item
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Armazém não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Item já existe"
// @Router /warehouses/{id}/items [post]
func (h *Handler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}

	var req domain.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError("Payload JSON inválido."))
		return
	}

	item, err := h.Service.AddItem(r.Context(), warehouseID, req)
	respond.Service(w, r, h.Logger, item, err, http.StatusCreated)
}

// DeactivateItemHandler lida com a requisição PATCH /v1/warehouses/{id}/items/{itemID}/deactivate.
// @Summary Desativa um item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do armazém"
// @Param itemID path int true "ID do item"
// @Success 200 {object} domain.Item
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Router /warehouses/{id}/items/{itemID}/deactivate [patch]
func (h *Handler) DeactivateItemHandler(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := h.pathInt(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathInt(w, r, "itemID")
	if !ok {
		return
	}

	item, err := h.Service.DeactivateItem(r.Context(), warehouseID, itemID)
	respond.Service(w, r, h.Logger, item, err, http.StatusOK)
}

// pathInt lê um parâmetro inteiro do path; em caso de erro já responde 400.
func (h *Handler) pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError("O parâmetro '"+name+"' deve ser um inteiro."))
		return 0, false
	}
	return v, true
}
