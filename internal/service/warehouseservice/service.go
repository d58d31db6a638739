package warehouseservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/logger"
)

// WarehouseRepository define o contrato que o Serviço de Armazéns espera da camada de Persistência.
// GetAllWarehouses e Snapshot devolvem os armazéns na ordem do registro (ordem de cadastro).
type WarehouseRepository interface {
	CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error)
	GetWarehouseByID(ctx context.Context, id int) (domain.Warehouse, error)
	GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id int) error
	AddItem(ctx context.Context, warehouseID int, item domain.Item) (domain.Item, error)
	DeactivateItem(ctx context.Context, warehouseID, itemID int) (domain.Item, error)
	Snapshot(ctx context.Context) ([]domain.Warehouse, error)
}

// Service valida a entrada externa e mantém o registro de armazéns e itens.
// É o produtor dos valores Warehouse/Item consumidos pelo motor de capacidade.
type Service struct {
	repo   WarehouseRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Armazéns.
func NewService(repo WarehouseRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateWarehouse cadastra um novo armazém após validações de negócio.
func (s *Service) CreateWarehouse(ctx context.Context, req domain.CreateWarehouseRequest) (domain.Warehouse, error) {
	s.logger.Debug("Iniciando criação de armazém no serviço.", map[string]interface{}{"id": req.ID, "name": req.Name})

	if req.ID <= 0 {
		return domain.Warehouse{}, apperror.NewValidationError("O ID do armazém deve ser um inteiro positivo.")
	}
	if err := s.validateWarehouseName(req.Name); err != nil {
		s.logger.Warn("Falha na validação do nome do armazém.", map[string]interface{}{"name": req.Name, "error": err.Error()})
		return domain.Warehouse{}, err
	}
	if !req.Capacity.IsValid() {
		return domain.Warehouse{}, apperror.NewValidationError("As dimensões do armazém devem ser maiores que zero.")
	}

	warehouse := domain.Warehouse{
		ID:       req.ID,
		Name:     strings.TrimSpace(req.Name),
		Capacity: req.Capacity,
		Items:    []domain.Item{},
	}

	created, err := s.repo.CreateWarehouse(ctx, warehouse)
	if err != nil {
		s.logger.Error("Falha ao criar armazém no repositório.", err)
		return domain.Warehouse{}, passthrough(err, "Falha interna ao criar armazém.")
	}

	s.logger.Info("Armazém criado com sucesso.", map[string]interface{}{"id": created.ID, "volume": created.Volume()})
	return created, nil
}

// GetWarehouseByID busca um armazém (com itens) pelo ID.
func (s *Service) GetWarehouseByID(ctx context.Context, id int) (domain.Warehouse, error) {
	if id <= 0 {
		return domain.Warehouse{}, apperror.NewValidationError("O ID do armazém deve ser um inteiro positivo.")
	}

	warehouse, err := s.repo.GetWarehouseByID(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar armazém no repositório.", err)
		return domain.Warehouse{}, err // Erros do repositório já são NotFoundError ou DBError
	}
	return warehouse, nil
}

// GetAllWarehouses lista os armazéns na ordem do registro.
func (s *Service) GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	warehouses, err := s.repo.GetAllWarehouses(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar todos os armazéns no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar armazéns.", err)
	}

	s.logger.Info("Todos os armazéns encontrados com sucesso.", map[string]interface{}{"count": len(warehouses)})
	return warehouses, nil
}

// DeleteWarehouse remove um armazém e seus itens do registro.
func (s *Service) DeleteWarehouse(ctx context.Context, id int) error {
	if id <= 0 {
		return apperror.NewValidationError("O ID do armazém deve ser um inteiro positivo.")
	}

	if err := s.repo.DeleteWarehouse(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar armazém no repositório.", err)
		return err
	}

	s.logger.Info("Armazém deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// AddItem valida e aloca um item em um armazém existente.
// As datas são normalizadas para o dia de calendário antes de persistir.
func (s *Service) AddItem(ctx context.Context, warehouseID int, req domain.AddItemRequest) (domain.Item, error) {
	s.logger.Debug("Iniciando alocação de item no serviço.", map[string]interface{}{"warehouse_id": warehouseID, "item_id": req.ID})

	if warehouseID <= 0 {
		return domain.Item{}, apperror.NewValidationError("O ID do armazém deve ser um inteiro positivo.")
	}
	if req.ID <= 0 {
		return domain.Item{}, apperror.NewValidationError("O ID do item deve ser um inteiro positivo.")
	}
	if strings.TrimSpace(req.Name) == "" {
		return domain.Item{}, apperror.NewValidationError("O nome do item não pode ser vazio.")
	}
	if !req.Dimensions.IsValid() {
		return domain.Item{}, apperror.NewValidationError("As dimensões do item devem ser maiores que zero.")
	}

	start, err := domain.ParseDay(req.StartDate)
	if err != nil {
		return domain.Item{}, apperror.NewValidationError(fmt.Sprintf("Data inicial inválida (%q), use AAAA-MM-DD.", req.StartDate))
	}
	end, err := domain.ParseDay(req.EndDate)
	if err != nil {
		return domain.Item{}, apperror.NewValidationError(fmt.Sprintf("Data final inválida (%q), use AAAA-MM-DD.", req.EndDate))
	}
	if start.After(end) {
		return domain.Item{}, apperror.NewValidationError("A data inicial não pode ser posterior à data final.")
	}

	item := domain.Item{
		ID:         req.ID,
		Name:       strings.TrimSpace(req.Name),
		Dimensions: req.Dimensions,
		StartDate:  start,
		EndDate:    end,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.repo.AddItem(ctx, warehouseID, item)
	if err != nil {
		s.logger.Error("Falha ao alocar item no repositório.", err)
		return domain.Item{}, passthrough(err, "Falha interna ao alocar item.")
	}

	s.logger.Info("Item alocado com sucesso.", map[string]interface{}{
		"warehouse_id": warehouseID,
		"item_id":      created.ID,
		"volume":       created.Volume(),
	})
	return created, nil
}

// DeactivateItem marca um item como inativo; ele deixa de ocupar espaço em qualquer dia.
func (s *Service) DeactivateItem(ctx context.Context, warehouseID, itemID int) (domain.Item, error) {
	if warehouseID <= 0 || itemID <= 0 {
		return domain.Item{}, apperror.NewValidationError("Os IDs de armazém e item devem ser inteiros positivos.")
	}

	item, err := s.repo.DeactivateItem(ctx, warehouseID, itemID)
	if err != nil {
		s.logger.Error("Falha ao desativar item no repositório.", err)
		return domain.Item{}, passthrough(err, "Falha interna ao desativar item.")
	}

	s.logger.Info("Item desativado.", map[string]interface{}{"warehouse_id": warehouseID, "item_id": itemID})
	return item, nil
}

// Snapshot devolve o registro completo, na ordem do registro, para o motor de capacidade.
func (s *Service) Snapshot(ctx context.Context) ([]domain.Warehouse, error) {
	return s.repo.Snapshot(ctx)
}

// validateWarehouseName é uma função auxiliar para validar o nome do armazém.
func (s *Service) validateWarehouseName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.NewValidationError("O nome do armazém não pode ser vazio.")
	}
	if len(name) < 3 || len(name) > 100 {
		return apperror.NewValidationError("O nome do armazém deve ter entre 3 e 100 caracteres.")
	}
	return nil
}

// passthrough mantém erros tipados do repositório (NotFound, Conflict) e encapsula o resto.
func passthrough(err error, msg string) error {
	if _, ok := err.(apperror.AppError); ok {
		return err
	}
	return apperror.NewInternalError(msg, err)
}
