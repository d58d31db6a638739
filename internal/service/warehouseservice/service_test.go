package warehouseservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/logger"
	"gocapacity/internal/service/warehouseservice"
)

// MockWarehouseRepository é uma implementação mock da interface WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	args := m.Called(ctx, warehouse)
	return args.Get(0).(domain.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) GetWarehouseByID(ctx context.Context, id int) (domain.Warehouse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) DeleteWarehouse(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseRepository) AddItem(ctx context.Context, warehouseID int, item domain.Item) (domain.Item, error) {
	args := m.Called(ctx, warehouseID, item)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockWarehouseRepository) DeactivateItem(ctx context.Context, warehouseID, itemID int) (domain.Item, error) {
	args := m.Called(ctx, warehouseID, itemID)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockWarehouseRepository) Snapshot(ctx context.Context) ([]domain.Warehouse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Warehouse), args.Error(1)
}

func newTestService(repo warehouseservice.WarehouseRepository) *warehouseservice.Service {
	return warehouseservice.NewService(repo, logger.NewNop())
}

var room = domain.ThreeDRoom{Height: 10, Width: 10, Length: 10}

// --- Testes para CreateWarehouse ---

func TestCreateWarehouse_Success(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	expected := domain.Warehouse{ID: 1, Name: "Armazém Norte", Capacity: room, Items: []domain.Item{}}
	mockRepo.On("CreateWarehouse", mock.Anything, expected).Return(expected, nil)

	result, err := svc.CreateWarehouse(context.Background(), domain.CreateWarehouseRequest{ID: 1, Name: "  Armazém Norte ", Capacity: room})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.ID)
	assert.Equal(t, 1000.0, result.Volume())
	mockRepo.AssertExpectations(t)
}

func TestCreateWarehouse_Fail_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.CreateWarehouseRequest
		message string
	}{
		{"id zero", domain.CreateWarehouseRequest{ID: 0, Name: "Norte", Capacity: room}, "inteiro positivo"},
		{"nome vazio", domain.CreateWarehouseRequest{ID: 1, Name: " ", Capacity: room}, "não pode ser vazio"},
		{"nome curto", domain.CreateWarehouseRequest{ID: 1, Name: "AB", Capacity: room}, "entre 3 e 100"},
		{"capacidade zero", domain.CreateWarehouseRequest{ID: 1, Name: "Norte", Capacity: domain.ThreeDRoom{Height: 0, Width: 1, Length: 1}}, "maiores que zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockWarehouseRepository)
			svc := newTestService(mockRepo)

			_, err := svc.CreateWarehouse(context.Background(), tt.req)

			assert.Error(t, err)
			assert.IsType(t, &apperror.ValidationError{}, err)
			assert.Contains(t, err.Error(), tt.message)
			mockRepo.AssertNotCalled(t, "CreateWarehouse")
		})
	}
}

func TestCreateWarehouse_Fail_DuplicateID(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	mockRepo.On("CreateWarehouse", mock.Anything, mock.AnythingOfType("domain.Warehouse")).
		Return(domain.Warehouse{}, apperror.NewConflictError("Armazém 1 já existe."))

	_, err := svc.CreateWarehouse(context.Background(), domain.CreateWarehouseRequest{ID: 1, Name: "Norte", Capacity: room})

	assert.IsType(t, &apperror.ConflictError{}, err)
	mockRepo.AssertExpectations(t)
}

func TestCreateWarehouse_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	mockRepo.On("CreateWarehouse", mock.Anything, mock.AnythingOfType("domain.Warehouse")).
		Return(domain.Warehouse{}, errors.New("database connection failed"))

	_, err := svc.CreateWarehouse(context.Background(), domain.CreateWarehouseRequest{ID: 1, Name: "Norte", Capacity: room})

	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "Falha interna ao criar armazém")
}

// --- Testes para GetWarehouseByID / GetAllWarehouses / DeleteWarehouse ---

func TestGetWarehouseByID_Success(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	expected := domain.Warehouse{ID: 3, Name: "Sul", Capacity: room}
	mockRepo.On("GetWarehouseByID", mock.Anything, 3).Return(expected, nil)

	result, err := svc.GetWarehouseByID(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestGetWarehouseByID_Fail_NotFound(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	mockRepo.On("GetWarehouseByID", mock.Anything, 9).Return(domain.Warehouse{}, apperror.NewNotFoundError("Armazém 9 não encontrado."))

	_, err := svc.GetWarehouseByID(context.Background(), 9)

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestGetWarehouseByID_Fail_InvalidID(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	_, err := svc.GetWarehouseByID(context.Background(), -1)

	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "GetWarehouseByID")
}

func TestGetAllWarehouses_Success(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	expected := []domain.Warehouse{{ID: 2, Name: "W2"}, {ID: 1, Name: "W1"}}
	mockRepo.On("GetAllWarehouses", mock.Anything).Return(expected, nil)

	results, err := svc.GetAllWarehouses(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, results, "a ordem do registro deve ser preservada")
}

func TestGetAllWarehouses_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	mockRepo.On("GetAllWarehouses", mock.Anything).Return([]domain.Warehouse{}, errors.New("network error"))

	_, err := svc.GetAllWarehouses(context.Background())

	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "Falha interna ao buscar armazéns")
}

func TestDeleteWarehouse_Success(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	mockRepo.On("DeleteWarehouse", mock.Anything, 4).Return(nil)

	assert.NoError(t, svc.DeleteWarehouse(context.Background(), 4))
	mockRepo.AssertExpectations(t)
}

// --- Testes para AddItem ---

func TestAddItem_Success_NormalizesDates(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	mockRepo.On("AddItem", mock.Anything, 1, mock.MatchedBy(func(item domain.Item) bool {
		return item.ID == 10 &&
			item.IsActive &&
			item.StartDate.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)) &&
			item.EndDate.Equal(time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC))
	})).Return(domain.Item{ID: 10, Dimensions: domain.ThreeDRoom{Height: 1, Width: 2, Length: 3}, IsActive: true}, nil)

	item, err := svc.AddItem(context.Background(), 1, domain.AddItemRequest{
		ID:         10,
		Name:       "Pallet",
		Dimensions: domain.ThreeDRoom{Height: 1, Width: 2, Length: 3},
		StartDate:  "2025-01-10",
		EndDate:    "2025-01-12",
	})

	assert.NoError(t, err)
	assert.Equal(t, 6.0, item.Volume())
	mockRepo.AssertExpectations(t)
}

func TestAddItem_Fail_Validation(t *testing.T) {
	valid := domain.AddItemRequest{ID: 1, Name: "Pallet", Dimensions: room, StartDate: "2025-01-10", EndDate: "2025-01-12"}

	tests := []struct {
		name    string
		mutate  func(r *domain.AddItemRequest)
		message string
	}{
		{"sem nome", func(r *domain.AddItemRequest) { r.Name = "" }, "nome do item"},
		{"dimensão negativa", func(r *domain.AddItemRequest) { r.Dimensions.Width = -2 }, "maiores que zero"},
		{"data inválida", func(r *domain.AddItemRequest) { r.StartDate = "10/01/2025" }, "Data inicial inválida"},
		{"intervalo invertido", func(r *domain.AddItemRequest) { r.StartDate = "2025-01-13" }, "não pode ser posterior"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockWarehouseRepository)
			svc := newTestService(mockRepo)
			req := valid
			tt.mutate(&req)

			_, err := svc.AddItem(context.Background(), 1, req)

			assert.IsType(t, &apperror.ValidationError{}, err)
			assert.Contains(t, err.Error(), tt.message)
			mockRepo.AssertNotCalled(t, "AddItem")
		})
	}
}

func TestAddItem_Fail_WarehouseNotFound(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	mockRepo.On("AddItem", mock.Anything, 5, mock.AnythingOfType("domain.Item")).
		Return(domain.Item{}, apperror.NewNotFoundError("Armazém 5 não encontrado."))

	_, err := svc.AddItem(context.Background(), 5, domain.AddItemRequest{ID: 1, Name: "Pallet", Dimensions: room, StartDate: "2025-01-10", EndDate: "2025-01-10"})

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// --- Testes para DeactivateItem / Snapshot ---

func TestDeactivateItem_Success(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	mockRepo.On("DeactivateItem", mock.Anything, 1, 10).Return(domain.Item{ID: 10, IsActive: false}, nil)

	item, err := svc.DeactivateItem(context.Background(), 1, 10)

	assert.NoError(t, err)
	assert.False(t, item.IsActive)
	mockRepo.AssertExpectations(t)
}

func TestSnapshot_DelegatesToRepository(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	svc := newTestService(mockRepo)

	expected := []domain.Warehouse{{ID: 1, Capacity: room}}
	mockRepo.On("Snapshot", mock.Anything).Return(expected, nil)

	result, err := svc.Snapshot(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
}
