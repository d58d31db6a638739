package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gocapacity/internal/api/capacity"
	"gocapacity/internal/api/router"
	"gocapacity/internal/api/user"
	"gocapacity/internal/api/warehouse"
	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/cache"
	"gocapacity/internal/pkg/logger"
	"gocapacity/internal/pkg/metrics"
	"gocapacity/internal/pkg/token"
	"gocapacity/internal/service/capacityservice"
	"gocapacity/internal/service/userservice"
	"gocapacity/internal/service/warehouseservice"
)

// memWarehouses é um repositório em memória que preserva a ordem de cadastro.
type memWarehouses struct {
	mu         sync.Mutex
	warehouses []domain.Warehouse
}

func (m *memWarehouses) find(id int) int {
	return slices.IndexFunc(m.warehouses, func(w domain.Warehouse) bool { return w.ID == id })
}

func (m *memWarehouses) CreateWarehouse(_ context.Context, w domain.Warehouse) (domain.Warehouse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(w.ID) >= 0 {
		return domain.Warehouse{}, apperror.NewConflictError(fmt.Sprintf("Armazém com ID %d já existe.", w.ID))
	}
	m.warehouses = append(m.warehouses, w)
	return w, nil
}

func (m *memWarehouses) GetWarehouseByID(_ context.Context, id int) (domain.Warehouse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return domain.Warehouse{}, apperror.NewNotFoundError("não encontrado")
	}
	return m.warehouses[i], nil
}

func (m *memWarehouses) GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	return m.Snapshot(ctx)
}

func (m *memWarehouses) DeleteWarehouse(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return apperror.NewNotFoundError("não encontrado")
	}
	m.warehouses = slices.Delete(m.warehouses, i, i+1)
	return nil
}

func (m *memWarehouses) AddItem(_ context.Context, warehouseID int, item domain.Item) (domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(warehouseID)
	if i < 0 {
		return domain.Item{}, apperror.NewNotFoundError("não encontrado")
	}
	m.warehouses[i].Items = append(m.warehouses[i].Items, item)
	return item, nil
}

func (m *memWarehouses) DeactivateItem(_ context.Context, warehouseID, itemID int) (domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(warehouseID)
	if i < 0 {
		return domain.Item{}, apperror.NewNotFoundError("não encontrado")
	}
	for j := range m.warehouses[i].Items {
		if m.warehouses[i].Items[j].ID == itemID {
			m.warehouses[i].Items[j].IsActive = false
			return m.warehouses[i].Items[j], nil
		}
	}
	return domain.Item{}, apperror.NewNotFoundError("item não encontrado")
}

func (m *memWarehouses) Snapshot(context.Context) ([]domain.Warehouse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Warehouse, len(m.warehouses))
	for i, w := range m.warehouses {
		w.Items = slices.Clone(w.Items)
		out[i] = w
	}
	return out, nil
}

type memUsers struct {
	mu        sync.Mutex
	operators []domain.Operator
}

func (m *memUsers) Save(_ context.Context, op domain.Operator) (domain.Operator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.operators {
		if o.Email == op.Email {
			return domain.Operator{}, apperror.NewConflictError("email em uso")
		}
	}
	op.ID = fmt.Sprintf("op-%d", len(m.operators)+1)
	m.operators = append(m.operators, op)
	return op, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (domain.Operator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.operators {
		if o.Email == email {
			return o, nil
		}
	}
	return domain.Operator{}, apperror.NewNotFoundError("não encontrado")
}

func (m *memUsers) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.operators), nil
}

var today = time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T, rateLimit int) *testServer {
	log := logger.NewNop()
	tokens := token.NewService("segredo-de-teste", time.Hour)

	warehouseSvc := warehouseservice.NewService(&memWarehouses{}, log)
	capacitySvc := capacityservice.NewService(warehouseSvc, log)
	capacitySvc.SetClock(func() time.Time { return today })
	userSvc := userservice.NewService(&memUsers{}, tokens, log)
	userSvc.SetHashCost(bcrypt.MinCost)

	h := router.NewRouter(router.Deps{
		WarehouseHandler: warehouse.NewHandler(warehouseSvc, log),
		CapacityHandler:  capacity.NewHandler(capacitySvc, capacity.DefaultMaxRangeDays, log),
		UserHandler:      user.NewHandler(userSvc, log),
		TokenService:     tokens,
		Cache:            cache.NewMemoryClient(),
		RateLimit:        rateLimit,
		RatePeriod:       time.Minute,
		Logger:           log,
		Metrics:          metrics.New(),
	})
	return &testServer{t: t, handler: h}
}

func (s *testServer) do(method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/v1/auth/login", "", domain.Credentials{Email: email, Password: password})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp domain.TokenResponse
	require.NoError(s.t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestPing(t *testing.T) {
	s := newTestServer(t, 100)

	rec := s.do(http.MethodGet, "/ping", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCapacityFlow(t *testing.T) {
	s := newTestServer(t, 100)

	// O primeiro operador vira admin.
	rec := s.do(http.MethodPost, "/v1/auth/register", "", domain.Registration{Email: "admin@gocapacity.dev", Password: "admin-pass"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, domain.RoleAdmin, decode[domain.Operator](t, rec).Role)
	admin := s.login("admin@gocapacity.dev", "admin-pass")

	// Operadores seguintes são user e não podem cadastrar armazéns.
	rec = s.do(http.MethodPost, "/v1/auth/register", "", domain.Registration{Email: "ops@gocapacity.dev", Password: "ops-pass1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	ops := s.login("ops@gocapacity.dev", "ops-pass1")

	room := domain.ThreeDRoom{Height: 10, Width: 10, Length: 10}
	rec = s.do(http.MethodPost, "/v1/warehouses", ops, domain.CreateWarehouseRequest{ID: 1, Name: "Norte", Capacity: room})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	for _, id := range []int{1, 2} {
		rec = s.do(http.MethodPost, "/v1/warehouses", admin, domain.CreateWarehouseRequest{ID: id, Name: fmt.Sprintf("Armazém %d", id), Capacity: room})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec = s.do(http.MethodPost, "/v1/warehouses", admin, domain.CreateWarehouseRequest{ID: 1, Name: "Duplicado", Capacity: room})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Armazém 1 fica lotado em 10 e 11/01.
	rec = s.do(http.MethodPost, "/v1/warehouses/1/items", ops, domain.AddItemRequest{
		ID: 1, Name: "Bloco", Dimensions: room, StartDate: "2025-01-10", EndDate: "2025-01-11",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/v1/capacity/available-warehouse?start=2025-01-10&end=2025-01-12&height=5&width=5&length=5", ops, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.AvailableWarehouseResponse{WarehouseID: 2, Found: true}, decode[domain.AvailableWarehouseResponse](t, rec))

	rec = s.do(http.MethodGet, "/v1/capacity/available?start=2025-01-10&end=2025-01-12", ops, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.AvailableCapacityEntry{
		{Date: "2025-01-10", Available: 1000},
		{Date: "2025-01-11", Available: 1000},
		{Date: "2025-01-12", Available: 2000},
	}, decode[[]domain.AvailableCapacityEntry](t, rec))

	rec = s.do(http.MethodGet, "/v1/capacity/least-used?start=2025-01-10&end=2025-01-12", ops, nil)
	assert.Equal(t, domain.LeastUsedWarehouseResponse{WarehouseID: 2, Found: true}, decode[domain.LeastUsedWarehouseResponse](t, rec))

	// Lotando o armazém 2 no dia 10, o dia fica totalmente utilizado.
	rec = s.do(http.MethodPost, "/v1/warehouses/2/items", ops, domain.AddItemRequest{
		ID: 2, Name: "Bloco", Dimensions: room, StartDate: "2025-01-10", EndDate: "2025-01-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodGet, "/v1/capacity/fully-utilized?start=2025-01-09&end=2025-01-12", ops, nil)
	assert.Equal(t, []string{"2025-01-10"}, decode[domain.FullyUtilizedResponse](t, rec).Dates)

	// Desativar o item libera o espaço.
	rec = s.do(http.MethodPatch, "/v1/warehouses/2/items/2/deactivate", ops, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/v1/capacity/fully-utilized?start=2025-01-09&end=2025-01-12", ops, nil)
	assert.Equal(t, []string{}, decode[domain.FullyUtilizedResponse](t, rec).Dates)

	rec = s.do(http.MethodGet, "/v1/warehouses", ops, nil)
	list := decode[[]domain.Warehouse](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, []int{1, 2}, []int{list[0].ID, list[1].ID})

	rec = s.do(http.MethodDelete, "/v1/warehouses/2", admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, "/v1/warehouses/2", ops, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCapacityErrors(t *testing.T) {
	s := newTestServer(t, 100)
	s.do(http.MethodPost, "/v1/auth/register", "", domain.Registration{Email: "admin@gocapacity.dev", Password: "admin-pass"})
	admin := s.login("admin@gocapacity.dev", "admin-pass")

	// Registro vazio.
	rec := s.do(http.MethodGet, "/v1/capacity/available?start=2025-01-10&end=2025-01-12", admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "NO_WAREHOUSES_AVAILABLE", decode[domain.ErrorResponse](t, rec).Category)

	s.do(http.MethodPost, "/v1/warehouses", admin, domain.CreateWarehouseRequest{ID: 1, Name: "Norte", Capacity: domain.ThreeDRoom{Height: 1, Width: 1, Length: 1}})

	tests := []struct {
		name     string
		path     string
		status   int
		category string
	}{
		{"intervalo invertido", "/v1/capacity/available?start=2025-01-12&end=2025-01-10", http.StatusBadRequest, "INVALID_DATE_RANGE"},
		{"data malformada", "/v1/capacity/least-used?start=12/01/2025&end=2025-01-10", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"data ausente", "/v1/capacity/fully-utilized?end=2025-01-10", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"dimensão zero", "/v1/capacity/available-warehouse?start=2025-01-10&end=2025-01-12&height=0&width=1&length=1", http.StatusBadRequest, "INVALID_DIMENSIONS"},
		{"início hoje", "/v1/capacity/available-warehouse?start=2025-01-05&end=2025-01-12&height=1&width=1&length=1", http.StatusBadRequest, "START_DATE_IN_PAST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodGet, tt.path, admin, nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.category, decode[domain.ErrorResponse](t, rec).Category)
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, 100)

	rec := s.do(http.MethodGet, "/v1/capacity/least-used?start=2025-01-10&end=2025-01-12", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimitApplies(t *testing.T) {
	s := newTestServer(t, 1)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/ping", "", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodGet, "/ping", "", nil).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, 100)
	s.do(http.MethodGet, "/ping", "", nil)

	rec := s.do(http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="GET /ping"`)
}
