package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gocapacity/docs" // registra a especificação OpenAPI

	"gocapacity/internal/api/capacity"
	"gocapacity/internal/api/report"
	"gocapacity/internal/api/user"
	"gocapacity/internal/api/warehouse"
	"gocapacity/internal/domain"
	"gocapacity/internal/pkg/cache"
	"gocapacity/internal/pkg/logger"
	"gocapacity/internal/pkg/metrics"
	"gocapacity/internal/pkg/middleware"
)

// Deps reúne os handlers e a infraestrutura usados pelo roteador.
// ReportHandler e Metrics são opcionais: sem eles as rotas correspondentes não são registradas.
type Deps struct {
	WarehouseHandler *warehouse.Handler
	CapacityHandler  *capacity.Handler
	UserHandler      *user.Handler
	ReportHandler    *report.Handler
	Metrics          *metrics.Metrics

	TokenService middleware.TokenService
	Cache        cache.Client
	RateLimit    int
	RatePeriod   time.Duration
	Logger       logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	log := d.Logger

	auth := middleware.NewAuthMiddleware(d.TokenService, log)
	anyRole := func(h http.HandlerFunc) http.Handler { return auth(h) }
	only := func(h http.HandlerFunc, roles ...domain.Role) http.Handler {
		return middleware.Chain(h, auth, middleware.RequireRoles(log, roles...))
	}

	// --- Health Check e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- Autenticação ---
	mux.Handle("POST /v1/auth/register", middleware.OptionalAuth(d.TokenService, log)(http.HandlerFunc(d.UserHandler.RegisterHandler)))
	mux.HandleFunc("POST /v1/auth/login", d.UserHandler.LoginHandler)

	// --- Registro de armazéns ---
	wh := d.WarehouseHandler
	mux.Handle("GET /v1/warehouses", anyRole(wh.GetAllWarehousesHandler))
	mux.Handle("GET /v1/warehouses/{id}", anyRole(wh.GetWarehouseByIDHandler))
	mux.Handle("POST /v1/warehouses", only(wh.CreateWarehouseHandler, domain.RoleAdmin))
	mux.Handle("DELETE /v1/warehouses/{id}", only(wh.DeleteWarehouseHandler, domain.RoleAdmin))
	mux.Handle("POST /v1/warehouses/{id}/items", only(wh.AddItemHandler, domain.RoleAdmin, domain.RoleUser))
	mux.Handle("PATCH /v1/warehouses/{id}/items/{itemID}/deactivate", only(wh.DeactivateItemHandler, domain.RoleAdmin, domain.RoleUser))

	// --- Consultas de capacidade ---
	ch := d.CapacityHandler
	mux.Handle("GET /v1/capacity/available-warehouse", anyRole(ch.FindAvailableWarehouseHandler))
	mux.Handle("GET /v1/capacity/fully-utilized", anyRole(ch.FullyUtilizedDatesHandler))
	mux.Handle("GET /v1/capacity/available", anyRole(ch.AvailableCapacityHandler))
	mux.Handle("GET /v1/capacity/least-used", anyRole(ch.LeastUsedWarehouseHandler))

	if d.ReportHandler != nil {
		mux.Handle("GET /v1/reports/latest", anyRole(d.ReportHandler.LatestReportHandler))
	}

	// Middlewares globais: o primeiro é o mais externo.
	mws := []func(http.Handler) http.Handler{
		middleware.RequestID(log),
		middleware.RateLimiter(d.Cache, d.RateLimit, d.RatePeriod, log),
	}
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
		mws = append(mws, d.Metrics.Middleware)
	}
	return middleware.Chain(mux, mws...)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
