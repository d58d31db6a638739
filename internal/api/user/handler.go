package user

import (
	"context"
	"encoding/json"
	"net/http"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/logger"
	"gocapacity/internal/pkg/middleware"
	"gocapacity/internal/pkg/respond"
)

// UserService define o contrato para as operações de registro e login.
type UserService interface {
	Register(ctx context.Context, reg domain.Registration, grantor domain.Role) (domain.Operator, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.TokenResponse, error)
}

// Handler agrupa os handlers de autenticação de operadores.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterHandler lida com a requisição POST /v1/auth/register.
// @Summary Registra um novo operador
// @Description O primeiro operador vira admin. Papéis diferentes de user exigem um token de admin.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.Registration true "Email, senha e papel opcional"
// @Success 201 {object} domain.Operator "Operador criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Papel não pode ser concedido"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Router /auth/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError("Payload JSON inválido."))
		return
	}

	var grantor domain.Role
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		grantor = claims.Role
	}

	operator, err := h.Service.Register(r.Context(), reg, grantor)
	respond.Service(w, r, h.Logger, operator, err, http.StatusCreated)
}

// LoginHandler lida com a requisição POST /v1/auth/login.
// @Summary Autentica um operador e retorna um JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body domain.Credentials true "Credenciais do operador"
// @Success 200 {object} domain.TokenResponse "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /auth/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError("Payload JSON inválido."))
		return
	}

	resp, err := h.Service.Login(r.Context(), creds)
	respond.Service(w, r, h.Logger, resp, err, http.StatusOK)
}
