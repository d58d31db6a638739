package userservice

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/logger"
)

const minPasswordLength = 8

// UserRepository define o contrato de persistência de operadores.
type UserRepository interface {
	Save(ctx context.Context, operator domain.Operator) (domain.Operator, error)
	FindByEmail(ctx context.Context, email string) (domain.Operator, error)
	Count(ctx context.Context) (int, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(operatorID string, role string) (string, error)
}

// Service cadastra e autentica operadores.
type Service struct {
	repo     UserRepository
	tokenSvc TokenService
	logger   logger.Logger
	cost     int
}

// NewService cria uma nova instância do Service de operadores.
func NewService(repo UserRepository, tokenSvc TokenService, logger logger.Logger) *Service {
	return &Service{repo: repo, tokenSvc: tokenSvc, logger: logger, cost: bcrypt.DefaultCost}
}

// SetHashCost troca o custo do bcrypt (testes usam bcrypt.MinCost).
func (s *Service) SetHashCost(cost int) {
	s.cost = cost
}

// Register cadastra um operador.
// O primeiro operador do sistema vira admin. Depois disso o papel padrão é user
// e apenas um admin (grantor) pode conceder outro papel.
func (s *Service) Register(ctx context.Context, reg domain.Registration, grantor domain.Role) (domain.Operator, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if email == "" || reg.Password == "" {
		return domain.Operator{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Operator{}, apperror.NewValidationError("Email inválido.")
	}
	if len(reg.Password) < minPasswordLength {
		return domain.Operator{}, apperror.NewValidationError("A senha deve ter pelo menos 8 caracteres.")
	}

	role, err := s.resolveRole(ctx, reg.Role, grantor)
	if err != nil {
		return domain.Operator{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return domain.Operator{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	operator, err := s.repo.Save(ctx, domain.Operator{Email: email, PasswordHash: string(hash), Role: role})
	if err != nil {
		s.logger.Error("Falha ao salvar operador.", err)
		return domain.Operator{}, err
	}

	s.logger.Info("Operador registrado.", map[string]interface{}{"operator_id": operator.ID, "role": operator.Role})
	return operator, nil
}

func (s *Service) resolveRole(ctx context.Context, requested, grantor domain.Role) (domain.Role, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return domain.RoleAdmin, nil
	}

	if requested == "" {
		return domain.RoleUser, nil
	}
	if !requested.IsValid() {
		return "", apperror.NewValidationError("Papel inválido. Use admin, user ou viewer.")
	}
	if requested != domain.RoleUser && grantor != domain.RoleAdmin {
		return "", apperror.NewForbiddenError("Apenas administradores podem conceder este papel.")
	}
	return requested, nil
}

// Login autentica um operador e devolve um JWT.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (domain.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return domain.TokenResponse{}, apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	operator, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// NotFound vira 401 para não revelar quais e-mails existem.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.TokenResponse{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(creds.Password)); err != nil {
		s.logger.Warn("Senha incorreta no login.", map[string]interface{}{"operator_id": operator.ID})
		return domain.TokenResponse{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tok, err := s.tokenSvc.GenerateToken(operator.ID, string(operator.Role))
	if err != nil {
		return domain.TokenResponse{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"operator_id": operator.ID})
	return domain.TokenResponse{Token: tok}, nil
}
