package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/database"
	"gocapacity/internal/pkg/logger"
)

// UserRepository persiste operadores na tabela users.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save insere um novo operador. E-mail duplicado vira ConflictError.
func (r *UserRepository) Save(ctx context.Context, operator domain.Operator) (domain.Operator, error) {
	r.logger.Debug("Iniciando Save de operador no repositório.", map[string]interface{}{"email": operator.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	operator.ID = uuid.NewString()
	operator.CreatedAt = time.Now().UTC()
	operator.UpdatedAt = operator.CreatedAt

	query := `
        INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		operator.ID, operator.Email, operator.PasswordHash, operator.Role, operator.CreatedAt, operator.UpdatedAt,
	)
	if database.IsUniqueViolation(err) {
		return domain.Operator{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", operator.Email))
	}
	if err != nil {
		r.logger.Error("Falha ao inserir operador no DB.", err)
		return domain.Operator{}, apperror.NewDBError("Falha ao inserir operador", err)
	}

	r.logger.Info("Operador salvo com sucesso no repositório.", map[string]interface{}{"operator_id": operator.ID, "role": operator.Role})
	return operator, nil
}

// FindByEmail busca um operador pelo endereço de e-mail.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.Operator, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT id, email, password_hash, role, created_at, updated_at FROM users WHERE email = $1`

	var operator domain.Operator
	err := r.DB.QueryRowContext(ctxTimeout, query, email).Scan(
		&operator.ID, &operator.Email, &operator.PasswordHash, &operator.Role, &operator.CreatedAt, &operator.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Operador não encontrado no DB por email.", map[string]interface{}{"email": email})
		return domain.Operator{}, apperror.NewNotFoundError(fmt.Sprintf("Operador com email '%s' não encontrado", email))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar operador por email no DB.", err)
		return domain.Operator{}, apperror.NewDBError("Falha ao buscar operador por email", err)
	}
	return operator, nil
}

// Count devolve o número de operadores cadastrados.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var n int
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		r.logger.Error("Falha ao contar operadores no DB.", err)
		return 0, apperror.NewDBError("Falha ao contar operadores", err)
	}
	return n, nil
}
