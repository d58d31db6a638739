package domain

import "time"

// Operator representa um usuário que administra o registro de armazéns.
type Operator struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Nunca sai no JSON
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role define o papel do operador.
type Role string

const (
	RoleAdmin  Role = "admin"  // cria e remove armazéns
	RoleUser   Role = "user"   // registra e desativa itens
	RoleViewer Role = "viewer" // apenas consultas
)

// IsValid indica se o papel é conhecido.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleViewer:
		return true
	}
	return false
}

// Registration é o payload de entrada para o cadastro de operadores.
type Registration struct {
	Email    string `json:"email" example:"ops@gocapacity.dev"`
	Password string `json:"password" example:"s3cr3t-pass"`
	Role     Role   `json:"role,omitempty" example:"user"`
}

// Credentials é o payload de login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse é devolvido após um login bem-sucedido.
type TokenResponse struct {
	Token string `json:"token"`
}
