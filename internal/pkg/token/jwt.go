package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "GoCapacity-API"

// leeway tolera pequenas diferenças de relógio entre réplicas da API.
const leeway = 5 * time.Second

// CustomClaims carrega a identidade do operador dentro do JWT.
type CustomClaims struct {
	OperatorID string `json:"operator_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// Service emite e valida tokens HS256 de operadores.
type Service struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		now:       time.Now,
	}
}

// GenerateToken assina um token para o operador. O Subject repete o ID do operador.
func (s *Service) GenerateToken(operatorID string, role string) (string, error) {
	issuedAt := jwt.NewNumericDate(s.now())
	claims := CustomClaims{
		OperatorID: operatorID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   operatorID,
			IssuedAt:  issuedAt,
			NotBefore: issuedAt,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token do operador %s: %w", operatorID, err)
	}
	return signed, nil
}

// ValidateToken confere assinatura, emissor e validade e devolve as claims.
// Os erros preservam os sentinelas do jwt (ex.: jwt.ErrTokenExpired) para errors.Is.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(s.now),
	)

	claims := &CustomClaims{}
	if _, err := parser.ParseWithClaims(tokenString, claims, s.key); err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}
	if claims.OperatorID == "" {
		return nil, fmt.Errorf("token inválido: %w", jwt.ErrTokenInvalidClaims)
	}
	return claims, nil
}

func (s *Service) key(*jwt.Token) (interface{}, error) {
	return s.secretKey, nil
}
