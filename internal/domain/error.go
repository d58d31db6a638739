package domain

// ErrorResponse é o corpo de toda resposta de erro da API.
// Category carrega o Kind das falhas do motor de capacidade (ex.: INVALID_DATE_RANGE),
// então clientes podem reagir sem interpretar a mensagem.
// @Description Corpo padronizado de erro.
type ErrorResponse struct {
	Code      int    `json:"code" example:"400"`
	Category  string `json:"category" example:"INVALID_DATE_RANGE"`
	Message   string `json:"message" example:"start date cannot be later than end date"`
	RequestID string `json:"request_id,omitempty" example:"8f14e45f-ceea-4d7a-9f3e-2b1c8f0d6a11"`
}
