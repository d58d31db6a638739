package capacity

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"gocapacity/internal/domain"
)

// APIError é a resposta de erro padronizada da API ({code, category, message}).
type APIError struct {
	Status    int
	Category  string
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("gocapacity: HTTP %d", e.Status)
	}
	return fmt.Sprintf("gocapacity: %s (%d): %s", e.Category, e.Status, e.Message)
}

// Client é um cliente HTTP da API GoCapacity baseado em resty.
type Client struct {
	httpClient *resty.Client
}

// NewClient cria um cliente para baseURL (ex.: http://localhost:8080). token pode ser vazio.
func NewClient(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")+"/v1").
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{httpClient: c}
}

// FindAvailableWarehouse consulta o primeiro armazém que comporta o item.
func (c *Client) FindAvailableWarehouse(ctx context.Context, start, end string, dims domain.ThreeDRoom) (domain.AvailableWarehouseResponse, error) {
	var out domain.AvailableWarehouseResponse
	err := c.get(ctx, "/capacity/available-warehouse", map[string]string{
		"start":  start,
		"end":    end,
		"height": formatFloat(dims.Height),
		"width":  formatFloat(dims.Width),
		"length": formatFloat(dims.Length),
	}, &out)
	return out, err
}

// FullyUtilizedDates lista os dias totalmente utilizados.
func (c *Client) FullyUtilizedDates(ctx context.Context, start, end string) ([]string, error) {
	var out domain.FullyUtilizedResponse
	if err := c.get(ctx, "/capacity/fully-utilized", rangeParams(start, end), &out); err != nil {
		return nil, err
	}
	return out.Dates, nil
}

// AvailableCapacity devolve a capacidade disponível por dia.
func (c *Client) AvailableCapacity(ctx context.Context, start, end string) ([]domain.AvailableCapacityEntry, error) {
	var out []domain.AvailableCapacityEntry
	err := c.get(ctx, "/capacity/available", rangeParams(start, end), &out)
	return out, err
}

// LeastUsedWarehouse consulta o armazém com menor uso.
func (c *Client) LeastUsedWarehouse(ctx context.Context, start, end string) (domain.LeastUsedWarehouseResponse, error) {
	var out domain.LeastUsedWarehouseResponse
	err := c.get(ctx, "/capacity/least-used", rangeParams(start, end), &out)
	return out, err
}

// Warehouses lista os armazéns na ordem do registro.
func (c *Client) Warehouses(ctx context.Context) ([]domain.Warehouse, error) {
	var out []domain.Warehouse
	err := c.get(ctx, "/warehouses", nil, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, result interface{}) error {
	apiErr := new(domain.ErrorResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		SetError(apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("gocapacity: GET %s: %w", path, err)
	}

	if resp.IsError() {
		return &APIError{
			Status:    resp.StatusCode(),
			Category:  apiErr.Category,
			Message:   apiErr.Message,
			RequestID: apiErr.RequestID,
		}
	}
	if resp.StatusCode() != http.StatusOK {
		return &APIError{Status: resp.StatusCode()}
	}
	return nil
}

func rangeParams(start, end string) map[string]string {
	return map[string]string{"start": start, "end": end}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
