package report

import (
	"context"
	"net/http"

	"gocapacity/internal/domain"
	"gocapacity/internal/pkg/logger"
	"gocapacity/internal/pkg/respond"
)

// ReportService expõe o último relatório de utilização salvo.
type ReportService interface {
	LatestReport(ctx context.Context) (domain.UtilizationReport, error)
}

type Handler struct {
	Service ReportService
	Logger  logger.Logger
}

func NewHandler(svc ReportService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// LatestReportHandler lida com GET /v1/reports/latest.
// @Summary Último relatório de utilização gerado pelo agendador
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UtilizationReport
// @Failure 404 {object} domain.ErrorResponse "Nenhum relatório gerado"
// @Router /reports/latest [get]
func (h *Handler) LatestReportHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.LatestReport(r.Context())
	respond.Service(w, r, h.Logger, report, err, http.StatusOK)
}
