package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"

	"gocapacity/internal/domain"
	apperror "gocapacity/internal/errors"
	"gocapacity/internal/pkg/logger"
)

// ReportGenerator gera e persiste um relatório de utilização.
type ReportGenerator interface {
	GenerateUtilizationReport(ctx context.Context, now time.Time) (domain.UtilizationReport, error)
}

// Scheduler dispara a geração periódica de relatórios.
type Scheduler struct {
	cron      *cron.Cron
	generator ReportGenerator
	schedule  string
	timeout   time.Duration
	logger    logger.Logger
}

// NewScheduler cria o agendador. schedule usa o formato cron padrão de 5 campos.
func NewScheduler(generator ReportGenerator, schedule string, logger logger.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		generator: generator,
		schedule:  schedule,
		timeout:   2 * time.Minute,
		logger:    logger,
	}
}

// Start registra o job e inicia o cron. Expressão inválida retorna erro.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.RunOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Agendador de relatórios iniciado.", map[string]interface{}{"schedule": s.schedule})
	return nil
}

// Stop interrompe o cron e aguarda o job em execução terminar (ou ctx expirar).
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Agendador de relatórios parado.", nil)
	case <-ctx.Done():
		s.logger.Warn("Agendador parado sem aguardar job em execução.", nil)
	}
}

// RunOnce gera um relatório agora. Registro vazio é apenas registrado como aviso.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report, err := s.generator.GenerateUtilizationReport(ctx, time.Now().UTC())
	if errors.Is(err, apperror.ErrNoWarehousesAvailable) {
		s.logger.Warn("Relatório ignorado: nenhum armazém cadastrado.", nil)
		return
	}
	if err != nil {
		s.logger.Error("Falha ao gerar relatório de utilização.", err)
		return
	}
	s.logger.Debug("Job de relatório concluído.", map[string]interface{}{"report_id": report.ID})
}
