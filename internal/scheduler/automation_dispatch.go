package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/coachos/coach-os-api/infrastructure/repository"
	"github.com/coachos/coach-os-api/internal/config"
	"github.com/coachos/coach-os-api/internal/domain"
)

// AutomationDispatchConfig representa a configuração do agendador de disparo de automações
type AutomationDispatchConfig struct {
	CronSchedule    string
	DispatchEnabled bool
}

// AutomationDispatchService gerencia o agendamento e execução dos disparos das automações ativas
type AutomationDispatchService struct {
	scheduler               *gocron.Scheduler
	config                  AutomationDispatchConfig
	automationRepo          repository.AutomationRepository
	dispatchRunning         bool
	dispatchMutex           sync.Mutex
	lastDispatchStartedAt   time.Time
	lastDispatchCompletedAt time.Time
}

// NewAutomationDispatchService cria uma nova instância do serviço de disparo de automações
func NewAutomationDispatchService(
	automationRepo repository.AutomationRepository,
	appConfig *config.Config,
) *AutomationDispatchService {
	dispatchConfig := AutomationDispatchConfig{
		CronSchedule:    appConfig.AutomationDispatch.CronSchedule,
		DispatchEnabled: appConfig.AutomationDispatch.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":    dispatchConfig.CronSchedule,
		"dispatch_enabled": dispatchConfig.DispatchEnabled,
	}).Info("Configuração do agendador de disparo de automações carregada")

	return &AutomationDispatchService{
		scheduler:       scheduler,
		config:          dispatchConfig,
		automationRepo:  automationRepo,
		dispatchRunning: false,
	}
}

// Start inicia o agendador
func (s *AutomationDispatchService) Start(ctx context.Context) error {
	if !s.config.DispatchEnabled {
		logrus.Info("Disparo de automações desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de disparo de automações")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.dispatchAllAutomations()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar disparo de automações: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de disparo de automações")
		s.scheduler.Stop()
	}()

	return nil
}

// dispatchAllAutomations executa todas as automações ativas de todas as contas,
// acumulando os contadores de envio
func (s *AutomationDispatchService) dispatchAllAutomations() {
	s.dispatchMutex.Lock()
	if s.dispatchRunning {
		s.dispatchMutex.Unlock()
		logrus.Info("Disparo de automações já em andamento, ignorando")
		return
	}
	s.dispatchRunning = true
	startTime := time.Now()
	s.lastDispatchStartedAt = startTime
	s.dispatchMutex.Unlock()

	defer func() {
		s.dispatchMutex.Lock()
		s.dispatchRunning = false
		s.lastDispatchCompletedAt = time.Now()
		s.dispatchMutex.Unlock()
	}()

	logrus.Info("Iniciando disparo de automações ativas para todas as contas")

	activeByUser, err := s.automationRepo.ListActive()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar automações ativas para disparo")
		return
	}

	dispatched := 0
	failed := 0

	for userID, automations := range activeByUser {
		for _, automation := range automations {
			if err := s.dispatchAutomation(userID, automation); err != nil {
				failed++
				logrus.WithError(err).WithFields(logrus.Fields{
					"user_id":       userID,
					"automation_id": automation.ID,
				}).Error("Erro ao disparar automação")
				continue
			}
			dispatched++
		}
	}

	logrus.WithFields(logrus.Fields{
		"dispatched":  dispatched,
		"failed":      failed,
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Info("Disparo de automações concluído")
}

// dispatchAutomation executa uma automação e registra o envio nos contadores
func (s *AutomationDispatchService) dispatchAutomation(userID int, automation domain.Automation) error {
	// O envio em si (email/whatsapp/sms) fica a cargo do provedor de cada
	// canal. Aqui registramos a execução nos contadores da automação.
	stats := automation.Stats
	stats.Sent++

	_, err := s.automationRepo.Update(userID, automation.ID, domain.UpdateAutomationRequest{
		Stats: &stats,
	})
	return err
}

// TriggerManualDispatch inicia manualmente um ciclo de disparo de automações
func (s *AutomationDispatchService) TriggerManualDispatch() {
	s.dispatchMutex.Lock()
	if s.dispatchRunning {
		s.dispatchMutex.Unlock()
		logrus.Info("Disparo de automações já em andamento, ignorando solicitação manual")
		return
	}
	s.dispatchMutex.Unlock()

	logrus.Info("Iniciando disparo manual de automações")
	go s.dispatchAllAutomations()
}

// GetStatus retorna o status atual do agendador. Os campos mutáveis são
// lidos sob o mutex, já que um disparo pode estar em andamento.
func (s *AutomationDispatchService) GetStatus() map[string]any {
	s.dispatchMutex.Lock()
	defer s.dispatchMutex.Unlock()

	return map[string]any{
		"dispatch_enabled":           s.config.DispatchEnabled,
		"dispatch_cron":              s.config.CronSchedule,
		"last_dispatch_started_at":   s.lastDispatchStartedAt,
		"last_dispatch_completed_at": s.lastDispatchCompletedAt,
		"dispatch_running":           s.dispatchRunning,
	}
}
