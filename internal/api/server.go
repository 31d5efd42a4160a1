package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/coachos/coach-os-api/internal/api/handler"
	"github.com/coachos/coach-os-api/internal/api/handler/router"
	"github.com/coachos/coach-os-api/internal/config"
	"github.com/coachos/coach-os-api/internal/scheduler"
	"github.com/coachos/coach-os-api/internal/usecases/authenticating"
	"github.com/coachos/coach-os-api/internal/usecases/reporting"
	"github.com/coachos/coach-os-api/internal/usecases/syncing"
	"github.com/coachos/coach-os-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	authenticator authenticating.Authenticator,
	registry *syncing.Registry,
	reporter reporting.Reporter,
	automationDispatchService *scheduler.AutomationDispatchService,
) (*Server, error) {
	configs := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Project(registry)...),
		router.WithRoutes(handler.Onboarding(registry)...),
		router.WithRoutes(handler.Clients(registry)...),
		router.WithRoutes(handler.Blueprint(registry)...),
		router.WithRoutes(handler.Content(registry)...),
		router.WithRoutes(handler.Automations(registry)...),
	}

	// Autenticação, indicadores e cron jobs dependem do banco remoto: fora
	// do ar em modo de fallback local.
	if authenticator != nil {
		configs = append(configs, router.WithRoutes(handler.Authentication(authenticator, registry)...))
	}

	if reporter != nil {
		configs = append(configs, router.WithRoutes(handler.Analytics(reporter)...))
	}

	if automationDispatchService != nil {
		cronServices := handler.CronJobServices{
			AutomationDispatchService: automationDispatchService,
		}
		configs = append(configs, router.WithRoutes(handler.CronJobs(cronServices)...))
	}

	rt := router.New(configs...)

	authConstructor := middleware.DemoAuthMiddleware()
	if authenticator != nil {
		authConstructor = middleware.AuthMiddleware(authenticator)
	}

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		authConstructor,
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
