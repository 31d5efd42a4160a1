package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/coachos/coach-os-api/infrastructure/database/postgres"
	"github.com/coachos/coach-os-api/infrastructure/integrator/contentai"
	"github.com/coachos/coach-os-api/infrastructure/integrator/contentai/contentaiclient"
	"github.com/coachos/coach-os-api/infrastructure/localstore"
	"github.com/coachos/coach-os-api/infrastructure/realtime"
	"github.com/coachos/coach-os-api/infrastructure/repository"
	"github.com/coachos/coach-os-api/internal/api"
	"github.com/coachos/coach-os-api/internal/config"
	"github.com/coachos/coach-os-api/internal/scheduler"
	"github.com/coachos/coach-os-api/internal/usecases/authenticating"
	"github.com/coachos/coach-os-api/internal/usecases/reporting"
	"github.com/coachos/coach-os-api/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	contentAIClient := contentaiclient.NewClient(cfg)
	generator := contentai.NewService(contentAIClient)

	dependencies := syncing.Dependencies{Generator: generator}

	var (
		authenticator             authenticating.Authenticator
		reporter                  reporting.Reporter
		automationDispatchService *scheduler.AutomationDispatchService
	)

	// A ausência de banco configurado não é erro: a aplicação opera em modo
	// de demonstração sobre o armazenamento local, sem autenticação.
	if cfg.Database.Configured() {
		if cfg.SecretKey == "" {
			logrus.Fatal("SECRET_KEY não configurada: obrigatória quando há banco remoto")
		}

		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		bus := realtime.NewBus(cfg.Redis)
		defer bus.Close()

		if err := bus.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("Redis indisponível, seguindo sem canais de mudanças")
			bus = nil
		}

		userRepo := repository.NewUserRepository(pgConn)
		clientRepo := repository.NewClientRepository(pgConn, bus)
		postRepo := repository.NewSocialPostRepository(pgConn, bus)
		automationRepo := repository.NewAutomationRepository(pgConn, bus)
		blueprintRepo := repository.NewBlueprintRepository(pgConn, bus)
		paymentRepo := repository.NewPaymentRepository(pgConn)

		dependencies.Clients = clientRepo
		dependencies.Posts = postRepo
		dependencies.Automations = automationRepo
		dependencies.Blueprints = blueprintRepo
		dependencies.Bus = bus

		authenticator = authenticating.NewService(userRepo, cfg)
		reporter = reporting.NewService(paymentRepo, clientRepo, postRepo, automationRepo)

		automationDispatchService = scheduler.NewAutomationDispatchService(automationRepo, cfg)
		if err := automationDispatchService.Start(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao iniciar o agendador de disparo de automações")
		} else {
			logrus.Info("Agendador de disparo de automações iniciado com sucesso")
		}
	} else {
		logrus.Info("Banco remoto não configurado, iniciando em modo de fallback local")

		store, err := localstore.Open(cfg.LocalStore.Path)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao abrir o armazenamento local")
		}
		defer store.Close()

		dependencies.Local = store
	}

	registry := syncing.NewRegistry(ctx, dependencies)
	defer registry.CloseAll()

	server, err := api.New(
		cfg,
		authenticator,
		registry,
		reporter,
		automationDispatchService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
