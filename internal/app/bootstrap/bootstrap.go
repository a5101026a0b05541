// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	account "noteboard/contexts/identity-access/account-service"
	bcryptadapter "noteboard/contexts/identity-access/account-service/adapters/bcrypt"
	"noteboard/contexts/identity-access/account-service/adapters/mail"
	accountpostgres "noteboard/contexts/identity-access/account-service/adapters/postgres"
	"noteboard/contexts/identity-access/account-service/adapters/queue"
	"noteboard/contexts/identity-access/account-service/adapters/token"
	accountworkers "noteboard/contexts/identity-access/account-service/application/workers"
	accountports "noteboard/contexts/identity-access/account-service/ports"
	post "noteboard/contexts/notes/post-service"
	postmemory "noteboard/contexts/notes/post-service/adapters/memory"
	postpostgres "noteboard/contexts/notes/post-service/adapters/postgres"
	postports "noteboard/contexts/notes/post-service/ports"
	"noteboard/internal/platform/config"
	"noteboard/internal/platform/db"
	"noteboard/internal/platform/httpserver"
	"noteboard/internal/platform/messaging"
)

type APIApp struct {
	server     *httpserver.Server
	mailWorker accountworkers.WelcomeEmailWorker
	workerOn   bool
	postgres   *db.Postgres
	logger     *slog.Logger
}

type WorkerApp struct {
	mailWorker accountworkers.WelcomeEmailWorker
	postgres   *db.Postgres
	logger     *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	broker := messaging.NewBroker(logger)

	var mailer *queue.WelcomeMailProducer
	if cfg.EmailQueueEnabled {
		mailer = &queue.WelcomeMailProducer{
			Publisher:     broker,
			SourceService: cfg.ServiceName,
			Logger:        logger,
		}
	}

	app := &APIApp{logger: logger}

	var accountModule account.Module
	var postModule post.Module

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		app.postgres = pg

		userRepo := accountpostgres.NewRepository(pg.DB, logger)
		if err := userRepo.Migrate(); err != nil {
			return nil, err
		}
		postRepo := postpostgres.NewRepository(pg.DB, logger)
		if err := postRepo.Migrate(); err != nil {
			return nil, err
		}

		accountModule = account.NewModule(account.Dependencies{
			Users:  userRepo,
			Hasher: bcryptadapter.Hasher{},
			Tokens: token.JWTService{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL},
			Mailer: producerOrNil(mailer),
			Logger: logger,
		})

		var cache postports.ResponseCache = postmemory.NoopCache{}
		if cfg.CacheEnabled {
			cache = postmemory.NewCache(cfg.CacheTTL)
		}
		postModule = post.NewModule(post.Dependencies{
			Posts:  postRepo,
			Cache:  cache,
			Logger: logger,
		})
	} else {
		accountModule = account.NewInMemoryModule(logger, cfg.JWTSecret, cfg.JWTTTL, producerOrNil(mailer))
		postModule = post.NewInMemoryModule(logger, cfg.CacheEnabled, cfg.CacheTTL)
	}

	if cfg.EmailQueueEnabled {
		app.workerOn = true
		app.mailWorker = accountworkers.WelcomeEmailWorker{
			Source:       queue.BrokerSource{Subscriber: broker},
			Sender:       mail.LogMailer{Logger: logger},
			InitialDelay: cfg.EmailJobDelay,
			MaxAttempts:  cfg.EmailJobAttempts,
			Logger:       logger,
		}
	}

	app.server = httpserver.New(accountModule, postModule, logger, normalizeAddr(cfg.HTTPPort))
	return app, nil
}

// BuildWorker assembles a standalone notification worker process. With the
// in-process broker it only sees its own traffic; the API process runs the
// same consumer off the request path.
func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	broker := messaging.NewBroker(logger)

	return &WorkerApp{
		mailWorker: accountworkers.WelcomeEmailWorker{
			Source:       queue.BrokerSource{Subscriber: broker},
			Sender:       mail.LogMailer{Logger: logger},
			InitialDelay: cfg.EmailJobDelay,
			MaxAttempts:  cfg.EmailJobAttempts,
			Logger:       logger,
		},
		logger: logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.workerOn {
		if err := a.mailWorker.Run(ctx); err != nil {
			return err
		}
	}
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.mailWorker.Run(ctx); err != nil {
		return err
	}
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	<-ctx.Done()
	return nil
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// producerOrNil avoids handing a typed nil pointer to the mailer port when
// the queue is disabled.
func producerOrNil(mailer *queue.WelcomeMailProducer) accountports.WelcomeMailProducer {
	if mailer == nil {
		return nil
	}
	return *mailer
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":3000"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
