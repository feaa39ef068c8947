// Package app wires configuration, the document store driver and the
// services together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nibbleworks/userbase/internal/docstore"
	"github.com/nibbleworks/userbase/internal/docstore/drivers/postgres"
	"github.com/nibbleworks/userbase/internal/docstore/drivers/sqlite"
	"github.com/nibbleworks/userbase/internal/mail"
	"github.com/nibbleworks/userbase/internal/rate"
	"github.com/nibbleworks/userbase/internal/tokens"
	"github.com/nibbleworks/userbase/internal/users"
	"github.com/nibbleworks/userbase/pkg/cryptox"
	"github.com/nibbleworks/userbase/pkg/slogx"
)

const BuildVersion = "v0.1.0"

// Application holds the initialized dependency graph.
type Application struct {
	cfg    Config
	logger *slog.Logger

	store docstore.Store

	userService  *users.Service
	tokenService *tokens.Service
}

// New opens the configured store and builds the services. It does not apply
// migrations; callers decide when the schema moves.
func New(ctx context.Context, cfg Config) (*Application, error) {
	if cfg.TokenSecret == "" {
		return nil, errors.New("app: USERBASE_TOKEN_SECRET is required")
	}

	logger := slogx.New(slogx.Config{
		Service: "userbase",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app: open store: %w", err)
	}

	repo := users.NewRepository(store.Container(users.ContainerName))
	hasher := cryptox.Hasher{}

	app := &Application{
		cfg:    cfg,
		logger: logger,
		store:  store,
		userService: &users.Service{
			Repo:   repo,
			Hasher: hasher,
			Email:  newSender(cfg),
		},
		tokenService: &tokens.Service{
			Repo:     repo,
			Hasher:   hasher,
			Limiter:  rate.NewKeyLimiter(cfg.LoginAttempts, cfg.LoginWindow),
			Secret:   []byte(cfg.TokenSecret),
			Issuer:   cfg.TokenIssuer,
			Audience: cfg.TokenAudience,
			TTL:      cfg.TokenExpiry,
		},
	}

	logger.Info("application initialized", "driver", cfg.Driver)
	return app, nil
}

func (a *Application) Logger() *slog.Logger    { return a.logger }
func (a *Application) Store() docstore.Store   { return a.store }
func (a *Application) Users() *users.Service   { return a.userService }
func (a *Application) Tokens() *tokens.Service { return a.tokenService }

func (a *Application) Close() error { return a.store.Close() }

func openStore(ctx context.Context, cfg Config) (docstore.Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.NewStore(cfg.DatabaseFile)
	case "postgres":
		return postgres.NewStore(ctx, cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

func newSender(cfg Config) users.EmailSender {
	if cfg.SMTPHost == "" {
		return mail.Noop{}
	}
	return mail.NewSender(mail.Config{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		From: cfg.SMTPFrom,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
	})
}
