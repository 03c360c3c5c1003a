package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/buzzhire/recruit-mailer/docs"
	"github.com/buzzhire/recruit-mailer/internal/api"
	"github.com/buzzhire/recruit-mailer/internal/api/handler"
	"github.com/buzzhire/recruit-mailer/internal/core/ports"
	"github.com/buzzhire/recruit-mailer/internal/core/service"
	"github.com/buzzhire/recruit-mailer/internal/infrastructure/clipboard"
	mongostore "github.com/buzzhire/recruit-mailer/internal/infrastructure/db/mongo"
	redisstore "github.com/buzzhire/recruit-mailer/internal/infrastructure/db/redis"
	"github.com/buzzhire/recruit-mailer/internal/infrastructure/gmail"
	"github.com/buzzhire/recruit-mailer/internal/infrastructure/memory"
	"github.com/buzzhire/recruit-mailer/internal/infrastructure/storeclient"
	"github.com/buzzhire/recruit-mailer/internal/pkg/config"
	"github.com/buzzhire/recruit-mailer/pkg/logger"
)

// @title           Recruit Mailer API
// @version         1.0
// @description     Builds per-recipient candidate emails and sends them through the operator's Gmail account.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Level: "error"})
		boot.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "recruit-mailer",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var checkers []handler.Checker

	// --- Store backend ---
	var store ports.Store
	switch cfg.Store.Backend {
	case config.StoreBackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "recruit-mailer",
		})
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(shutdownCtx)
		}()
		mstore := mongostore.NewStore(db)
		if err := mstore.EnsureIndexes(ctx); err != nil {
			return err
		}
		store = mstore
		checkers = append(checkers, mongostore.Pinger{DB: db})
		log.Info().Str("db", cfg.Mongo.Database).Msg("using mongo store")
	default:
		client := storeclient.New(cfg.Store.BaseURL, cfg.Store.Timeout, logger.For("storeclient"))
		store = client
		checkers = append(checkers, client)
		log.Info().Str("base_url", cfg.Store.BaseURL).Msg("using rest store")
	}

	// --- Guard and token store ---
	var (
		guard  ports.InflightGuard
		tokens ports.TokenStore
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		guard = redisstore.NewInflightGuard(rdb, 0)
		tokens = redisstore.NewTokenStore(rdb)
		checkers = append(checkers, redisstore.Pinger{Client: rdb})
	} else {
		guard = memory.NewInflightGuard()
		tokens = memory.NewTokenStore()
	}

	// --- Core services ---
	workspace := service.NewWorkspace(store, store, guard, logger.For("workspace"))
	if err := workspace.Load(ctx); err != nil {
		// Failed candidates are retried lazily on access.
		log.Warn().Err(err).Msg("workspace loaded with errors")
	}

	brokerCfg := gmail.BrokerConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		StateSecret:  cfg.Operator.JWTSecret,
		FlowTimeout:  cfg.Google.AuthFlowTimeout,
	}
	broker := gmail.NewTokenBroker(brokerCfg, tokens, logger.For("mail-auth"))
	sender := gmail.NewSender(brokerCfg.OAuthConfig(), cfg.Google.GmailEndpoint, logger.For("gmail"))
	if cfg.Google.ClientID == "" {
		log.Warn().Msg("GOOGLE_CLIENT_ID is empty; sending is unavailable until it is configured")
	}

	dispatcher := service.NewDispatcher(workspace, sender, tokens, clipboard.New(logger.For("clipboard")), guard, logger.For("dispatcher"))
	auth := service.NewAuthService(cfg.Operator.Username, cfg.Operator.Email, cfg.Operator.PasswordHash, cfg.Operator.JWTSecret, cfg.Operator.TokenTTL)

	e := api.NewRouter(api.Deps{
		Auth:       auth,
		Workspace:  workspace,
		Dispatcher: dispatcher,
		Mail:       broker,
		Checkers:   checkers,
		JWTSecret:  cfg.Operator.JWTSecret,
		Logger:     logger.For("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		// long enough for /v1/mail/auth/wait
		WriteTimeout: 6 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
