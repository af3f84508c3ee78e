// @title           Shop API
// @version         1.0
// @description     Demo storefront backend: client auth, JWT sessions, catalog, cart and checkout.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/aCoruja/TechSecurityWebsite/internal/api"
	"github.com/aCoruja/TechSecurityWebsite/internal/api/handler"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/service"
	"github.com/aCoruja/TechSecurityWebsite/internal/infrastructure/db/memory"
	mongostore "github.com/aCoruja/TechSecurityWebsite/internal/infrastructure/db/mongo"
	redisstore "github.com/aCoruja/TechSecurityWebsite/internal/infrastructure/db/redis"
	"github.com/aCoruja/TechSecurityWebsite/internal/infrastructure/queue"
	"github.com/aCoruja/TechSecurityWebsite/internal/pkg/config"
	"github.com/aCoruja/TechSecurityWebsite/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	EnvFile string `short:"e" long:"env-file" description:"dotenv file loaded before the environment" default:".env"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, opts.EnvFile)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "shopapi",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	clients, err := cfg.ClientCredentials()
	if err != nil {
		return err
	}

	users, carts, checks, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	hasher, err := service.NewPasswordHasher(cfg.Auth.PasswordScheme, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	if hasher.Scheme() == service.SchemePlain {
		log.Warn().Msg("PASSWORD_SCHEME=plain stores raw passwords; use only for local demos")
	}

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	catalog := service.NewCatalogService(service.DefaultProducts)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	orderLog := logger.Component("orders")
	dispatcher := queue.NewDispatcher(cfg.Orders.Workers, service.NewOrderNotifier(orderLog), orderLog)
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	e := api.NewRouter(api.Deps{
		Auth: service.NewAuthService(users, carts, memory.NewClientStore(clients), hasher, tokens,
			service.AuthOptions{RequireClient: cfg.Auth.RequireClientOnLogin}, log),
		Tokens:    tokens,
		Catalog:   catalog,
		Carts:     service.NewCartService(carts, catalog, log),
		Checkout:  service.NewCheckoutService(carts, catalog, dispatcher, log),
		Readiness: checks,
		StaticDir: cfg.StaticDir,
		Log:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("user_store", cfg.Stores.Users).
			Str("cart_store", cfg.Stores.Carts).
			Int("clients", len(clients)).
			Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openStores builds the user and cart repositories selected by config and
// returns readiness checks for any external backend.
func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.UserRepository, ports.CartRepository, []handler.DependencyCheck, func(), error) {
	var (
		users   ports.UserRepository = memory.NewUserRepository()
		carts   ports.CartRepository = memory.NewCartRepository()
		checks  []handler.DependencyCheck
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Stores.Users == config.StoreMongo {
		store, err := mongostore.Open(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "shopapi",
		})
		if err != nil {
			return nil, nil, nil, nil, err
		}
		closers = append(closers, func() { _ = store.Close(context.Background()) })

		repo := mongostore.NewUserRepository(store.Database())
		if err := repo.EnsureIndexes(ctx); err != nil {
			closeAll()
			return nil, nil, nil, nil, err
		}
		users = repo
		checks = append(checks, handler.DependencyCheck{Name: "mongodb", Ping: store.Ping})
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo user store")
	}

	if cfg.Stores.Carts == config.StoreRedis {
		client, err := redisstore.Open(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			closeAll()
			return nil, nil, nil, nil, err
		}
		closers = append(closers, func() { _ = client.Close() })

		carts = redisstore.NewCartRepository(client, cfg.Redis.CartTTL)
		checks = append(checks, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis cart store")
	}

	return users, carts, checks, closeAll, nil
}
