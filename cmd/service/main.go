package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/peoplehub/internal/audit"
	"github.com/dropDatabas3/peoplehub/internal/auth"
	"github.com/dropDatabas3/peoplehub/internal/cache"
	cachemem "github.com/dropDatabas3/peoplehub/internal/cache/memory"
	cacheredis "github.com/dropDatabas3/peoplehub/internal/cache/redis"
	"github.com/dropDatabas3/peoplehub/internal/config"
	"github.com/dropDatabas3/peoplehub/internal/directory"
	"github.com/dropDatabas3/peoplehub/internal/email"
	httpserver "github.com/dropDatabas3/peoplehub/internal/http"
	"github.com/dropDatabas3/peoplehub/internal/http/handlers"
	"github.com/dropDatabas3/peoplehub/internal/jwt"
	"github.com/dropDatabas3/peoplehub/internal/observability/logger"
	"github.com/dropDatabas3/peoplehub/internal/rate"
	"github.com/dropDatabas3/peoplehub/internal/security/password"
	"github.com/dropDatabas3/peoplehub/internal/store/pg"
	migrations "github.com/dropDatabas3/peoplehub/migrations/postgres"
)

func main() {
	// .env primero para que config vea los overrides
	_ = godotenv.Load()

	configPath := flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "ruta del archivo de configuración")
	migrate := flag.Bool("migrate", false, "aplicar migraciones pendientes al arrancar")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// logger todavía no está armado: stderr y afuera
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: envOr("LOG_LEVEL", "info")})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- almacenamiento ---
	store, err := pg.New(ctx, cfg.Storage.DSN, pg.PoolConfig{
		MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatal("pg: no se pudo crear el pool", logger.Err(err))
	}
	defer store.Close()

	if *migrate || cfg.Flags.Migrate {
		if err := store.Migrate(ctx, migrations.FS); err != nil {
			log.Fatal("migrate falló", logger.Err(err))
		}
	}

	// --- cache + rate limiter ---
	var (
		appCache cache.Cache
		limiter  rate.Limiter
	)
	switch cfg.Cache.Kind {
	case "redis":
		rc := cacheredis.New(cacheredis.Config{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		appCache = rc
		if cfg.Rate.Enabled {
			limiter = rate.NewRedisLimiter(rc.Raw(), "rl", cfg.Rate.Login.Limit, cfg.LoginRateWindow())
		}
		log.Info("cache: redis", logger.Any("addr", cfg.Cache.Redis.Addr))
	default:
		ttl, _ := time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
		appCache = cachemem.New("peoplehub", ttl)
		if cfg.Rate.Enabled {
			limiter = rate.NewMemoryLimiter(cfg.Rate.Login.Limit, cfg.LoginRateWindow())
		}
		log.Info("cache: memoria")
	}
	defer appCache.Close()

	// --- correo ---
	var mailer email.Mailer = email.Noop{}
	if cfg.SMTP.Host != "" {
		primary := email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		if cfg.SMTP.Fallback.Host != "" {
			secondary := email.NewSMTPSender(cfg.SMTP.Fallback.Host, cfg.SMTP.Fallback.Port,
				cfg.SMTP.Fallback.From, cfg.SMTP.Fallback.Username, cfg.SMTP.Fallback.Password)
			mailer = email.NewFallback(primary, secondary)
		} else {
			mailer = primary
		}
	}

	// --- núcleo de auth ---
	issuer, err := jwt.NewIssuer(cfg.Auth.TokenSecret, cfg.Auth.Issuer, cfg.TokenTTLDuration())
	if err != nil {
		log.Fatal("jwt: issuer inválido", logger.Err(err))
	}
	catalog := directory.New(store, appCache, time.Minute)
	recorder := audit.NewRecorder(store)
	costs := password.Costs{
		Default:   cfg.Security.BcryptCost,
		Sensitive: cfg.Security.BcryptCostSensitive,
	}
	authSvc := auth.NewService(store, issuer, costs, cfg.SessionTTLDuration(), catalog, recorder, mailer)

	// --- http ---
	metrics, err := httpserver.NewMetrics(nil)
	if err != nil {
		log.Fatal("metrics: registro falló", logger.Err(err))
	}
	router := httpserver.NewRouter(httpserver.Deps{
		Auth:     authSvc,
		Repo:     store,
		Cache:    appCache,
		Catalog:  catalog,
		Recorder: recorder,
		Limiter:  limiter,
		Metrics:  metrics,
		Cookie: handlers.CookieConfig{
			Name:     cfg.Auth.Session.CookieName,
			Domain:   cfg.Auth.Session.Domain,
			SameSite: cfg.Auth.Session.SameSite,
			Secure:   cfg.Auth.Session.Secure,
			TTL:      cfg.SessionTTLDuration(),
		},
	})

	srv := httpserver.NewServer(cfg.Server.Addr, router)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		log.Info("señal recibida, bajando")
	case err := <-errCh:
		if err != nil {
			log.Error("http: server cayó", logger.Err(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown con errores", logger.Err(err))
	}
	log.Info("listo, chao")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
