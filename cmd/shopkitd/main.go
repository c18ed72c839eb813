package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shopkit/shopkit/modules/admin"
	"github.com/shopkit/shopkit/pkg/config"
	"github.com/shopkit/shopkit/pkg/httpserver"
	"github.com/shopkit/shopkit/pkg/logger"
	"github.com/shopkit/shopkit/pkg/pg"
	"github.com/shopkit/shopkit/pkg/provision"
	"github.com/shopkit/shopkit/pkg/redis"
	"github.com/shopkit/shopkit/pkg/tenant"
	"github.com/shopkit/shopkit/pkg/tenantdb"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_NAME" envDefault:"shopkitd"`

	// TenantCacheTTL bounds how stale a cached tenant lookup may be; status
	// changes (blocking a shop) take effect within this window at worst.
	TenantCacheTTL time.Duration `env:"TENANT_CACHE_TTL" envDefault:"1m"`

	// RedisEnabled switches the tenant cache from in-process memory to a
	// shared Redis cache, which keeps lookups warm across replicas.
	RedisEnabled bool `env:"REDIS_ENABLED" envDefault:"false"`

	PG    pg.Config
	Redis redis.Config
	HTTP  httpserver.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(tenant.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx := context.Background()

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		log.ErrorContext(ctx, "database connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		log.ErrorContext(ctx, "shared schema migration failed", logger.Error(err))
		os.Exit(1)
	}

	// Tenant lookups sit on the hot path of every request, so the directory
	// is wrapped with a cache. Redis when configured, in-process otherwise.
	var cache tenant.Cache
	if cfg.RedisEnabled {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.ErrorContext(ctx, "redis connection failed", logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()
		cache = tenant.NewRedisCache(client)
	} else {
		cache = tenant.NewInMemoryCache()
	}
	defer cache.Close()

	dir := tenant.NewCachedDirectory(tenant.NewPGDirectory(pool), cache, cfg.TenantCacheTTL)
	resolver := tenant.NewResolver(dir, tenant.WithResolverLogger(log))

	db := tenantdb.New(pool)
	provisioner := provision.New(dir, db, provision.WithLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/ready", httpserver.HealthCheckHandler(ctx, log, pg.Healthcheck(pool)))

	r.Group(func(r chi.Router) {
		r.Use(tenant.Middleware(resolver, tenant.WithLogger(log), tenant.WithSkipPaths([]string{"/health", "/ready"})))

		// Application modules (storefront, orders, settings) mount here and
		// read the tenant from the request context via tenantdb.ForRequest.
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			if t, ok := tenant.FromContext(req.Context()); ok {
				w.Write([]byte("shop: " + t.Slug))
				return
			}
			w.Write([]byte("shopkit"))
		})
	})

	r.Mount("/admin", admin.Router(admin.NewHandler(provisioner, dir, log)))

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("listening", slog.String("addr", cfg.HTTP.Addr))
		}),
	)

	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
