package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitplan/internal/config"
	"github.com/2beens/fitplan/internal/db"
	"github.com/2beens/fitplan/internal/fitness/api"
	"github.com/2beens/fitplan/internal/fitness/engine"
	"github.com/2beens/fitplan/internal/fitness/memstore"
	"github.com/2beens/fitplan/internal/fitness/plan"
	"github.com/2beens/fitplan/internal/fitness/planwriter"
	"github.com/2beens/fitplan/internal/fitness/profile"
	"github.com/2beens/fitplan/internal/fitness/progress"
	"github.com/2beens/fitplan/internal/geoip"
	"github.com/2beens/fitplan/internal/middleware"
	"github.com/2beens/fitplan/internal/misc"
	"github.com/2beens/fitplan/internal/telemetry/metrics"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

// profiles and progress deltas are tiny, a megabyte is plenty
const maxRequestBodyBytes = 1 << 20

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	rateLimiter middleware.RequestRateLimiter
	tzResolver  *geoip.TimezoneResolver
	engine      *engine.Engine

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     config.Secrets
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	var (
		dbPool     *pgxpool.Pool
		collectors []prometheus.Collector
	)
	if cfg.StorageBackend == config.StorageBackendPostgres {
		var err error
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     params.Secrets.PostgresPassword,
			TracingEnabled: params.Secrets.HoneycombEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	promRegistry := metrics.SetupPrometheus(collectors...)
	metricsManager := metrics.NewManager("fitplan", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.Secrets.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.Secrets.HoneycombEnabled, "fitplan-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	var ipInfo geoip.IPInfoClient
	if params.Secrets.IPInfoToken != "" {
		ipInfo = geoip.NewIPInfoClient(params.Secrets.IPInfoToken, tracedHttpClient)
	} else {
		log.Warn("ipinfo token not set, using the default timezone for all users")
	}

	// a nil writer disables AI plans
	var writer plan.Writer
	if cfg.PlanWriterEnabled && params.Secrets.PlanWriterAPIKey != "" {
		writer = planwriter.NewClient(cfg.PlanWriterBaseURL, params.Secrets.PlanWriterAPIKey, cfg.PlanWriterModel, tracedHttpClient)
	} else if cfg.PlanWriterEnabled {
		log.Warn("plan writer enabled, but api key not set; using fallback plans only")
	}

	profiles, plans, progressStore := newStores(cfg.StorageBackend, dbPool)
	log.Infof("storage backend: %s", cfg.StorageBackend)

	return &Server{
		config:      cfg,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,
		redisClient: rdb,
		rateLimiter: redis_rate.NewLimiter(rdb),
		tzResolver:  geoip.NewTimezoneResolver(ipInfo, rdb, cfg.DefaultLocation()),
		engine: engine.New(engine.NewEngineParams{
			Profiles:       profiles,
			Plans:          plans,
			Progress:       progressStore,
			Generator:      plan.NewGenerator(writer, cfg.PlanWriterTimeout(), metricsManager),
			MetricsManager: metricsManager,
		}),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func newStores(backend string, dbPool *pgxpool.Pool) (profile.Store, plan.Store, progress.Store) {
	if backend == config.StorageBackendMemory || dbPool == nil {
		return memstore.NewProfileStore(), memstore.NewPlanStore(), memstore.NewProgressStore()
	}
	return profile.NewRepo(dbPool), plan.NewRepo(dbPool), progress.NewRepo(dbPool)
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	deps := map[string]misc.Pinger{}
	if s.redisClient != nil {
		deps["redis"] = redisPinger{s.redisClient}
	}
	if s.dbPool != nil {
		deps["postgres"] = s.dbPool
	}
	misc.NewHandler(s.versionInfo, s.tzResolver, deps).SetupRoutes(r)

	planLimiter := middleware.RateLimit(
		s.rateLimiter,
		middleware.PerUserKey("plan-generate"),
		s.config.PlanGenerateRateLimitPerMin,
		s.metricsManager,
	)
	api.NewHandler(s.engine, s.tzResolver).Routes(r, planLimiter)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.UserIdentity("/", "/version", "/healthz", "/whereami", "/profile/validate", "/metrics"))
	r.Use(middleware.LimitAndDrainRequest(maxRequestBodyBytes))

	return r
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown stops the servers and releases every client. All errors are returned together.
func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	var shutdownErr error

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("shutdown http server: %w", err))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("shutdown metrics http server: %w", err))
		}
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("close redis client: %w", err))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return shutdownErr
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}

type redisPinger struct {
	rdb *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}
