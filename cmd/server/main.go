package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"attestguard/internal/attestation"
	"attestguard/internal/attestation/handler"
	"attestguard/internal/fraudcase"
	"attestguard/internal/fraudcase/publisher"
	"attestguard/internal/i18n"
	"attestguard/internal/jwttoken"
	"attestguard/internal/platform/config"
	"attestguard/internal/platform/httpserver"
	"attestguard/internal/platform/logger"
	"attestguard/internal/platform/middleware"
	"attestguard/internal/platform/postgres"
	"attestguard/internal/platform/redis"
	"attestguard/internal/registry"
	"attestguard/internal/understanding"
)

// main wires dependencies and owns the process lifecycle. Every external
// collaborator is optional: without Postgres the stores run in memory,
// without the analyzer endpoint only the evaluate API is served.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		registryStore registry.Store
		caseStore     fraudcase.Store
	)
	if cfg.PostgresDSN != "" {
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		registryStore = registry.NewPostgres(db)
		caseStore = fraudcase.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		registryStore = registry.NewInMemoryStore()
		caseStore = fraudcase.NewInMemoryStore()
		log.Warn("POSTGRES_DSN not set, using in-memory stores")
	}

	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		registryStore = registry.NewCached(registryStore, redisClient.Client, config.RegistryCacheTTL, log)
		log.Info("registry lookups cached in redis", "ttl", config.RegistryCacheTTL)
	}

	recorderOpts := []fraudcase.Option{fraudcase.WithMetrics(fraudcase.NewMetrics())}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := publisher.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		recorderOpts = append(recorderOpts, fraudcase.WithPublisher(kafkaPublisher))
		log.Info("publishing case-opened events", "topic", cfg.KafkaTopic)
	}
	recorder := fraudcase.NewService(caseStore, log, recorderOpts...)

	catalog := i18n.Default()
	engine := attestation.NewService(registryStore, catalog, log,
		attestation.WithCaseRecorder(recorder),
		attestation.WithMetrics(attestation.NewMetrics()),
	)

	var analyzer handler.Analyzer
	if cfg.AnalyzerEndpoint != "" {
		client, err := understanding.New(cfg.AnalyzerEndpoint, log, understanding.WithAPIKey(cfg.AnalyzerKey))
		if err != nil {
			log.Error("analyzer client configuration invalid", "error", err)
			os.Exit(1)
		}
		analyzer = client
	} else {
		log.Warn("UNDERSTANDING_ENDPOINT not set, document uploads disabled")
	}

	var validator middleware.TokenValidator
	if cfg.JWTSigningKey != "" {
		validator = jwttoken.NewService(cfg.JWTSigningKey, "attestguard", "attestguard-api")
	}

	h := handler.New(engine, analyzer, cfg.AnalyzerID, catalog, log)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestMeta(cfg.DefaultLanguage))
	router.Handle("/metrics", promhttp.Handler())
	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, log))
		h.Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting attestguard", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
