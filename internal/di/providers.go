package di

import (
	"context"
	"fmt"
	"time"

	"PairSignal/internal/domain/repository"
	"PairSignal/internal/handler/api"
	internalrepo "PairSignal/internal/repository"
	"PairSignal/internal/service/ratelimit"
	"PairSignal/internal/usecase"
	"PairSignal/pkg/cache"
	pkgch "PairSignal/pkg/clickhouse"
	"PairSignal/pkg/config"
	xhttp "PairSignal/pkg/http"
	"PairSignal/pkg/http/middleware"
	pkgkafka "PairSignal/pkg/kafka"
	applogger "PairSignal/pkg/logger"
	"PairSignal/pkg/metrics"
	"PairSignal/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config, l *applogger.Logger) (*pkgch.Client, func(), error) {
	client, err := pkgch.NewClient(
		pkgch.WithAddress(cfg.ClickHouse.Host, cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithPool(cfg.ClickHouse.MaxOpenConns, cfg.ClickHouse.MaxOpenConns/2, time.Hour),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}

	if cfg.ClickHouse.InitSchema {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		stmts := internalrepo.Schema(cfg.ClickHouse.Database, cfg.ClickHouse.CandleTable, cfg.ClickHouse.EventTable)
		if cfg.ClickHouse.EventTable == "" {
			stmts = stmts[:2]
		}
		if err := client.InitSchema(ctx, stmts); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
		}
	}
	l.Info("clickhouse connected", applogger.String("database", client.Database()))

	cleanup := func() {
		if err := client.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	return client, cleanup, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithDelivery(cfg.Kafka.MaxAttempts, cfg.Kafka.WriteTimeout),
		pkgkafka.WithBatching(cfg.Kafka.BatchSize, cfg.Kafka.Linger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	l.Info("kafka producer ready",
		applogger.Strings("brokers", cfg.Kafka.Brokers),
		applogger.String("topic", cfg.Kafka.Topic),
	)
	cleanup := func() {
		if err := producer.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	return producer, cleanup, nil
}

// ProvideRedisCache creates a Redis cache, or nil when Redis is disabled.
func ProvideRedisCache(cfg *config.Config, l *applogger.Logger) (*cache.RedisCache, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Redis.Addr),
		cache.WithRedisAuth(cfg.Redis.Password, cfg.Redis.DB),
		cache.WithRedisPoolSize(cfg.Redis.PoolSize),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	cleanup := func() {
		if err := rc.Close(); err != nil {
			l.Warn("redis close error", applogger.Error(err))
		}
	}
	return rc, cleanup, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New(nil)
}

// ProvideBarProvider creates the ClickHouse candle reader.
func ProvideBarProvider(ch *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.BarProvider {
	store := internalrepo.NewCHBarStore(ch.DB(), internalrepo.QualifiedTable(cfg.ClickHouse.Database, cfg.ClickHouse.CandleTable))
	store.SetLogger(l)
	return store
}

// ProvideEventStore creates the ClickHouse event writer, or nil when no event table is configured.
func ProvideEventStore(ch *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.EventStore {
	if cfg.ClickHouse.EventTable == "" {
		return nil
	}
	store := internalrepo.NewCHEventStore(ch.DB(), internalrepo.QualifiedTable(cfg.ClickHouse.Database, cfg.ClickHouse.EventTable))
	store.SetLogger(l)
	return store
}

// ProvideReportPublisher creates the Kafka report publisher, or nil without a producer.
func ProvideReportPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.ReportPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.Topic)
}

// ProvideReportCache prefers Redis and falls back to an in-process cache; a zero cache TTL disables caching.
func ProvideReportCache(rc *cache.RedisCache, cfg *config.Config) repository.ReportCache {
	switch {
	case cfg.Pipeline.CacheTTL <= 0:
		return nil
	case rc != nil:
		return internalrepo.NewRedisReportCache(rc)
	default:
		return internalrepo.NewMemoryReportCache(256)
	}
}

// ProvidePairAnalyzer creates the pair analysis use case with whichever sinks are configured.
func ProvidePairAnalyzer(
	bars repository.BarProvider,
	events repository.EventStore,
	pub repository.ReportPublisher,
	rc repository.ReportCache,
	m repository.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.PairAnalyzer {
	opts := []usecase.AnalyzerOption{
		usecase.WithMetrics(m),
		usecase.WithLogger(l),
		usecase.WithTimeout(cfg.Pipeline.Timeout),
	}
	if events != nil {
		opts = append(opts, usecase.WithEventStore(events))
	}
	if pub != nil {
		opts = append(opts, usecase.WithPublisher(pub))
	}
	if rc != nil {
		opts = append(opts, usecase.WithReportCache(rc, cfg.Pipeline.CacheTTL))
	}
	return usecase.NewPairAnalyzer(bars, opts...)
}

// ProvidePairsHandler creates the pairs HTTP handler with dependency health checks.
func ProvidePairsHandler(
	analyzer *usecase.PairAnalyzer,
	ch *pkgch.Client,
	rc *cache.RedisCache,
	cfg *config.Config,
	l *applogger.Logger,
) *api.PairsEchoHandler {
	h := api.NewPairsEchoHandler(l, analyzer, cfg.Pipeline.Workers)
	if cfg.Server.RateLimitRPS > 0 {
		h.Use(middleware.RateLimit(ratelimit.New(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)))
	}
	h.AddHealthCheck("clickhouse", ch.Health)
	if rc != nil {
		h.AddHealthCheck("redis", func(ctx context.Context) error {
			return rc.Client().Ping(ctx).Err()
		})
	}
	return h
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h *api.PairsEchoHandler, l *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer([]xhttp.Handler{h},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(metricsPath, nil, nil),
		xhttp.WithSlowRequest(cfg.Metrics.SlowThreshold),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(srv *xhttp.Server, l *applogger.Logger) *server.App {
	return server.New(srv, l)
}
