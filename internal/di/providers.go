package di

import (
	"context"
	"fmt"
	"time"

	"MarketMon/internal/analytics"
	"MarketMon/internal/domain/repository"
	"MarketMon/internal/handler/api"
	internalrepo "MarketMon/internal/repository"
	icache "MarketMon/internal/service/cache"
	"MarketMon/internal/service/fred"
	"MarketMon/internal/service/mailer"
	"MarketMon/internal/service/yahoo"
	"MarketMon/internal/usecase"
	pkgch "MarketMon/pkg/clickhouse"
	"MarketMon/pkg/config"
	xhttp "MarketMon/pkg/http"
	pkgkafka "MarketMon/pkg/kafka"
	applogger "MarketMon/pkg/logger"
	"MarketMon/pkg/metrics"
	"MarketMon/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideBytesCache selects the fetch cache backend.
func ProvideBytesCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvidePriceSource creates the daily-bar price source.
func ProvidePriceSource(cfg *config.Config, c icache.BytesCache, l *applogger.Logger) repository.PriceSource {
	return yahoo.New(
		cfg.Prices.BaseURL,
		cfg.Prices.Timeout,
		cfg.Cache.TTL,
		cfg.Prices.MaxConcurrency,
		c,
		l,
	)
}

// ProvideYieldSource creates the yield series source.
func ProvideYieldSource(cfg *config.Config, c icache.BytesCache, l *applogger.Logger) repository.YieldSource {
	return fred.New(
		cfg.Fred.BaseURL,
		cfg.Fred.APIKey,
		cfg.Fred.Timeout,
		cfg.Cache.TTL,
		c,
		l,
	)
}

// ProvideUniverse loads the asset universe.
func ProvideUniverse(cfg *config.Config) (config.Universe, error) {
	return config.LoadUniverse(cfg.UniversePath)
}

// ProvideBarSink routes bar archival to the configured backend.
func ProvideBarSink(cfg *config.Config, l *applogger.Logger) (repository.BarSink, error) {
	switch cfg.Backend.Type {
	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithMaxConnections(10, 5),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
			pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}

		table := cfg.ClickHouse.Database + "." + cfg.ClickHouse.Table
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.InitSchema(ctx, []string{
			"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
			"CREATE TABLE IF NOT EXISTS " + table + " (date Date, ticker String, label String, close Float64) ENGINE=ReplacingMergeTree ORDER BY (ticker, date)",
		}); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		return internalrepo.NewClickHouseBars(client, table, cfg.Backend.BatchSize, l), nil

	case "kafka":
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.Kafka.Brokers),
			pkgkafka.WithCompression(cfg.Kafka.Compression),
			pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
			pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
			pkgkafka.WithBatchTimeout(cfg.Kafka.BatchTimeout),
			pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
			pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
			pkgkafka.WithHashByKey(true),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		return internalrepo.NewKafkaBars(producer, cfg.Kafka.Topic), nil

	default:
		return internalrepo.NopBars{}, nil
	}
}

// ProvideConventions maps analytics config onto the Conventions struct.
func ProvideConventions(cfg *config.Config) analytics.Conventions {
	conv := analytics.Conventions{
		DayCount:    cfg.Analytics.DayCount,
		TradingDays: cfg.Analytics.TradingDays,
		VolWindow:   cfg.Analytics.VolWindow,
	}
	return conv
}

// ProvideSpreadPairs maps configured spread pairs.
func ProvideSpreadPairs(cfg *config.Config) []analytics.SpreadPair {
	pairs := make([]analytics.SpreadPair, 0, len(cfg.Analytics.SpreadPairs))
	for _, p := range cfg.Analytics.SpreadPairs {
		pairs = append(pairs, analytics.SpreadPair{Name: p.Name, Long: p.Long, Short: p.Short})
	}
	return pairs
}

// ProvideSlopeSpec maps the configured slope column.
func ProvideSlopeSpec(cfg *config.Config) usecase.SlopeSpec {
	return usecase.SlopeSpec{
		Name:  cfg.Analytics.Slope.Name,
		Long:  cfg.Analytics.Slope.Long,
		Short: cfg.Analytics.Slope.Short,
	}
}

// ProvideResolver creates the ticker resolver.
func ProvideResolver(src repository.PriceSource, m repository.Metrics, l *applogger.Logger, cfg *config.Config) *usecase.Resolver {
	return usecase.NewResolver(src, m, l, cfg.Prices.ProbeLeadDays, cfg.Prices.MaxConcurrency)
}

// ProvideFetcher creates the panel fetcher.
func ProvideFetcher(src repository.PriceSource, m repository.Metrics, l *applogger.Logger) *usecase.Fetcher {
	return usecase.NewFetcher(src, m, l)
}

// ProvideMonitor creates the monitor pipeline use case.
func ProvideMonitor(
	resolver *usecase.Resolver,
	fetcher *usecase.Fetcher,
	yields repository.YieldSource,
	sink repository.BarSink,
	m repository.Metrics,
	l *applogger.Logger,
	universe config.Universe,
	conv analytics.Conventions,
	pairs []analytics.SpreadPair,
	slope usecase.SlopeSpec,
) *usecase.MonitorUseCase {
	return usecase.NewMonitorUseCase(resolver, fetcher, yields, sink, m, l, universe, conv, pairs, slope)
}

// ProvideReportBuilder creates the narrative report builder.
func ProvideReportBuilder(universe config.Universe, slope usecase.SlopeSpec) *usecase.ReportBuilder {
	return usecase.NewReportBuilder(universe, slope)
}

// ProvideMailer creates the SMTP report sender.
func ProvideMailer(cfg *config.Config, l *applogger.Logger) *mailer.Mailer {
	return mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.Sender,
		UseTLS:   cfg.SMTP.UseTLS,
	}, l)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(l *applogger.Logger, monitor *usecase.MonitorUseCase, reports *usecase.ReportBuilder, mail *mailer.Mailer) xhttp.Handler {
	return api.NewMonitorEchoHandler(l, monitor, reports, mail)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, handler xhttp.Handler, sink repository.BarSink, l *applogger.Logger) *server.App {
	return server.New(cfg, handler, sink, l)
}
