package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"MarketMon/internal/domain/models"
	"MarketMon/internal/domain/repository"
	pkgch "MarketMon/pkg/clickhouse"
	pkgkafka "MarketMon/pkg/kafka"
	applogger "MarketMon/pkg/logger"
)

// ClickHouseBars archives daily bars to a ClickHouse table. It owns the
// client and releases it on Close.
type ClickHouseBars struct {
	client *pkgch.Client
	db     *sql.DB
	table  string
	chunk  int
	l      *applogger.Logger
}

// NewClickHouseBars creates a ClickHouse bar sink.
func NewClickHouseBars(client *pkgch.Client, table string, batchSize int, l *applogger.Logger) repository.BarSink {
	if batchSize <= 0 {
		batchSize = 2000
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &ClickHouseBars{client: client, db: client.DB(), table: table, chunk: batchSize, l: l}
}

func (s *ClickHouseBars) StoreBatch(ctx context.Context, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	start := time.Now()
	// Multi-row VALUES inserts to reduce round-trips.
	for lo := 0; lo < len(bars); lo += s.chunk {
		hi := lo + s.chunk
		if hi > len(bars) {
			hi = len(bars)
		}

		values := make([]string, 0, hi-lo)
		args := make([]interface{}, 0, (hi-lo)*4)
		for _, b := range bars[lo:hi] {
			if b.Ticker == "" || b.Date.IsZero() || models.IsMissing(b.Close) {
				continue
			}
			values = append(values, "(?, ?, ?, ?)")
			args = append(args, b.Date, b.Ticker, b.Label, b.Close)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (date, ticker, label, close) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.l.Error("clickhouse bar insert error",
				applogger.String("table", s.table),
				applogger.Int("rows", len(values)),
				applogger.Error(err),
			)
			return fmt.Errorf("insert bars: %w", err)
		}
	}
	s.l.Info("bars archived",
		applogger.String("table", s.table),
		applogger.Int("rows", len(bars)),
		applogger.Duration("took", time.Since(start)),
	)
	return nil
}

func (s *ClickHouseBars) Close() error {
	return s.client.Close()
}

// KafkaBars publishes daily bars to a Kafka topic, keyed by ticker.
type KafkaBars struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaBars creates a Kafka bar sink.
func NewKafkaBars(producer *pkgkafka.Producer, topic string) repository.BarSink {
	return &KafkaBars{producer: producer, topic: topic}
}

func (s *KafkaBars) StoreBatch(ctx context.Context, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(bars))
	for _, b := range bars {
		if b.Ticker == "" || b.Date.IsZero() || models.IsMissing(b.Close) {
			continue
		}
		msgs = append(msgs, pkgkafka.Message{
			Key: []byte(b.Ticker),
			Value: map[string]interface{}{
				"date":   b.Date.Format("2006-01-02"),
				"ticker": b.Ticker,
				"label":  b.Label,
				"close":  b.Close,
			},
		})
	}
	if len(msgs) == 0 {
		return nil
	}
	return s.producer.PublishBatch(ctx, s.topic, msgs)
}

func (s *KafkaBars) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}

// NopBars discards bars; used when no archive backend is configured.
type NopBars struct{}

func (NopBars) StoreBatch(context.Context, []models.Bar) error { return nil }
func (NopBars) Close() error                                   { return nil }
