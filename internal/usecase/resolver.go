package usecase

import (
	"context"
	"sync"
	"time"

	"MarketMon/internal/domain/models"
	drepo "MarketMon/internal/domain/repository"
	applogger "MarketMon/pkg/logger"
)

// Resolver maps asset labels to the first candidate ticker that returns
// usable daily data. Candidates are probed strictly in their configured
// order; a probe error counts the same as an empty response.
type Resolver struct {
	source    drepo.PriceSource
	metrics   drepo.Metrics
	logger    *applogger.Logger
	leadDays  int
	maxWorker int
}

// NewResolver creates a Resolver. leadDays widens the probe window backwards
// from the requested start so thinly traded series still produce at least one
// observation.
func NewResolver(source drepo.PriceSource, metrics drepo.Metrics, l *applogger.Logger, leadDays, maxWorkers int) *Resolver {
	if leadDays <= 0 {
		leadDays = 45
	}
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &Resolver{source: source, metrics: metrics, logger: l, leadDays: leadDays, maxWorker: maxWorkers}
}

// Resolve probes every label's candidate list and returns one Resolution per
// label. Exhausting a candidate list is not an error for the batch; the
// label's Resolution simply carries no ticker.
func (r *Resolver) Resolve(ctx context.Context, candidates map[string][]string, start, end time.Time) map[string]models.Resolution {
	out := make(map[string]models.Resolution, len(candidates))
	if len(candidates) == 0 {
		return out
	}

	probeStart := start.AddDate(0, 0, -r.leadDays)

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.maxWorker)
	for label, cands := range candidates {
		wg.Add(1)
		go func(label string, cands []string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			res := r.resolveOne(ctx, label, cands, probeStart, end)
			mu.Lock()
			out[label] = res
			mu.Unlock()
		}(label, cands)
	}
	wg.Wait()
	return out
}

func (r *Resolver) resolveOne(ctx context.Context, label string, cands []string, start, end time.Time) models.Resolution {
	res := models.Resolution{Label: label}
	for _, cand := range cands {
		if ctx.Err() != nil {
			return res
		}
		res.Attempted = append(res.Attempted, cand)
		if r.metrics != nil {
			r.metrics.RecordProbe(cand)
		}
		quotes, err := r.source.FetchDaily(ctx, []string{cand}, start, end)
		if err != nil {
			r.logger.Warn("probe failed",
				applogger.String("label", label),
				applogger.String("ticker", cand),
				applogger.Error(err),
			)
			continue
		}
		if hasObservation(quotes.Table(cand)) {
			res.Ticker = cand
			return res
		}
	}
	r.logger.Warn("no candidate resolved",
		applogger.String("label", label),
		applogger.Strings("attempted", res.Attempted),
	)
	return res
}

func hasObservation(t *models.FieldTable) bool {
	if t.Empty() {
		return false
	}
	s, ok := t.Series(models.FieldAdjClose, models.FieldClose)
	return ok && !s.Empty()
}
