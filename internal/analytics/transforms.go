package analytics

import (
	"math"

	"MarketMon/internal/domain/models"
)

// NormalizeBase100 rescales each column so its first valid observation is 100.
// Columns with no valid observation stay all-missing.
func NormalizeBase100(p models.Panel) models.Panel {
	if p.Empty() {
		return p
	}
	out := p.Clone()
	for _, label := range out.Columns {
		col := out.Values[label]
		base := math.NaN()
		for _, v := range col {
			if !math.IsNaN(v) {
				base = v
				break
			}
		}
		for i, v := range col {
			if math.IsNaN(v) || math.IsNaN(base) || base == 0 {
				col[i] = math.NaN()
			} else {
				col[i] = v / base * 100
			}
		}
	}
	return out
}

// DrawdownFromPrices returns, per cell, the fractional decline of the price
// from its running maximum to date. Running maxima skip missing cells.
func DrawdownFromPrices(p models.Panel) models.Panel {
	if p.Empty() {
		return p
	}
	out := p.Clone()
	for _, label := range out.Columns {
		col := out.Values[label]
		peak := math.NaN()
		for i, v := range col {
			if math.IsNaN(v) {
				col[i] = math.NaN()
				continue
			}
			if math.IsNaN(peak) || v > peak {
				peak = v
			}
			if peak == 0 {
				col[i] = math.NaN()
				continue
			}
			col[i] = v/peak - 1
		}
	}
	return out
}

// RollingVolatility computes the trailing window standard deviation of
// returns per column, annualized by the trading-day convention. The first
// window−1 rows of each column are missing, as is any window containing a
// missing return.
func RollingVolatility(returns models.Panel, conv Conventions) models.Panel {
	if returns.Empty() {
		return returns
	}
	conv = conv.orDefaults()
	w := conv.VolWindow
	ann := math.Sqrt(conv.TradingDays)

	out := returns.Clone()
	for _, label := range out.Columns {
		src := returns.Values[label]
		col := out.Values[label]
		for i := range col {
			if i < w-1 {
				col[i] = math.NaN()
				continue
			}
			col[i] = ann * sampleStdDev(src[i-w+1:i+1])
		}
	}
	return out
}

// sampleStdDev returns the sample standard deviation, or NaN when the window
// has fewer than two valid values or contains a missing one.
func sampleStdDev(vals []float64) float64 {
	n := len(vals)
	if n < 2 {
		return math.NaN()
	}
	var sum float64
	for _, v := range vals {
		if math.IsNaN(v) {
			return math.NaN()
		}
		sum += v
	}
	mean := sum / float64(n)
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
