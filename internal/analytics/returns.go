package analytics

import (
	"math"

	"MarketMon/internal/domain/models"
)

// ComputeReturns derives simple percentage changes per column per step.
// Division artifacts (±Inf) are demoted to missing, and rows where every
// column is missing are dropped; rows with partial data are kept.
func ComputeReturns(p models.Panel) models.Panel {
	if p.Empty() {
		return p
	}

	rets := make(map[string][]float64, len(p.Columns))
	for _, label := range p.Columns {
		src := p.Values[label]
		col := make([]float64, len(src))
		col[0] = math.NaN()
		for i := 1; i < len(src); i++ {
			prev, cur := src[i-1], src[i]
			if math.IsNaN(prev) || math.IsNaN(cur) {
				col[i] = math.NaN()
				continue
			}
			r := cur/prev - 1
			if math.IsInf(r, 0) {
				r = math.NaN()
			}
			col[i] = r
		}
		rets[label] = col
	}

	out := models.Panel{Columns: append([]string(nil), p.Columns...), Values: make(map[string][]float64, len(p.Columns))}
	for _, label := range out.Columns {
		out.Values[label] = nil
	}
	for i, d := range p.Dates {
		allMissing := true
		for _, label := range p.Columns {
			if !math.IsNaN(rets[label][i]) {
				allMissing = false
				break
			}
		}
		if allMissing {
			continue
		}
		out.Dates = append(out.Dates, d)
		for _, label := range p.Columns {
			out.Values[label] = append(out.Values[label], rets[label][i])
		}
	}
	return out
}
