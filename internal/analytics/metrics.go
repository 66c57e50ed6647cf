package analytics

import (
	"math"
	"sort"

	"MarketMon/internal/domain/models"
)

// SpreadPair names a (long, short) label pair whose total-return differential
// approximates a credit or rate spread.
type SpreadPair struct {
	Name  string `yaml:"name"`
	Long  string `yaml:"long"`
	Short string `yaml:"short"`
}

// PerformanceSummary derives per-asset summary statistics from an aligned
// price panel and its returns panel. Values are percentage-scaled and sorted
// by total return descending; statistics that come out non-finite are kept as
// missing cells rather than dropping the asset.
func PerformanceSummary(prices, returns models.Panel, conv Conventions) []models.PerformanceRow {
	if prices.Empty() || returns.Empty() {
		return nil
	}
	conv = conv.orDefaults()

	days := prices.Dates[len(prices.Dates)-1].Sub(prices.Dates[0]).Hours() / 24
	if days < 1 {
		days = 1
	}
	years := days / conv.DayCount
	drawdowns := DrawdownFromPrices(prices)

	rows := make([]models.PerformanceRow, 0, len(prices.Columns))
	for _, label := range prices.Columns {
		first, last := firstLastValid(prices.Values[label])
		total := math.NaN()
		if !math.IsNaN(first) && first != 0 {
			total = last/first - 1
		}
		annualized := math.Pow(1+total, 1/years) - 1
		vol := sampleStdDevValid(returns.Values[label]) * math.Sqrt(conv.TradingDays)
		best, worst := maxMinValid(returns.Values[label])
		maxDD := minValid(drawdowns.Values[label])

		rows = append(rows, models.PerformanceRow{
			Label:            label,
			TotalReturn:      pct(total),
			AnnualizedReturn: pct(annualized),
			Volatility:       pct(vol),
			MaxDrawdown:      pct(maxDD),
			BestDay:          pct(best),
			WorstDay:         pct(worst),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].TotalReturn, rows[j].TotalReturn
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})
	return rows
}

// CorrelationMatrix computes pairwise Pearson correlations over the returns
// panel columns, using only rows where both columns are valid. Zero-variance
// columns and pairs with no overlapping rows come back as NaN cells. Empty
// input yields an empty result.
func CorrelationMatrix(returns models.Panel) models.Correlation {
	if returns.Empty() {
		return models.Correlation{}
	}
	n := len(returns.Columns)
	out := models.Correlation{
		Labels: append([]string(nil), returns.Columns...),
		Matrix: make([][]float64, n),
	}
	for i := range out.Matrix {
		out.Matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := pearson(returns.Values[returns.Columns[i]], returns.Values[returns.Columns[j]])
			out.Matrix[i][j], out.Matrix[j][i] = c, c
		}
	}
	return out
}

// SpreadProxies emits the total-return differential (long − short) for every
// configured pair whose both legs are present in the summary. Pairs with a
// missing leg are skipped.
func SpreadProxies(summary []models.PerformanceRow, pairs []SpreadPair) []models.SpreadProxy {
	if len(summary) == 0 || len(pairs) == 0 {
		return nil
	}
	totals := make(map[string]float64, len(summary))
	for _, row := range summary {
		totals[row.Label] = row.TotalReturn
	}
	var out []models.SpreadProxy
	for _, p := range pairs {
		long, okL := totals[p.Long]
		short, okS := totals[p.Short]
		if !okL || !okS || math.IsNaN(long) || math.IsNaN(short) {
			continue
		}
		out = append(out, models.SpreadProxy{Name: p.Name, Value: long - short})
	}
	return out
}

// WithSlope appends a basis-point slope column (long − short) × 100 to the
// yield panel when both named columns are present; otherwise the panel is
// returned unchanged.
func WithSlope(yields models.Panel, name, longCol, shortCol string) models.Panel {
	if yields.Empty() || !yields.HasColumn(longCol) || !yields.HasColumn(shortCol) || yields.HasColumn(name) {
		return yields
	}
	out := yields.Clone()
	lv, sv := out.Values[longCol], out.Values[shortCol]
	col := make([]float64, len(out.Dates))
	for i := range col {
		if math.IsNaN(lv[i]) || math.IsNaN(sv[i]) {
			col[i] = math.NaN()
			continue
		}
		col[i] = (lv[i] - sv[i]) * 100
	}
	out.Columns = append(out.Columns, name)
	out.Values[name] = col
	return out
}

func pct(v float64) float64 {
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v * 100
}

func firstLastValid(vals []float64) (first, last float64) {
	first, last = math.NaN(), math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(first) {
			first = v
		}
		last = v
	}
	return first, last
}

func maxMinValid(vals []float64) (max, min float64) {
	max, min = math.NaN(), math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
	}
	return max, min
}

func minValid(vals []float64) float64 {
	_, min := maxMinValid(vals)
	return min
}

// sampleStdDevValid is sampleStdDev over only the valid entries of vals.
func sampleStdDevValid(vals []float64) float64 {
	clean := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	return sampleStdDev(clean)
}

// pearson correlates the pairwise-valid rows of two columns.
func pearson(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var xs, ys []float64
	for i := 0; i < n; i++ {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		xs = append(xs, a[i])
		ys = append(ys, b[i])
	}
	if len(xs) == 0 {
		return math.NaN()
	}
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(len(xs))
	my /= float64(len(ys))
	var num, dx, dy float64
	for i := range xs {
		x, y := xs[i]-mx, ys[i]-my
		num += x * y
		dx += x * x
		dy += y * y
	}
	den := math.Sqrt(dx * dy)
	if den == 0 {
		// Zero variance on either side leaves the correlation undefined.
		return math.NaN()
	}
	return num / den
}
