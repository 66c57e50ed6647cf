package usecase

import (
	"fmt"
	"strings"
	"time"

	"MarketMon/internal/domain/models"
	"MarketMon/pkg/config"
)

// Report styles.
const (
	StyleEnglish = "english"
	StyleSpanish = "spanish"
)

// ReportBuilder renders a narrative markdown report from a monitor result.
type ReportBuilder struct {
	universe config.Universe
	slope    SlopeSpec
}

// NewReportBuilder creates a ReportBuilder.
func NewReportBuilder(universe config.Universe, slope SlopeSpec) *ReportBuilder {
	return &ReportBuilder{universe: universe, slope: slope}
}

var euIndexLabels = []string{"EURO STOXX 600", "DAX", "CAC 40", "IBEX", "FTSE 100", "FTSE MIB"}
var usIndexLabels = []string{"S&P 500", "NASDAQ", "Dow Jones", "Russell 2000"}

// Build renders the report for the given period and style. Section order is
// fixed; missing groups render as N/A rather than dropping the section.
func (b *ReportBuilder) Build(start, end time.Time, result *models.MonitorResult, style string) string {
	euTop, euBottom := topBottom(result.Summary, b.categoryLabels("EU SECTORS"))
	usTop, usBottom := topBottom(result.Summary, b.categoryLabels("US SECTORS"))
	euIdxTop, euIdxBottom := topBottom(result.Summary, euIndexLabels)
	usIdxTop, usIdxBottom := topBottom(result.Summary, usIndexLabels)
	slope, slopeOK := b.slopeClose(result.Yields)

	if style == StyleSpanish {
		return b.spanish(start, end, euTop, euBottom, usTop, usBottom, slope, slopeOK)
	}
	return b.english(start, end, euTop, euBottom, usTop, usBottom, euIdxTop, euIdxBottom, usIdxTop, usIdxBottom, slope, slopeOK)
}

func (b *ReportBuilder) english(start, end time.Time, euTop, euBottom, usTop, usBottom, euIdxTop, euIdxBottom, usIdxTop, usIdxBottom string, slope float64, slopeOK bool) string {
	slopeText := "2s10s slope unavailable"
	if slopeOK {
		slopeText = fmt.Sprintf("US 2s10s closed at %.1f bps", slope)
	}

	var sb strings.Builder
	sb.WriteString("# Global Market Monitor Report\n")
	fmt.Fprintf(&sb, "**Period:** %s to %s\n\n", start.Format("02 January 2006"), end.Format("02 January 2006"))

	sb.WriteString("## EUROPEAN MARKETS\n")
	fmt.Fprintf(&sb, "European indices showed mixed performance, led by **%s**, while **%s** lagged in the period. In EU sectors, leadership came from **%s** and the weakest pocket was **%s**. EU value vs growth dynamics are captured via CV9.PA and CG9.PA in the summary table.\n\n", euIdxTop, euIdxBottom, euTop, euBottom)

	sb.WriteString("## US MARKETS\n")
	fmt.Fprintf(&sb, "US indices were headed by **%s**, whereas **%s** underperformed. Sector breadth favored **%s** while **%s** remained the main drag. US value/growth relative performance is proxied by IVE vs IVW.\n\n", usIdxTop, usIdxBottom, usTop, usBottom)

	sb.WriteString("## EUROPE VS US COMPARATIVE SECTOR ANALYSIS\n")
	sb.WriteString("Cross-region comparison indicates rotating leadership by sector. Focus on relative winners in technology, financials, and defensives across both geographies to identify convergence/divergence trends.\n\n")

	sb.WriteString("## ASIAN MARKETS\n")
	sb.WriteString("Asian benchmarks (Nikkei 225 and Hang Seng) contributed to global risk sentiment with divergent trajectories over the selected window.\n\n")

	sb.WriteString("## FIXED INCOME MARKETS\n")
	fmt.Fprintf(&sb, "Rates and bond ETF performance indicate duration sensitivity and credit beta behavior. %s. Corporate-vs-government return differentials are shown as spread-change proxies and should be interpreted as indicative, not direct OAS measures.\n\n", slopeText)

	sb.WriteString("## CURRENCY MARKETS\n")
	sb.WriteString("Major FX pairs reflected policy divergence and risk appetite shifts, especially across EUR/USD, USD/JPY, and GBP/USD.\n\n")

	sb.WriteString("## COMMODITY MARKETS\n")
	sb.WriteString("Commodities displayed heterogeneous moves across precious metals, energy, and industrial metals, with implications for inflation narratives and cyclicality.\n\n")

	sb.WriteString("## PERFORMANCE SUMMARY\n")
	sb.WriteString("Refer to the table for total return, annualized return, volatility, max drawdown, and tail daily moves for each selected asset.\n")
	return sb.String()
}

func (b *ReportBuilder) spanish(start, end time.Time, euTop, euBottom, usTop, usBottom string, slope float64, slopeOK bool) string {
	slopeText := "pendiente 2s10s no disponible"
	if slopeOK {
		slopeText = fmt.Sprintf("la pendiente 2s10s de EE.UU. cerró en %.1f pb", slope)
	}

	var sb strings.Builder
	sb.WriteString("# Informe Global Market Monitor\n")
	fmt.Fprintf(&sb, "**Periodo:** %s a %s\n\n", start.Format("02 January 2006"), end.Format("02 January 2006"))

	sb.WriteString("## MERCADOS EUROPEOS\n")
	fmt.Fprintf(&sb, "En Europa, los sectores mostraron dispersión: **%s** lideró y **%s** quedó rezagado. La comparación value vs growth se resume en el cuadro de resultados.\n\n", euTop, euBottom)

	sb.WriteString("## MERCADOS DE EE.UU.\n")
	fmt.Fprintf(&sb, "En EE.UU., la amplitud sectorial favoreció **%s**, mientras **%s** fue el principal lastre. La dinámica value/growth se aproxima con IVE frente a IVW.\n\n", usTop, usBottom)

	sb.WriteString("## ANÁLISIS SECTORIAL COMPARATIVO EUROPA VS EE.UU.\n")
	sb.WriteString("La comparación relativa entre regiones muestra rotación sectorial. Conviene monitorizar tecnología, financieras y sectores defensivos para detectar convergencias y divergencias.\n\n")

	sb.WriteString("## MERCADOS ASIÁTICOS\n")
	sb.WriteString("Nikkei 225 y Hang Seng aportaron señales mixtas de apetito por riesgo durante la ventana analizada.\n\n")

	sb.WriteString("## MERCADOS DE RENTA FIJA\n")
	fmt.Fprintf(&sb, "El comportamiento de ETFs de bonos y curvas soberanas refleja sensibilidad a duración y crédito; %s. Los proxies de spread corporativo vs soberano son aproximaciones y no sustituyen medidas directas de spread.\n\n", slopeText)

	sb.WriteString("## MERCADOS DE DIVISAS\n")
	sb.WriteString("Las principales divisas recogieron divergencias de política monetaria y cambios en el sentimiento de riesgo.\n\n")

	sb.WriteString("## MERCADOS DE MATERIAS PRIMAS\n")
	sb.WriteString("Metales preciosos, energía y metales industriales mostraron trayectorias distintas con impacto sobre inflación esperada y ciclo económico.\n\n")

	sb.WriteString("## RESUMEN DE DESEMPEÑO\n")
	sb.WriteString("Consulte la tabla para retorno total, retorno anualizado, volatilidad, drawdown máximo y extremos diarios.\n")
	return sb.String()
}

func (b *ReportBuilder) categoryLabels(category string) []string {
	labels := b.universe.Labels(category)
	out := make([]string, 0, len(labels))
	for label := range labels {
		out = append(out, label)
	}
	return out
}

// slopeClose returns the latest (long - short) yield difference in basis
// points from the yields panel's slope column legs.
func (b *ReportBuilder) slopeClose(yields models.Panel) (float64, bool) {
	long := lastValid(yields.Column(b.slope.Long))
	short := lastValid(yields.Column(b.slope.Short))
	if models.IsMissing(long) || models.IsMissing(short) {
		return 0, false
	}
	return (long - short) * 100, true
}

func lastValid(vals []float64) float64 {
	for i := len(vals) - 1; i >= 0; i-- {
		if !models.IsMissing(vals[i]) {
			return vals[i]
		}
	}
	return models.Missing()
}

// topBottom picks the best and worst asset by total return within a label
// group, or N/A when the group has no summary rows.
func topBottom(summary []models.PerformanceRow, labels []string) (top, bottom string) {
	in := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		in[l] = struct{}{}
	}
	top, bottom = "N/A", "N/A"
	best, worst := models.Missing(), models.Missing()
	for _, row := range summary {
		if _, ok := in[row.Label]; !ok || models.IsMissing(row.TotalReturn) {
			continue
		}
		if models.IsMissing(best) || row.TotalReturn > best {
			best, top = row.TotalReturn, row.Label
		}
		if models.IsMissing(worst) || row.TotalReturn < worst {
			worst, bottom = row.TotalReturn, row.Label
		}
	}
	return top, bottom
}
