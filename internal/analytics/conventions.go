package analytics

// Conventions holds the annualization constants. The values are market
// conventions, not derived invariants, so they come from configuration.
type Conventions struct {
	DayCount    float64 // calendar days per year for annualizing returns
	TradingDays float64 // trading days per year for annualizing volatility
	VolWindow   int     // trailing window for rolling volatility
}

// DefaultConventions returns the usual daily-equity constants.
func DefaultConventions() Conventions {
	return Conventions{DayCount: 365.25, TradingDays: 252, VolWindow: 20}
}

func (c Conventions) orDefaults() Conventions {
	d := DefaultConventions()
	if c.DayCount <= 0 {
		c.DayCount = d.DayCount
	}
	if c.TradingDays <= 0 {
		c.TradingDays = d.TradingDays
	}
	if c.VolWindow <= 0 {
		c.VolWindow = d.VolWindow
	}
	return c
}
