package models

// Requests for monitor HTTP endpoints. Defined in domain for consistency and reuse.

type MonitorRequest struct {
	Start          string   `query:"start" json:"start" validate:"required,datetime=2006-01-02"`
	End            string   `query:"end" json:"end" validate:"required,datetime=2006-01-02"`
	Categories     []string `query:"categories" json:"categories"`
	CustomTickers  string   `query:"custom" json:"custom"`
	Basis          string   `query:"basis" json:"basis" default:"adjclose" validate:"oneof=adjclose close"`
	Calendar       string   `query:"calendar" json:"calendar" default:"business" validate:"oneof=business calendar"`
	ForwardFill    *bool    `query:"ffill" json:"ffill"`
	IncludeYields  bool     `query:"yields" json:"yields" default:"true"`
	IncludeSpreads bool     `query:"spreads" json:"spreads" default:"true"`
}

// FillGaps resolves the optional forward-fill flag, defaulting to on.
func (r *MonitorRequest) FillGaps() bool {
	if r.ForwardFill == nil {
		return true
	}
	return *r.ForwardFill
}

// PreferAdjClose reports whether the adjusted close field takes priority.
func (r *MonitorRequest) PreferAdjClose() bool { return r.Basis != "close" }

type ReportRequest struct {
	MonitorRequest
	Style string `query:"style" json:"style" default:"english" validate:"oneof=english spanish"`
}

type EmailReportRequest struct {
	ReportRequest
	Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
	Subject    string   `json:"subject"`
	SendHTML   bool     `json:"send_html" default:"true"`
}
