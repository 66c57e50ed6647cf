package api

import (
	"fmt"
	"net/http"

	models "MarketMon/internal/domain/models"
	"MarketMon/internal/report"
	"MarketMon/internal/service/mailer"
	"MarketMon/internal/service/ratelimit"
	"MarketMon/internal/usecase"
	xhttp "MarketMon/pkg/http"
	xlogger "MarketMon/pkg/logger"
	"MarketMon/pkg/util"

	"github.com/labstack/echo/v4"
)

// MonitorEchoHandler exposes the monitor pipeline over HTTP.
type MonitorEchoHandler struct {
	logger  *xlogger.Logger
	monitor *usecase.MonitorUseCase
	reports *usecase.ReportBuilder
	mail    *mailer.Mailer
	mailRL  *ratelimit.Limiter
}

func NewMonitorEchoHandler(logger *xlogger.Logger, monitor *usecase.MonitorUseCase, reports *usecase.ReportBuilder, mail *mailer.Mailer) *MonitorEchoHandler {
	return &MonitorEchoHandler{
		logger:  logger,
		monitor: monitor,
		reports: reports,
		mail:    mail,
		mailRL:  ratelimit.New(3, 0.05),
	}
}

func (h *MonitorEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/monitor", h.Monitor)
	g.GET("/summary.csv", h.SummaryCSV)
	g.GET("/panel.csv", h.PanelCSV)
	g.GET("/report", h.Report)
	g.POST("/report/email", h.EmailReport)
}

func (h *MonitorEchoHandler) Monitor(c echo.Context) error {
	req := &models.MonitorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.monitor.Run(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("monitor usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, toResultDTO(res))
}

func (h *MonitorEchoHandler) SummaryCSV(c echo.Context) error {
	req := &models.MonitorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.monitor.Run(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("monitor usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	b, err := usecase.SummaryCSV(res.Summary)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CSVResponse(c, "summary.csv", b)
}

func (h *MonitorEchoHandler) PanelCSV(c echo.Context) error {
	req := &models.MonitorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.monitor.Run(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("monitor usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	table := c.QueryParam("table")
	panel, err := pickPanel(res, table)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	b, err := usecase.PanelCSV(panel)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	if table == "" {
		table = "prices"
	}
	return xhttp.CSVResponse(c, table+".csv", b)
}

func (h *MonitorEchoHandler) Report(c echo.Context) error {
	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	md, _, err := h.buildReport(c, req)
	if err != nil {
		h.logger.Error("report build error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{
		"markdown": md,
		"html":     report.FromMarkdown(md),
	})
}

func (h *MonitorEchoHandler) EmailReport(c echo.Context) error {
	req := &models.EmailReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.mail == nil || !h.mail.Configured() {
		return xhttp.BadRequestResponse(c, "smtp is not configured")
	}
	if !h.mailRL.Allow(c.RealIP()) {
		h.logger.Warn("email rate limited", xlogger.String("remote", c.RealIP()))
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many report emails, slow down")
	}

	md, _, err := h.buildReport(c, &req.ReportRequest)
	if err != nil {
		h.logger.Error("report build error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("Global Market Monitor %s to %s", req.Start, req.End)
	}
	var html string
	if req.SendHTML {
		html = report.FromMarkdown(md)
	}
	if err := h.mail.Send(req.Recipients, subject, md, html); err != nil {
		h.logger.Error("report email error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"sent":       true,
		"recipients": len(req.Recipients),
	})
}

func (h *MonitorEchoHandler) buildReport(c echo.Context, req *models.ReportRequest) (string, *models.MonitorResult, error) {
	res, err := h.monitor.Run(c.Request().Context(), &req.MonitorRequest)
	if err != nil {
		return "", nil, err
	}
	start, _ := util.ParseDate(req.Start)
	end, _ := util.ParseDate(req.End)
	return h.reports.Build(start, end, res, req.Style), res, nil
}

func pickPanel(res *models.MonitorResult, table string) (models.Panel, error) {
	switch table {
	case "", "prices":
		return res.Prices, nil
	case "normalized":
		return res.Normalized, nil
	case "returns":
		return res.Returns, nil
	case "drawdowns":
		return res.Drawdowns, nil
	case "rollingvol":
		return res.RollingVol, nil
	case "yields":
		return res.Yields, nil
	default:
		return models.Panel{}, fmt.Errorf("unknown table %q", table)
	}
}
