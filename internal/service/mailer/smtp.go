package mailer

import (
	"crypto/tls"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	xlogger "MarketMon/pkg/logger"
)

// Config holds SMTP delivery settings. UseTLS switches delivery to an
// implicit-TLS connection (submission over 465); otherwise STARTTLS is
// negotiated opportunistically.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}

// Mailer sends monitor reports over SMTP.
type Mailer struct {
	cfg    Config
	logger *xlogger.Logger
}

// New creates a new Mailer.
func New(cfg Config, l *xlogger.Logger) *Mailer {
	if l == nil {
		l = xlogger.Nop()
	}
	return &Mailer{cfg: cfg, logger: l}
}

// Configured reports whether delivery settings are present.
func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.From != ""
}

// Send delivers a report to the given recipients. When htmlBody is non-empty
// the message is multipart/alternative with the plain text part first.
func (m *Mailer) Send(recipients []string, subject, textBody, htmlBody string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp is not configured")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	msg := m.buildMessage(recipients, subject, textBody, htmlBody)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	start := time.Now()
	if err := m.deliver(addr, auth, recipients, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.logger.Info("report email sent",
		xlogger.Int("recipients", len(recipients)),
		xlogger.Duration("took", time.Since(start)),
	)
	return nil
}

func (m *Mailer) deliver(addr string, auth smtp.Auth, recipients []string, msg []byte) error {
	if !m.cfg.UseTLS {
		return smtp.SendMail(addr, auth, m.cfg.From, recipients, msg)
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(m.cfg.From); err != nil {
		return err
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func (m *Mailer) buildMessage(recipients []string, subject, textBody, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	if htmlBody == "" {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(textBody)
		return []byte(b.String())
	}

	const boundary = "marketmon-report-boundary"
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(textBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
