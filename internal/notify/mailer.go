package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults used when SMTP settings are partially configured.
const (
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587
	DefaultFrom     = "admission@college.edu"
)

// Delivery describes how an email was handled.
type Delivery struct {
	// Simulated is set when the email was written to disk instead of sent.
	Simulated bool
	// Path is the simulation file, if any.
	Path string
}

// Mailer delivers confirmation emails.
type Mailer interface {
	Send(ctx context.Context, email *Email) (Delivery, error)
}

// SMTPConfig holds SMTP settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// SMTPConfigFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USER and SMTP_PASSWORD.
func SMTPConfigFromEnv() SMTPConfig {
	cfg := SMTPConfig{
		Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port:     DefaultSMTPPort,
		User:     strings.TrimSpace(os.Getenv("SMTP_USER")),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
	if cfg.Host == "" {
		cfg.Host = DefaultSMTPHost
	}
	if v := strings.TrimSpace(os.Getenv("SMTP_PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	return cfg
}

// HasCredentials reports whether real delivery is possible.
func (c SMTPConfig) HasCredentials() bool {
	return c.User != "" && c.Password != ""
}

// NewMailer returns an SMTP mailer when credentials are configured and a
// simulated mailer writing into simulationDir otherwise.
func NewMailer(cfg SMTPConfig, simulationDir string) Mailer {
	if cfg.HasCredentials() {
		return &SMTPMailer{Config: cfg}
	}
	log.Printf("[notify] SMTP credentials missing, confirmation emails are simulated in %s", simulationDir)
	return &SimulatedMailer{Dir: simulationDir}
}

// SimulatedMailer writes the HTML body to email_simulation_<timestamp>.html.
type SimulatedMailer struct {
	Dir string
	Now func() time.Time
}

// Send writes the email body to disk.
func (m *SimulatedMailer) Send(_ context.Context, email *Email) (Delivery, error) {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	dir := m.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Delivery{}, fmt.Errorf("failed to create simulation directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("email_simulation_%s.html", now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(email.HTML), 0o644); err != nil {
		return Delivery{}, fmt.Errorf("failed to write simulated email: %w", err)
	}
	log.Printf("[notify] simulated email saved to %s", path)
	return Delivery{Simulated: true, Path: path}, nil
}

// SMTPMailer sends multipart/alternative email over SMTP with STARTTLS.
type SMTPMailer struct {
	Config SMTPConfig
}

// Send delivers the email.
func (m *SMTPMailer) Send(ctx context.Context, email *Email) (Delivery, error) {
	from := m.Config.User
	if from == "" {
		from = DefaultFrom
	}
	body, err := buildMessage(from, email)
	if err != nil {
		return Delivery{}, err
	}

	addr := net.JoinHostPort(m.Config.Host, strconv.Itoa(m.Config.Port))
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Delivery{}, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.Config.Host)
	if err != nil {
		conn.Close()
		return Delivery{}, fmt.Errorf("failed to start SMTP session: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: m.Config.Host}); err != nil {
		return Delivery{}, fmt.Errorf("STARTTLS failed: %w", err)
	}
	// App passwords are often pasted with spaces.
	password := strings.ReplaceAll(m.Config.Password, " ", "")
	if err := client.Auth(smtp.PlainAuth("", m.Config.User, password, m.Config.Host)); err != nil {
		return Delivery{}, fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err := client.Mail(from); err != nil {
		return Delivery{}, fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(email.To); err != nil {
		return Delivery{}, fmt.Errorf("RCPT TO failed: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return Delivery{}, fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		w.Close()
		return Delivery{}, fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return Delivery{}, fmt.Errorf("failed to finish message: %w", err)
	}
	return Delivery{}, client.Quit()
}

// buildMessage renders headers plus a multipart/alternative body with the
// plain text part first.
func buildMessage(from string, email *Email) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for _, part := range []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=utf-8", email.Text},
		{"text/html; charset=utf-8", email.HTML},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create MIME part: %w", err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("failed to write MIME part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close MIME body: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", email.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
