package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/juparave/appverify/internal/config"
	"github.com/juparave/appverify/internal/domain"
	"github.com/juparave/appverify/internal/report"
)

const maxAttempts = 3

// Service handles email notifications
type Service struct {
	config    config.EmailConfig
	logger    *zap.SugaredLogger
	formatter *report.Formatter
	sleep     func(time.Duration)
}

// NewService creates a new notification Service
func NewService(cfg config.EmailConfig, logger *zap.SugaredLogger) *Service {
	return &Service{
		config:    cfg,
		logger:    logger,
		formatter: report.NewFormatter(""),
		sleep:     time.Sleep,
	}
}

// SendReport sends the verification report via email
func (s *Service) SendReport(ctx context.Context, res *domain.RunResult) error {
	htmlBody := s.formatter.ToHTML(res)
	subject := BuildSubject(res)

	return s.send(ctx, subject, htmlBody)
}

// BuildSubject summarizes the verdict for the mail subject line
func BuildSubject(res *domain.RunResult) string {
	project := filepath.Base(res.Root)

	if !res.HasFindings() {
		return fmt.Sprintf("[appverify] %s - ✅ All Clear", project)
	}

	if res.ErrorCount() > 0 {
		return fmt.Sprintf("[appverify] %s - ❌ %d errors, %d warnings", project, res.ErrorCount(), res.WarningCount())
	}

	return fmt.Sprintf("[appverify] %s - ⚠️ %d warnings", project, res.WarningCount())
}

func (s *Service) send(ctx context.Context, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	message := s.buildMessage(subject, htmlBody)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.sendWithTimeout(addr, message, 30*time.Second)
		if err == nil {
			return nil
		}

		lastErr = err
		s.logger.Warnw("email attempt failed", "attempt", attempt, "error", err)

		if attempt < maxAttempts {
			s.sleep(time.Duration(attempt*attempt) * time.Second)
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

func (s *Service) buildMessage(subject, htmlBody string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromAddress))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", s.config.ToAddress))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	buf.WriteString(fmt.Sprintf("Message-ID: <%d@%s>\r\n", time.Now().UnixNano(), s.config.SMTPHost))
	buf.WriteString("\r\n")

	buf.WriteString(htmlBody)

	return buf.Bytes()
}

func (s *Service) sendWithTimeout(addr string, message []byte, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("connecting to SMTP server: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("setting deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, s.config.SMTPHost)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer client.Quit()

	// STARTTLS on the submission port
	if s.config.SMTPPort == 587 {
		tlsConfig := &tls.Config{ServerName: s.config.SMTPHost}
		if err = client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("starting TLS: %w", err)
		}
	}

	if s.config.SMTPUser != "" && s.config.SMTPPassword != "" {
		auth := smtp.PlainAuth("", s.config.SMTPUser, s.config.SMTPPassword, s.config.SMTPHost)
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("authenticating: %w", err)
		}
	}

	if err = client.Mail(s.config.FromAddress); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err = client.Rcpt(s.config.ToAddress); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("getting data writer: %w", err)
	}
	if _, err = writer.Write(message); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}

	return writer.Close()
}
