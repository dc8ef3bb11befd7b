package messaging

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
)

// emailChannel delivers notifications over a direct SMTP connection.
type emailChannel struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
	to        string
	log       *logger.Logger
}

func newEmailChannel(cfg config.MessagingConfig, log *logger.Logger) *emailChannel {
	return &emailChannel{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		to:        cfg.GetAlertEmailTo(),
		log:       log,
	}
}

func (c *emailChannel) Name() string { return "email" }

func (c *emailChannel) Deliver(ctx context.Context, lead *domain.Lead, severity string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(c.fromName, c.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(c.to); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(fmt.Sprintf("[%s] %s lead: %s", severity, lead.Category, lead.FullName()))
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Lead: %s <%s>\nCompany: %s\nScore: %d (%s)\nTerritory: %s (rep %s)\n",
		lead.FullName(), lead.Email, lead.Company, lead.Score, lead.Category,
		lead.Territory.Territory, lead.Territory.Representative))

	client, err := gomail.NewClient(c.host,
		gomail.WithPort(c.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(c.username),
		gomail.WithPassword(c.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
