// Package mailer sends outbound email over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/foodcrm/backend/internal/infrastructure/config"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Attachment is a file attached to an outbound email
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// OutboundEmail is a message to be sent over SMTP
type OutboundEmail struct {
	To          []string
	Cc          []string
	Subject     string
	BodyText    string
	BodyHTML    string
	Attachments []Attachment
}

// SMTPSender sends email through a configured SMTP relay
type SMTPSender struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(cfg config.SMTPConfig, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send delivers the email and returns the generated message id.
// A transport failure returns an error and nothing is delivered.
func (s *SMTPSender) Send(ctx context.Context, email OutboundEmail) (string, error) {
	if len(email.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return "", fmt.Errorf("invalid from address %q: %w", s.cfg.From, err)
	}
	if err := msg.To(email.To...); err != nil {
		return "", fmt.Errorf("invalid recipient: %w", err)
	}
	if len(email.Cc) > 0 {
		if err := msg.Cc(email.Cc...); err != nil {
			return "", fmt.Errorf("invalid cc recipient: %w", err)
		}
	}

	msg.Subject(email.Subject)
	msg.SetMessageID()

	if email.BodyHTML != "" {
		msg.SetBodyString(gomail.TypeTextHTML, email.BodyHTML)
		if email.BodyText != "" {
			msg.AddAlternativeString(gomail.TypeTextPlain, email.BodyText)
		}
	} else {
		msg.SetBodyString(gomail.TypeTextPlain, email.BodyText)
	}

	for _, att := range email.Attachments {
		opts := []gomail.FileOption{}
		if att.ContentType != "" {
			opts = append(opts, gomail.WithFileContentType(gomail.ContentType(att.ContentType)))
		}
		msg.AttachReadSeeker(att.Filename, bytes.NewReader(att.Content), opts...)
	}

	client, err := s.newClient()
	if err != nil {
		return "", err
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		s.logger.Warn("SMTP delivery failed",
			zap.String("host", s.cfg.Host),
			zap.Strings("to", email.To),
			zap.Error(err))
		return "", fmt.Errorf("smtp delivery failed: %w", err)
	}

	return msg.GetMessageID(), nil
}

func (s *SMTPSender) newClient() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
	}

	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	if s.cfg.StartTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}

// From returns the configured sender address
func (s *SMTPSender) From() string {
	return s.cfg.From
}
