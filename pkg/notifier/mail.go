package notifier

import (
	"context"
	"fmt"
	"html"

	"plantnet/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier sends plain HTML mail over SMTP.
type MailNotifier struct {
	dialer sender
	from   string
	log    *zap.Logger
}

func NewMailNotifier(config utils.EmailConfig, log *zap.Logger) *MailNotifier {
	return &MailNotifier{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
		log:    log.With(zap.String("notifier", "mail")),
	}
}

// New picks the mail notifier when an SMTP host is configured.
func New(config utils.EmailConfig, log *zap.Logger) Notifier {
	if config.Host == "" {
		log.Warn("SMTP_HOST not set, notifications are only logged")
		return NewLogNotifier(log)
	}
	return NewMailNotifier(config, log)
}

func (n *MailNotifier) Notify(ctx context.Context, recipient, subject, message string) error {
	if recipient == "" {
		return fmt.Errorf("notify %q: empty recipient", subject)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", "<p>"+html.EscapeString(message)+"</p>")

	done := make(chan error, 1)
	go func() { done <- n.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail to %s: %w", recipient, err)
		}
	case <-ctx.Done():
		return fmt.Errorf("send mail to %s: %w", recipient, ctx.Err())
	}

	n.log.Debug("Mail sent", zap.String("recipient", recipient), zap.String("subject", subject))
	return nil
}
