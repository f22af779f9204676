package notifier

import (
	"gopkg.in/gomail.v2"

	"github.com/avoronova/sympathy/internal/config"
)

// EmailNotifier delivers notifications over SMTP. Sends are best-effort:
// callers run them in the background and only log failures.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailNotifier(cfg *config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (n *EmailNotifier) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return n.dialer.DialAndSend(m)
}
