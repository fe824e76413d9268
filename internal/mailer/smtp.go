package mailer

import (
	"context"

	gomail "github.com/wneessen/go-mail"

	"github.com/rotisserie/eris"
)

// Transport delivers a composed email.
type Transport interface {
	Send(ctx context.Context, email *Email) error
}

// SMTPConfig carries the mail-server connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPTransport delivers mail over SMTP.
type SMTPTransport struct {
	client *gomail.Client
	from   string
}

// NewSMTPTransport builds an SMTP client. Credentials are optional for local
// relays.
func NewSMTPTransport(cfg SMTPConfig) (*SMTPTransport, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "mailer: create smtp client")
	}
	return &SMTPTransport{client: client, from: cfg.From}, nil
}

func (t *SMTPTransport) Send(ctx context.Context, email *Email) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat("Aorbo Treks", t.from); err != nil {
		return eris.Wrap(err, "mailer: set from address")
	}
	if err := msg.To(email.To); err != nil {
		return eris.Wrap(err, "mailer: set to address")
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, email.PlainBody)
	msg.AddAlternativeString(gomail.TypeTextHTML, email.HTMLBody)

	if err := t.client.DialAndSendWithContext(ctx, msg); err != nil {
		return eris.Wrap(err, "mailer: send")
	}
	return nil
}
