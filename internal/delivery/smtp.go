package delivery

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"
)

// SMTPProvider sends the report directly through an SMTP relay, for
// deployments that own their mail credentials instead of delegating to
// the scoring endpoint.
type SMTPProvider struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPProvider(host string, port int, username, password, from string) *SMTPProvider {
	return &SMTPProvider{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (p *SMTPProvider) Name() string { return "smtp" }

func (p *SMTPProvider) Send(ctx context.Context, input *Input) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", p.from)
	m.SetHeader("To", input.RecipientEmail)
	m.SetHeader("Subject", subjectLine(input))
	m.SetBody("text/html", htmlBody(input))
	m.Attach(input.filename(), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(input.PDF)
		return err
	}))

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
