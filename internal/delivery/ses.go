package delivery

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	awsx "leak-diagnostic/internal/common/aws"
)

// SESProvider sends through Amazon SES. Attachments require the raw MIME
// API, so the message is assembled by hand.
type SESProvider struct {
	client *awsx.SESClient
	from   string
}

func NewSESProvider(client *awsx.SESClient, from string) *SESProvider {
	return &SESProvider{client: client, from: from}
}

func (p *SESProvider) Name() string { return "ses" }

func (p *SESProvider) Send(ctx context.Context, input *Input) error {
	raw := buildMIMEMessage(p.from, input)

	_, err := p.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(p.from),
		Destinations: []string{input.RecipientEmail},
		RawMessage:   &types.RawMessage{Data: raw},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}

// buildMIMEMessage assembles a multipart/mixed message with the HTML body
// and the PDF attachment.
func buildMIMEMessage(from string, input *Input) []byte {
	boundary := "leak-report-boundary"

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", input.RecipientEmail)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subjectLine(input))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=\"%s\"\r\n", boundary)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 7bit\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(htmlBody(input))
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: application/pdf\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=\"%s\"\r\n", input.filename())
	buf.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString(input.PDF)
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}
