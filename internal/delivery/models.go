// Package delivery sends the finished report PDF to the visitor. Exactly
// one provider is active per deployment; a failed send is reported back so
// the visitor can retry manually.
package delivery

import (
	"context"
	"fmt"
	"strings"
)

// Input is everything a provider needs to send one report.
type Input struct {
	PDF            []byte
	RecipientEmail string
	UserName       string
	CompanyName    string
	TotalLoss      float64
	LeakagePercent float64
	Industry       string
}

// Provider is one concrete delivery mechanism.
type Provider interface {
	Name() string
	Send(ctx context.Context, input *Input) error
}

func (in *Input) validate() error {
	if len(in.PDF) == 0 {
		return fmt.Errorf("pdf payload is empty")
	}
	if !strings.Contains(in.RecipientEmail, "@") {
		return fmt.Errorf("recipient email %q is not valid", in.RecipientEmail)
	}
	return nil
}

func (in *Input) filename() string {
	company := strings.TrimSpace(in.CompanyName)
	if company == "" {
		return "profit-leak-report.pdf"
	}
	slug := strings.ToLower(strings.ReplaceAll(company, " ", "-"))
	return fmt.Sprintf("profit-leak-report-%s.pdf", slug)
}
