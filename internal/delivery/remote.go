package delivery

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"leak-diagnostic/internal/common/httpx"
)

// remoteRequest mirrors the emailPDF action the scoring endpoint accepts.
// The PDF travels as a base64 data URI so the endpoint can hand it to its
// mailer unchanged.
type remoteRequest struct {
	Action         string  `json:"action"`
	PDFData        string  `json:"pdfData"`
	LeadEmail      string  `json:"leadEmail"`
	UserName       string  `json:"userName"`
	CompanyName    string  `json:"companyName"`
	TotalLoss      float64 `json:"totalLoss"`
	LeakagePercent float64 `json:"leakagePercent"`
	Industry       string  `json:"industry"`
}

type remoteResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RemoteProvider delegates the actual email send to the scoring endpoint.
// This is the default: the endpoint already holds the mail credentials.
type RemoteProvider struct {
	url    string
	client *httpx.Client
}

func NewRemoteProvider(url string, client *httpx.Client) *RemoteProvider {
	return &RemoteProvider{url: url, client: client}
}

func (p *RemoteProvider) Name() string { return "remote" }

func (p *RemoteProvider) Send(ctx context.Context, input *Input) error {
	payload := remoteRequest{
		Action:         "emailPDF",
		PDFData:        "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(input.PDF),
		LeadEmail:      input.RecipientEmail,
		UserName:       input.UserName,
		CompanyName:    input.CompanyName,
		TotalLoss:      input.TotalLoss,
		LeakagePercent: input.LeakagePercent,
		Industry:       input.Industry,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.DoWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("post to delivery endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delivery endpoint returned status %d", resp.StatusCode)
	}

	var result remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode delivery response: %w", err)
	}
	if !result.Success {
		if result.Error != "" {
			return fmt.Errorf("delivery endpoint rejected send: %s", result.Error)
		}
		return fmt.Errorf("delivery endpoint rejected send")
	}
	return nil
}
