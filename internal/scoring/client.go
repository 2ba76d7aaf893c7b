// Package scoring submits accumulated responses to the remote leakage
// scoring service and returns the scored breakdown.
package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"leak-diagnostic/internal/common/errors"
	"leak-diagnostic/internal/common/httpx"
	"leak-diagnostic/internal/common/logger"
	"leak-diagnostic/internal/common/metrics"
	"leak-diagnostic/internal/models"
)

// Request carries everything the calculateLeakage action needs.
type Request struct {
	Industry  string
	Revenue   float64
	SessionID string
	Responses []models.Response
	Name      string
	Company   string
	Email     string
}

// Client calls the scoring service through the relay gateway. It performs
// no retries: the remote computation is assumed expensive, so failures are
// surfaced for a user-initiated retry.
type Client struct {
	baseURL string
	client  *httpx.Client
	log     logger.Logger
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	Logger  logger.Logger
}

func NewClient(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: opts.BaseURL,
		client:  httpx.NewClient(timeout),
		log:     log,
	}
}

// Score submits the assessment and returns the Result. An error payload
// embedded in a transport-successful response is a scoring service error,
// not a network failure.
func (c *Client) Score(ctx context.Context, req Request) (*models.Result, error) {
	responsesJSON, err := json.Marshal(req.Responses)
	if err != nil {
		return nil, errors.NewNetworkError("scoring service", err)
	}

	params := url.Values{}
	params.Set("action", "calculateLeakage")
	params.Set("industry", req.Industry)
	params.Set("revenue", strconv.FormatFloat(req.Revenue, 'f', -1, 64))
	params.Set("sessionId", req.SessionID)
	params.Set("responses", string(responsesJSON))
	params.Set("name", req.Name)
	params.Set("company", req.Company)
	params.Set("email", req.Email)

	httpReq, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.NewNetworkError("scoring service", err)
	}

	start := time.Now()
	resp, err := c.client.DoWithContext(ctx, httpReq)
	metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ScoringRequests.WithLabelValues("network_error").Inc()
		return nil, errors.NewNetworkError("scoring service", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ScoringRequests.WithLabelValues("network_error").Inc()
		return nil, errors.NewNetworkError("scoring service", err)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.ScoringRequests.WithLabelValues("network_error").Inc()
		return nil, errors.NewNetworkError("scoring service", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	result, err := ParseResult(body)
	if err != nil {
		metrics.ScoringRequests.WithLabelValues("service_error").Inc()
		return nil, err
	}

	metrics.ScoringRequests.WithLabelValues("ok").Inc()
	c.log.Info("scoring completed", map[string]interface{}{
		"sessionId":           req.SessionID,
		"industry":            result.Industry,
		"totalLeakagePercent": result.TotalLeakagePercent,
	})
	return result, nil
}
