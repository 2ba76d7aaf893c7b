package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leak-diagnostic/internal/common/httpx"
)

func TestRemoteProviderSend(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	p := NewRemoteProvider(server.URL, httpx.NewClient(5*time.Second))
	require.NoError(t, p.Send(context.Background(), validInput()))

	assert.Equal(t, "emailPDF", received["action"])
	assert.Equal(t, "dana@acme.com", received["leadEmail"])
	assert.Equal(t, "Dana", received["userName"])
	assert.Equal(t, "Acme", received["companyName"])
	assert.Equal(t, 1_103_000.0, received["totalLoss"])
	assert.Equal(t, 11.0, received["leakagePercent"])
	assert.Equal(t, "Consulting", received["industry"])
	assert.True(t, strings.HasPrefix(received["pdfData"].(string), "data:application/pdf;base64,"))
}

func TestRemoteProviderRejectedSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "mailer down"})
	}))
	defer server.Close()

	p := NewRemoteProvider(server.URL, httpx.NewClient(5*time.Second))
	err := p.Send(context.Background(), validInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mailer down")
}

func TestRemoteProviderBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	p := NewRemoteProvider(server.URL, httpx.NewClient(5*time.Second))
	err := p.Send(context.Background(), validInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestRemoteProviderUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	p := NewRemoteProvider(server.URL, httpx.NewClient(time.Second))
	assert.Error(t, p.Send(context.Background(), validInput()))
}

func TestBuildMIMEMessage(t *testing.T) {
	raw := string(buildMIMEMessage("reports@example.com", validInput()))

	assert.Contains(t, raw, "From: reports@example.com\r\n")
	assert.Contains(t, raw, "To: dana@acme.com\r\n")
	assert.Contains(t, raw, "Content-Type: multipart/mixed;")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, raw, "Content-Type: application/pdf")
	assert.Contains(t, raw, `filename="profit-leak-report-acme.pdf"`)
	assert.True(t, strings.HasSuffix(raw, "--leak-report-boundary--\r\n"))
}
