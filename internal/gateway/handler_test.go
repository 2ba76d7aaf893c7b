package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leak-diagnostic/internal/common/config"
	"leak-diagnostic/internal/common/httpx"
	"leak-diagnostic/internal/common/logger"
)

type upstreamCapture struct {
	method string
	query  map[string]string
	body   []byte
}

func newRelay(t *testing.T, upstream *httptest.Server, clusterID string) http.Handler {
	t.Helper()
	cfg := config.GatewayConfig{
		UpstreamURL: upstream.URL,
		ClusterID:   clusterID,
	}
	h := NewHandler(cfg, httpx.NewClient(5*time.Second), logger.NewTestLogger(t))
	return h.Router()
}

func captureUpstream(t *testing.T, capture *upstreamCapture, respond string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capture.method = r.Method
		capture.query = map[string]string{}
		for key := range r.URL.Query() {
			capture.query[key] = r.URL.Query().Get(key)
		}
		capture.body, _ = json.Marshal(decodeBody(r))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(respond))
	}))
}

func decodeBody(r *http.Request) map[string]interface{} {
	var m map[string]interface{}
	json.NewDecoder(r.Body).Decode(&m)
	return m
}

func TestRelayGetStampsIPAndCluster(t *testing.T) {
	var capture upstreamCapture
	upstream := captureUpstream(t, &capture, `{"ok":true}`)
	defer upstream.Close()

	relay := newRelay(t, upstream, "C7")

	req := httptest.NewRequest(http.MethodGet, "/?action=calculateLeakage&industry=Retail", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.9")
	rec := httptest.NewRecorder()
	relay.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "203.0.113.9", capture.query["ipAddress"])
	assert.Equal(t, "C7", capture.query["cluster_id"])
	assert.Equal(t, "Retail", capture.query["industry"])
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRelayClientIPPrecedence(t *testing.T) {
	var capture upstreamCapture
	upstream := captureUpstream(t, &capture, `{}`)
	defer upstream.Close()
	relay := newRelay(t, upstream, "")

	// Forwarded-for chain: first hop wins when the CDN header is absent.
	req := httptest.NewRequest(http.MethodGet, "/?action=calculateLeakage", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	relay.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "198.51.100.7", capture.query["ipAddress"])

	// CDN header beats forwarded-for.
	req = httptest.NewRequest(http.MethodGet, "/?action=calculateLeakage", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.9")
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	relay.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.9", capture.query["ipAddress"])

	// Socket peer is the last resort.
	req = httptest.NewRequest(http.MethodGet, "/?action=calculateLeakage", nil)
	req.RemoteAddr = "192.0.2.4:51234"
	relay.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.0.2.4", capture.query["ipAddress"])
}

func TestRelayClusterIDDefault(t *testing.T) {
	var capture upstreamCapture
	upstream := captureUpstream(t, &capture, `{}`)
	defer upstream.Close()
	relay := newRelay(t, upstream, "")

	req := httptest.NewRequest(http.MethodGet, "/?action=calculateLeakage", nil)
	relay.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "C0", capture.query["cluster_id"])

	// A caller-supplied cluster id is forwarded untouched.
	req = httptest.NewRequest(http.MethodGet, "/?action=calculateLeakage&cluster_id=C9", nil)
	relay.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "C9", capture.query["cluster_id"])
}

func TestRelayGetReportDataPassthrough(t *testing.T) {
	var capture upstreamCapture
	upstream := captureUpstream(t, &capture, `{"report":{}}`)
	defer upstream.Close()
	relay := newRelay(t, upstream, "")

	req := httptest.NewRequest(http.MethodGet, "/?action=getReportData&sessionId=session_1_abc", nil)
	rec := httptest.NewRecorder()
	relay.ServeHTTP(rec, req)

	assert.Equal(t, "getReportData", capture.query["action"])
	assert.Equal(t, "session_1_abc", capture.query["sessionId"])
	assert.Empty(t, capture.query["ipAddress"], "report fetches are not stamped")
}

func TestRelayPostAugmentsJSON(t *testing.T) {
	var capture upstreamCapture
	upstream := captureUpstream(t, &capture, `{"success":true}`)
	defer upstream.Close()
	relay := newRelay(t, upstream, "C2")

	payload, _ := json.Marshal(map[string]interface{}{"action": "emailPDF", "leadEmail": "dana@acme.com"})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("CF-Connecting-IP", "203.0.113.9")
	rec := httptest.NewRecorder()
	relay.ServeHTTP(rec, req)

	var forwarded map[string]interface{}
	require.NoError(t, json.Unmarshal(capture.body, &forwarded))
	assert.Equal(t, "emailPDF", forwarded["action"])
	assert.Equal(t, "203.0.113.9", forwarded["ipAddress"])
	assert.Equal(t, "C2", forwarded["cluster_id"])
}

func TestRelayPostForwardsNonJSONUntouched(t *testing.T) {
	var raw []byte
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		raw = buf.Bytes()
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()
	relay := newRelay(t, upstream, "")

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("plain text payload")))
	req.Header.Set("Content-Type", "text/plain")
	relay.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "plain text payload", string(raw))
}

func TestRelayPreflightShortCircuits(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the upstream")
	}))
	defer upstream.Close()
	relay := newRelay(t, upstream, "")

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	relay.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestRelayUpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()
	relay := newRelay(t, upstream, "")

	req := httptest.NewRequest(http.MethodGet, "/?action=calculateLeakage", nil)
	rec := httptest.NewRecorder()
	relay.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "relay network error")
}

func TestRelayTruncatedUpstreamBody(t *testing.T) {
	// Upstream promises more bytes than it delivers; the relay must hand
	// back what arrived and carry on serving.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte(`{"partial":`))
	}))
	defer upstream.Close()
	relay := newRelay(t, upstream, "")

	req := httptest.NewRequest(http.MethodGet, "/?action=calculateLeakage", nil)
	rec := httptest.NewRecorder()
	relay.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `{"partial":`)

	// The relay stays healthy for the next request.
	var capture upstreamCapture
	healthy := captureUpstream(t, &capture, `{"ok":true}`)
	defer healthy.Close()
	relay = newRelay(t, healthy, "")
	rec = httptest.NewRecorder()
	relay.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?action=calculateLeakage", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRelayCopiesUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"error":"odd"}`))
	}))
	defer upstream.Close()
	relay := newRelay(t, upstream, "")

	req := httptest.NewRequest(http.MethodGet, "/?action=anything", nil)
	rec := httptest.NewRecorder()
	relay.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
