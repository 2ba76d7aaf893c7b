// Package gateway is the relay between browser-facing clients and the
// scoring endpoint. It adds CORS headers, stamps the caller's IP and a
// cluster id onto every forwarded request, and shields clients from
// upstream transport failures.
package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"leak-diagnostic/internal/common/config"
	"leak-diagnostic/internal/common/httpx"
	"leak-diagnostic/internal/common/logger"
)

const defaultClusterID = "C0"

type Handler struct {
	upstreamURL string
	clusterID   string
	client      *httpx.Client
	log         logger.Logger
}

func NewHandler(cfg config.GatewayConfig, client *httpx.Client, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	clusterID := cfg.ClusterID
	if clusterID == "" {
		clusterID = defaultClusterID
	}
	return &Handler{
		upstreamURL: cfg.UpstreamURL,
		clusterID:   clusterID,
		client:      client,
		log:         log,
	}
}

// Router mounts the relay on a single catch-all route. Preflight requests
// never reach the upstream.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Get("/*", h.relayGet)
	r.Post("/*", h.relayPost)
	r.Options("/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the real caller address behind the CDN: the CDN's
// connecting-IP header wins, then the first forwarded-for entry, then the
// socket peer.
func clientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) relayGet(w http.ResponseWriter, r *http.Request) {
	params := url.Values{}
	for key, values := range r.URL.Query() {
		for _, v := range values {
			params.Add(key, v)
		}
	}

	switch params.Get("action") {
	case "calculateLeakage":
		params.Set("ipAddress", clientIP(r))
		if params.Get("cluster_id") == "" {
			params.Set("cluster_id", h.clusterID)
		}
	case "getReportData":
		// Pass-through; the scoring endpoint resolves the session itself.
	}

	req, err := http.NewRequest(http.MethodGet, h.upstreamURL+"?"+params.Encode(), nil)
	if err != nil {
		h.writeRelayError(w, err)
		return
	}
	h.forward(w, r, req)
}

func (h *Handler) relayPost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeRelayError(w, err)
		return
	}

	contentType := r.Header.Get("Content-Type")
	forwarded := body

	// JSON bodies get the caller IP and cluster id stamped in. Anything
	// else is forwarded byte for byte.
	var payload map[string]interface{}
	if json.Unmarshal(body, &payload) == nil && payload != nil {
		payload["ipAddress"] = clientIP(r)
		if _, ok := payload["cluster_id"]; !ok {
			payload["cluster_id"] = h.clusterID
		}
		if augmented, err := json.Marshal(payload); err == nil {
			forwarded = augmented
			contentType = "application/json"
		}
	}

	req, err := http.NewRequest(http.MethodPost, h.upstreamURL, bytes.NewReader(forwarded))
	if err != nil {
		h.writeRelayError(w, err)
		return
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	h.forward(w, r, req)
}

func (h *Handler) forward(w http.ResponseWriter, r *http.Request, req *http.Request) {
	resp, err := h.client.DoWithContext(r.Context(), req)
	if err != nil {
		h.log.WithError(err).Warn("upstream unreachable", map[string]interface{}{
			"upstream": h.upstreamURL,
		})
		h.writeRelayError(w, err)
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.log.WithError(err).Warn("upstream response copy interrupted", map[string]interface{}{
			"upstream": h.upstreamURL,
			"status":   resp.StatusCode,
		})
	}
}

// writeRelayError reports a transport failure in the same envelope the
// upstream uses, so clients need only one error path.
func (h *Handler) writeRelayError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   fmt.Sprintf("relay network error: %s", err.Error()),
	})
}
