package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voltaire-systems/govproxy/internal/metrics"
	"github.com/voltaire-systems/govproxy/pkg/httputil"
	"github.com/voltaire-systems/govproxy/pkg/logging"
)

const defaultGeminiTimeout = 60 * time.Second

// GeminiHandler relays vetted client requests to the Gemini
// generateContent endpoint, attaching the server-held API key as a query
// parameter. The key never appears in responses or client-visible errors.
type GeminiHandler struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewGeminiHandler creates the relay handler. The API key is passed in
// explicitly so the handler never reads ambient state; an empty key is
// reported as a server configuration error at request time.
func NewGeminiHandler(apiKey, baseURL, model string, timeout time.Duration, logger *logging.Logger) *GeminiHandler {
	if timeout <= 0 {
		timeout = defaultGeminiTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &GeminiHandler{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Generate validates the inbound request and forwards it. The steps run
// strictly in order; each failure terminates the request with a
// structured JSON error body.
func (h *GeminiHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		metrics.RelayRequestsTotal.WithLabelValues("method_not_allowed").Inc()
		httputil.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || !hasContents(body) {
		metrics.RelayRequestsTotal.WithLabelValues("invalid_body").Inc()
		httputil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.apiKey == "" {
		metrics.RelayRequestsTotal.WithLabelValues("no_api_key").Inc()
		h.logger.ErrorContext(ctx, "gemini relay invoked without a configured API key")
		httputil.WriteError(w, http.StatusInternalServerError, "API key not configured on the server.")
		return
	}

	// The key travels only in the outbound query string. Transport
	// errors echo the request URL, so anything logged below goes
	// through redact first.
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", h.baseURL, h.model, h.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues("network_error").Inc()
		h.logger.ErrorContext(ctx, "failed to build gemini request", logging.Model(h.model), "error", h.redact(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to fetch from Gemini API.")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues("network_error").Inc()
		h.logger.ErrorContext(ctx, "gemini request failed", logging.Model(h.model), "error", h.redact(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to fetch from Gemini API.")
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	metrics.RelayUpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues("network_error").Inc()
		h.logger.ErrorContext(ctx, "failed to read gemini response", logging.Model(h.model), "error", h.redact(err))
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to fetch from Gemini API.")
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RelayRequestsTotal.WithLabelValues("upstream_error").Inc()
		h.logger.ErrorContext(ctx, "gemini returned an error",
			logging.Model(h.model),
			logging.Status(resp.StatusCode),
			"upstream_body", string(respBody),
		)
		httputil.WriteError(w, resp.StatusCode, "Gemini API error: "+string(respBody))
		return
	}

	if !json.Valid(respBody) {
		metrics.RelayRequestsTotal.WithLabelValues("upstream_error").Inc()
		h.logger.ErrorContext(ctx, "gemini returned a non-JSON success body", logging.Model(h.model))
		httputil.WriteError(w, http.StatusInternalServerError, "Failed to fetch from Gemini API.")
		return
	}

	metrics.RelayRequestsTotal.WithLabelValues("ok").Inc()
	httputil.WriteRawJSON(w, http.StatusOK, respBody)
}

// redact strips the API key from error text before it reaches logs.
// Transport errors embed the full request URL, query string included.
func (h *GeminiHandler) redact(err error) string {
	return strings.ReplaceAll(err.Error(), h.apiKey, "[REDACTED]")
}

// hasContents reports whether body is a JSON object with a non-empty
// "contents" field. Falsy values (null, empty string, 0, false) are
// rejected; anything else, an empty array included, passes. Other
// fields are not inspected; the envelope is forwarded verbatim.
func hasContents(body []byte) bool {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return false
	}
	contents, ok := envelope["contents"]
	if !ok {
		return false
	}
	switch string(bytes.TrimSpace(contents)) {
	case "", "null", `""`, "0", "false":
		return false
	}
	return true
}
