package handlers

import (
	"net/http"

	"github.com/voltaire-systems/govproxy/internal/upstream"
	"github.com/voltaire-systems/govproxy/pkg/httputil"
	"github.com/voltaire-systems/govproxy/pkg/logging"
)

// PassthroughHandler serves a single fixed upstream JSON document
// verbatim. Used for the treasury and committee views, which need no
// aggregation.
type PassthroughHandler struct {
	name   string
	url    string
	client *upstream.Client
	logger *logging.Logger
}

// NewTreasuryHandler serves the latest Koios epoch totals, which carry
// the current treasury balance.
func NewTreasuryHandler(koiosBaseURL string, client *upstream.Client, logger *logging.Logger) *PassthroughHandler {
	return newPassthroughHandler("treasury", koiosBaseURL+"/totals?order=epoch_no.desc&limit=1", client, logger)
}

// NewCommitteeHandler serves the constitutional committee state.
func NewCommitteeHandler(koiosBaseURL string, client *upstream.Client, logger *logging.Logger) *PassthroughHandler {
	return newPassthroughHandler("committee", koiosBaseURL+"/committee_info", client, logger)
}

func newPassthroughHandler(name, url string, client *upstream.Client, logger *logging.Logger) *PassthroughHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &PassthroughHandler{name: name, url: url, client: client, logger: logger}
}

// Handle fetches the document and forwards it untouched.
func (h *PassthroughHandler) Handle(w http.ResponseWriter, r *http.Request) {
	data, err := h.client.FetchJSON(r.Context(), h.url)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "passthrough fetch failed",
			logging.Upstream(h.url),
			logging.Error(err),
		)
		httputil.WriteJSON(w, http.StatusBadGateway, map[string]string{
			"error":   "Failed to fetch " + h.name + " data",
			"details": err.Error(),
		})
		return
	}
	httputil.WriteRawJSON(w, http.StatusOK, data)
}
