// Package handlers contains the HTTP handlers for the govproxy service:
// the dashboard bootstrap aggregator, the Gemini relay, and the Koios
// passthrough endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/voltaire-systems/govproxy/internal/metrics"
	"github.com/voltaire-systems/govproxy/internal/upstream"
	"github.com/voltaire-systems/govproxy/pkg/httputil"
	"github.com/voltaire-systems/govproxy/pkg/logging"
)

// BootstrapSources holds the three fixed upstream locations the dashboard
// needs on initial load.
type BootstrapSources struct {
	SPOCSVURL       string
	DRepJSONURL     string
	ProposalListURL string
	PageLimit       int
}

// BootstrapHandler aggregates the dashboard's three independent data
// sources into a single response. The payload is all-or-nothing: if any
// fetch fails the caller gets one error and no partial fields.
type BootstrapHandler struct {
	sources BootstrapSources
	client  *upstream.Client
	logger  *logging.Logger
}

// NewBootstrapHandler creates the aggregation handler.
func NewBootstrapHandler(sources BootstrapSources, client *upstream.Client, logger *logging.Logger) *BootstrapHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BootstrapHandler{
		sources: sources,
		client:  client,
		logger:  logger,
	}
}

// bootstrapResponse is the combined dashboard payload. The CSV stays raw
// text and the JSON documents stay raw messages; the client parses them.
type bootstrapResponse struct {
	SPODataCSV   string          `json:"spoDataCsv"`
	DRepData     json.RawMessage `json:"drepData"`
	ProposalList json.RawMessage `json:"proposalList"`
}

type bootstrapError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Handle fans out the three upstream fetches and joins on the first
// failure. Every method is served the same way; the endpoint is
// read-only, so no method gate is needed (OPTIONS preflight is answered
// by the CORS middleware before this runs).
func (h *BootstrapHandler) Handle(w http.ResponseWriter, r *http.Request) {
	g, ctx := errgroup.WithContext(r.Context())

	var (
		spoCSV       string
		drepData     json.RawMessage
		proposalList json.RawMessage
	)

	g.Go(func() error {
		var err error
		spoCSV, err = h.client.FetchText(ctx, h.sources.SPOCSVURL)
		return err
	})
	g.Go(func() error {
		var err error
		drepData, err = h.client.FetchJSON(ctx, h.sources.DRepJSONURL)
		return err
	})
	g.Go(func() error {
		var err error
		proposalList, err = h.client.FetchJSONPaginated(ctx, h.sources.ProposalListURL, h.sources.PageLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		metrics.BootstrapRequestsTotal.WithLabelValues("error").Inc()
		h.logger.ErrorContext(ctx, "bootstrap aggregation failed", logging.Error(err))
		httputil.WriteJSON(w, http.StatusInternalServerError, bootstrapError{
			Error:   "Failed to fetch governance data",
			Details: err.Error(),
		})
		return
	}

	metrics.BootstrapRequestsTotal.WithLabelValues("ok").Inc()
	httputil.WriteJSON(w, http.StatusOK, bootstrapResponse{
		SPODataCSV:   spoCSV,
		DRepData:     drepData,
		ProposalList: proposalList,
	})
}
