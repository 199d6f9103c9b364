package handlers

import (
	"net/http"

	"github.com/voltaire-systems/govproxy/pkg/httputil"
)

// HealthCheck reports liveness. The service holds no state, so being up
// is the whole story.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "govproxy",
	})
}
