package middleware

import (
	"net/http"
	"strings"
)

// CORSConfig holds CORS middleware configuration.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// PreflightStatus is the status code returned for OPTIONS preflight
	// requests. Defaults to 204 when zero.
	PreflightStatus int
}

// CORS returns a middleware that handles Cross-Origin Resource Sharing.
// When AllowedOrigins contains "*" the wildcard is sent on every response,
// including error responses produced by the wrapped handler. Preflight
// OPTIONS requests are answered directly with PreflightStatus and an
// empty body.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	allowedMethods := strings.Join(config.AllowedMethods, ", ")
	allowedHeaders := strings.Join(config.AllowedHeaders, ", ")

	preflightStatus := config.PreflightStatus
	if preflightStatus == 0 {
		preflightStatus = http.StatusNoContent
	}

	wildcard := false
	for _, allowed := range config.AllowedOrigins {
		if allowed == "*" {
			wildcard = true
			break
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if wildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin := r.Header.Get("Origin"); origin != "" {
				for _, allowed := range config.AllowedOrigins {
					if matchOrigin(origin, allowed) {
						w.Header().Set("Access-Control-Allow-Origin", origin)
						break
					}
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == http.MethodOptions {
				w.WriteHeader(preflightStatus)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// matchOrigin reports whether origin is covered by the allowed pattern.
// Patterns of the form "*.example.com" match any subdomain.
func matchOrigin(origin, allowed string) bool {
	if strings.HasPrefix(allowed, "*.") {
		return strings.HasSuffix(origin, strings.TrimPrefix(allowed, "*"))
	}
	return origin == allowed
}
