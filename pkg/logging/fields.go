package logging

import "log/slog"

// Common field names for consistent logging across handlers.
const (
	FieldService  = "service"
	FieldMethod   = "method"
	FieldPath     = "path"
	FieldStatus   = "status"
	FieldDuration = "duration_ms"
	FieldError    = "error"
	FieldUpstream = "upstream"
	FieldModel    = "model"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// Method returns a slog attribute for the HTTP method.
func Method(method string) slog.Attr {
	return slog.String(FieldMethod, method)
}

// Path returns a slog attribute for the HTTP path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Status returns a slog attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}

// Upstream returns a slog attribute for an upstream URL or name.
func Upstream(url string) slog.Attr {
	return slog.String(FieldUpstream, url)
}

// Model returns a slog attribute for a generative model name.
func Model(name string) slog.Attr {
	return slog.String(FieldModel, name)
}
