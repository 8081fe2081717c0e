package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyTemplate    = "template"
	KeyPath        = "path"
	KeyRoot        = "root"
	KeySource      = "source"
	KeyDestination = "destination"
	KeyCount       = "count"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Template(id string) slog.Attr    { return slog.String(KeyTemplate, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Root(r string) slog.Attr         { return slog.String(KeyRoot, r) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func Destination(d string) slog.Attr  { return slog.String(KeyDestination, d) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
