package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyLang       = "lang"
	KeyPath       = "path"
	KeyRoot       = "root"
	KeyFilename   = "filename"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyMissID     = "miss_id"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Lang(l string) slog.Attr         { return slog.String(KeyLang, l) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Root(r string) slog.Attr         { return slog.String(KeyRoot, r) }
func Filename(f string) slog.Attr     { return slog.String(KeyFilename, f) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func MissID(id string) slog.Attr      { return slog.String(KeyMissID, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
