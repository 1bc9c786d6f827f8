package scoring

import (
	"errors"

	"fatiguelens/internal/models"
)

// ErrUnavailable reports that the scoring model cannot be invoked, typically
// because the artifact was never loaded. Callers translate it into a generic
// server-side failure; no partial result may be cached or audited after it.
var ErrUnavailable = errors.New("scoring: model unavailable")

// Oracle converts a telemetry record into a continuous fatigue score. The
// service treats it as opaque and deterministic for fixed input.
type Oracle interface {
	Score(rec models.TelemetryRecord) (float64, error)
}
