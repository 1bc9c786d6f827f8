package models

import "time"

// Prediction is the outcome of one scoring request. Immutable once produced.
type Prediction struct {
	Score           float64   `json:"score"`
	Category        string    `json:"category"`
	Recommendations []string  `json:"recommendations"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// Snapshot pairs a prediction with the input that produced it. The last
// snapshot is what the GET fallback serves.
type Snapshot struct {
	Input  TelemetryRecord `json:"input"`
	Output Prediction      `json:"output"`
}
