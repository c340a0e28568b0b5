package models

import "time"

// Resolution is the outcome of resolving one free-text query.
type Resolution struct {
	Answer     string  `json:"answer"`
	Label      int     `json:"label"`
	Confidence float64 `json:"confidence"` // normalized posterior (0-1)
}

// TrainStats contains statistics from a training run.
type TrainStats struct {
	Cases      int `json:"cases"`
	Pairs      int `json:"pairs"`
	Answers    int `json:"answers"`
	Vocabulary int `json:"vocabulary"`
	DurationMs int `json:"duration_ms"`
}

// Manifest describes a persisted artifact set. A resolver is valid only for
// the report content hash recorded here; any change requires a full retrain.
type Manifest struct {
	ReportSHA256 string    `json:"report_sha256"`
	TrainedAt    time.Time `json:"trained_at"`
	Backend      string    `json:"backend"` // "bayes" or "semantic"
	Cases        int       `json:"cases"`
	Pairs        int       `json:"pairs"`
	Answers      int       `json:"answers"`
	Vocabulary   int       `json:"vocabulary"`
	LastRun      time.Time `json:"last_run,omitempty"`
}
