package models

// Confidence is the coarse quality bucket of a recommendation score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceForScore buckets a 0-100 score.
func ConfidenceForScore(score int) Confidence {
	switch {
	case score >= 80:
		return ConfidenceHigh
	case score >= 60:
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// Recommendation ranks one sitter candidate for one booking. It is
// ephemeral: recomputed on demand and never persisted.
type Recommendation struct {
	SitterID   string     `json:"sitterId"`
	Score      int        `json:"score"` // 0-100
	Confidence Confidence `json:"confidence"`
	Reasons    []string   `json:"reasons"`
}
