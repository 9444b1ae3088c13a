package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pawfolio/models"
)

// CandidateFeatures is the per-candidate feature vector handed to the
// remote scoring service.
type CandidateFeatures struct {
	SitterID         string  `json:"sitterId"`
	Rating           float64 `json:"rating"`
	TotalBookings    int     `json:"totalBookings"`
	HasLocationData  bool    `json:"hasLocationData"`
	IsActive         bool    `json:"isActive"`
	Preferred        bool    `json:"preferred"`
	MatchedPetTypes  int     `json:"matchedPetTypes"`
	RequiredPetTypes int     `json:"requiredPetTypes"`
	ServiceType      string  `json:"serviceType"`
}

// HTTPScoringClient calls the remote scoring service over HTTP.
type HTTPScoringClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPScoringClient builds a client with the given endpoint and
// per-call timeout.
func NewHTTPScoringClient(baseURL string, timeout time.Duration) *HTTPScoringClient {
	return &HTTPScoringClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type remoteScoreResponse struct {
	Score      int               `json:"score"`
	Reasons    []string          `json:"reasons"`
	Confidence models.Confidence `json:"confidence"`
}

// ScoreCandidate posts one candidate's features and returns the remote
// verdict. Any transport or protocol failure is reported as
// DependencyUnavailableError so the caller can fall back locally.
func (c *HTTPScoringClient) ScoreCandidate(ctx context.Context, features CandidateFeatures) (*models.Recommendation, error) {
	if c.BaseURL == "" {
		return nil, DependencyUnavailableError{Dependency: "remote scorer", Err: fmt.Errorf("no scorer endpoint configured")}
	}

	body, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("marshal candidate features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build scorer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, DependencyUnavailableError{Dependency: "remote scorer", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, DependencyUnavailableError{
			Dependency: "remote scorer",
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var parsed remoteScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, DependencyUnavailableError{Dependency: "remote scorer", Err: fmt.Errorf("decode response: %w", err)}
	}

	if parsed.Score < 0 {
		parsed.Score = 0
	}
	if parsed.Score > 100 {
		parsed.Score = 100
	}
	if parsed.Confidence == "" {
		parsed.Confidence = models.ConfidenceForScore(parsed.Score)
	}

	return &models.Recommendation{
		SitterID:   features.SitterID,
		Score:      parsed.Score,
		Confidence: parsed.Confidence,
		Reasons:    parsed.Reasons,
	}, nil
}
