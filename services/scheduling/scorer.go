package scheduling

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"pawfolio/models"
	"pawfolio/utils"
)

// maxRecommendations caps the ranked list handed back to the caller.
const maxRecommendations = 5

// Local fallback weights. The ceiling of each term mirrors the remote
// model so fallback scores stay comparable.
const (
	ratingWeight     = 8.0 // rating 0-5, max 40 points
	experienceWeight = 0.5 // per completed booking
	maxExperiencePts = 30.0
	locationDataPts  = 15.0
	activePts        = 8.0
	petTypeMatchPts  = 10.0
)

// DefaultSitterScorer ranks candidates by delegating feature scoring to
// the remote service, falling back to a local fixed-weight model per
// candidate when the remote call fails. One candidate's remote failure
// never blocks the others.
type DefaultSitterScorer struct {
	Remote RemoteScorer
}

// scoredCandidate pairs a recommendation with how it was produced, so
// degraded-mode operation stays observable.
type scoredCandidate struct {
	rec      models.Recommendation
	fellBack bool
	cause    error
}

func (s *DefaultSitterScorer) Score(ctx context.Context, booking *models.Booking, candidates []models.SitterCandidate) ([]models.Recommendation, error) {
	logger := utils.GetLogger()

	eligible := make([]models.SitterCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.IsActive {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	resultsCh := make(chan scoredCandidate, len(eligible))
	var wg sync.WaitGroup

	for _, cand := range eligible {
		wg.Add(1)
		go func(cand models.SitterCandidate) {
			defer wg.Done()
			resultsCh <- s.scoreOne(ctx, booking, cand)
		}(cand)
	}

	wg.Wait()
	close(resultsCh)

	var scored []scoredCandidate
	for sc := range resultsCh {
		if sc.fellBack {
			logger.Warn("remote scorer failed for candidate, used local fallback",
				zap.String("sitterID", sc.rec.SitterID),
				zap.Error(sc.cause))
		}
		scored = append(scored, sc)
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].rec.Score != scored[j].rec.Score {
			return scored[i].rec.Score > scored[j].rec.Score
		}
		return scored[i].rec.SitterID < scored[j].rec.SitterID
	})
	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}

	recs := make([]models.Recommendation, len(scored))
	for i, sc := range scored {
		recs[i] = sc.rec
	}
	return recs, nil
}

func (s *DefaultSitterScorer) scoreOne(ctx context.Context, booking *models.Booking, cand models.SitterCandidate) scoredCandidate {
	matched, required := petTypeOverlap(booking.PetTypes, cand.PetTypes)
	features := CandidateFeatures{
		SitterID:         cand.ID,
		Rating:           cand.Rating,
		TotalBookings:    cand.TotalBookings,
		HasLocationData:  cand.HasLocationData,
		IsActive:         cand.IsActive,
		Preferred:        cand.Preferred,
		MatchedPetTypes:  matched,
		RequiredPetTypes: required,
		ServiceType:      booking.ServiceType,
	}

	if s.Remote != nil {
		rec, err := s.Remote.ScoreCandidate(ctx, features)
		if err == nil {
			return scoredCandidate{rec: *rec}
		}
		return scoredCandidate{rec: localScore(cand, matched, required), fellBack: true, cause: err}
	}
	return scoredCandidate{rec: localScore(cand, matched, required)}
}

// localScore is the deterministic fallback model.
func localScore(cand models.SitterCandidate, matchedTypes, requiredTypes int) models.Recommendation {
	rating := cand.Rating
	if rating > 5 {
		rating = 5
	}
	if rating < 0 {
		rating = 0
	}

	score := rating * ratingWeight
	experience := float64(cand.TotalBookings) * experienceWeight
	if experience > maxExperiencePts {
		experience = maxExperiencePts
	}
	score += experience

	var reasons []string
	if rating >= 4 {
		reasons = append(reasons, fmt.Sprintf("Highly rated (%.1f stars)", rating))
	}
	if cand.TotalBookings >= 20 {
		reasons = append(reasons, fmt.Sprintf("Experienced (%d completed bookings)", cand.TotalBookings))
	}
	if cand.HasLocationData {
		score += locationDataPts
		reasons = append(reasons, "Location known, travel time can be estimated")
	}
	if cand.IsActive {
		score += activePts
		reasons = append(reasons, "Active and available")
	}
	if requiredTypes > 0 {
		fraction := float64(matchedTypes) / float64(requiredTypes)
		score += fraction * petTypeMatchPts
		if matchedTypes == requiredTypes {
			reasons = append(reasons, "Handles all required pet types")
		} else if matchedTypes > 0 {
			reasons = append(reasons, fmt.Sprintf("Handles %d of %d required pet types", matchedTypes, requiredTypes))
		}
	}

	rounded := int(math.Round(score))
	if rounded > 100 {
		rounded = 100
	}
	if rounded < 0 {
		rounded = 0
	}

	return models.Recommendation{
		SitterID:   cand.ID,
		Score:      rounded,
		Confidence: models.ConfidenceForScore(rounded),
		Reasons:    reasons,
	}
}

// petTypeOverlap counts how many of the booking's pet types the
// candidate covers.
func petTypeOverlap(required, offered []string) (matched, total int) {
	total = len(required)
	if total == 0 {
		return 0, 0
	}
	covered := make(map[string]bool, len(offered))
	for _, t := range offered {
		covered[t] = true
	}
	for _, t := range required {
		if covered[t] {
			matched++
		}
	}
	return matched, total
}
