package services

import (
	"strconv"

	log "github.com/sirupsen/logrus"

	"model-deploy-service/internal/classifier"
	"model-deploy-service/internal/core/domain"
)

// ScoringService holds the classifier loaded once at process start and
// scores base64-encoded image batches against it.
type ScoringService struct {
	model *classifier.Model
}

func NewScoringService(model *classifier.Model) *ScoringService {
	return &ScoringService{model: model}
}

// ModelName returns the name of the loaded model, for health reporting.
func (s *ScoringService) ModelName() string {
	if s.model == nil {
		return ""
	}
	return s.model.Name
}

// Run scores each payload entry and returns exactly one result per entry, in
// input order. Per-item failures become entries whose label is the error
// text and whose probability is empty; they never abort the batch.
func (s *ScoringService) Run(data []string) ([]domain.ScoreResult, error) {
	if s.model == nil {
		return nil, domain.ErrScoringModelNotLoaded
	}
	if len(data) == 0 {
		return nil, domain.ErrEmptyScoringBatch
	}

	results := make([]domain.ScoreResult, 0, len(data))
	for i, payload := range data {
		img, err := classifier.DecodeBase64Image(payload)
		if err != nil {
			log.WithError(err).WithField("item", i).Warn("scoring item rejected")
			results = append(results, domain.ScoreResult{Label: err.Error()})
			continue
		}

		label, prob, err := s.model.Predict(img)
		if err != nil {
			log.WithError(err).WithField("item", i).Warn("scoring item failed")
			results = append(results, domain.ScoreResult{Label: err.Error()})
			continue
		}

		results = append(results, domain.ScoreResult{
			Label:       label,
			Probability: strconv.FormatFloat(prob, 'f', 4, 64),
		})
	}
	return results, nil
}
