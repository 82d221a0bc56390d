package analysis

import (
	"fmt"

	"github.com/drankou/go-vader/vader"
)

// VaderScorer scores sentences with the VADER sentiment lexicon. The
// compound score is already normalized to [-1.0, 1.0].
type VaderScorer struct {
	analyzer vader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates a scorer with the default embedded lexicon
func NewVaderScorer() (*VaderScorer, error) {
	scorer := &VaderScorer{}
	if err := scorer.analyzer.Init(); err != nil {
		return nil, fmt.Errorf("error loading sentiment lexicon: %w", err)
	}

	return scorer, nil
}

// Polarity returns the compound polarity score for one sentence
func (s *VaderScorer) Polarity(sentence string) (float64, error) {
	scores := s.analyzer.PolarityScores(sentence)
	return scores["compound"], nil
}
