package analysis

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/domain/sentiment"
)

// PolarityScorer produces a polarity score in [-1.0, 1.0] for a single
// sentence. Implementations may be lexicon-based or model-based.
type PolarityScorer interface {
	Polarity(sentence string) (float64, error)
}

// Classifier labels each sentence of a normalized text by polarity sign
type Classifier struct {
	scorer PolarityScorer
}

// NewClassifier creates a new classifier backed by the given scorer
func NewClassifier(scorer PolarityScorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Classify splits text into sentences and counts one label per sentence:
// polarity above zero is positive, below zero negative, and exactly zero
// neutral (no tolerance band). A text with no sentences contributes no
// counts. If segmentation or scoring fails, the whole text is
// unclassifiable and no partial counts are returned.
func (c *Classifier) Classify(text string) (sentiment.Tally, error) {
	var tally sentiment.Tally

	if strings.TrimSpace(text) == "" {
		return tally, nil
	}

	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return sentiment.Tally{}, fmt.Errorf("error segmenting text: %w", err)
	}

	for _, sent := range doc.Sentences() {
		polarity, err := c.scorer.Polarity(sent.Text)
		if err != nil {
			return sentiment.Tally{}, fmt.Errorf("error scoring sentence: %w", err)
		}

		switch {
		case polarity > 0:
			tally.Positive++
		case polarity < 0:
			tally.Negative++
		default:
			tally.Neutral++
		}
	}

	return tally, nil
}
