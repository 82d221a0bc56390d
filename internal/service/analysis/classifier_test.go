package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/domain/sentiment"
)

// keywordScorer assigns a fixed polarity based on sentence content
type keywordScorer struct {
	err error
}

func (s keywordScorer) Polarity(sentence string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}

	lower := strings.ToLower(sentence)
	switch {
	case strings.Contains(lower, "love"):
		return 0.8, nil
	case strings.Contains(lower, "terrible"):
		return -0.6, nil
	}
	return 0, nil
}

func TestClassifySingleSentence(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected sentiment.Tally
	}{
		{"positive", "I love this team", sentiment.Tally{Positive: 1}},
		{"negative", "The weather was terrible today", sentiment.Tally{Negative: 1}},
		{"exact zero is neutral", "The chair is next to the window", sentiment.Tally{Neutral: 1}},
	}

	classifier := NewClassifier(keywordScorer{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally, err := classifier.Classify(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tally)
		})
	}
}

func TestClassifyCountsPerSentence(t *testing.T) {
	classifier := NewClassifier(keywordScorer{})

	tally, err := classifier.Classify("I love this game. The referee was terrible. The match started at noon.")
	require.NoError(t, err)

	assert.Equal(t, 1, tally.Positive)
	assert.Equal(t, 1, tally.Negative)
	assert.Equal(t, 1, tally.Neutral)
	assert.Equal(t, 3, tally.Sum())
}

func TestClassifyEmptyTextContributesNothing(t *testing.T) {
	classifier := NewClassifier(keywordScorer{})

	for _, text := range []string{"", "   "} {
		tally, err := classifier.Classify(text)
		require.NoError(t, err)
		assert.Zero(t, tally.Sum())
	}
}

func TestClassifyScorerFailureMakesTextUnclassifiable(t *testing.T) {
	classifier := NewClassifier(keywordScorer{err: errors.New("lexicon unavailable")})

	tally, err := classifier.Classify("I love this. The rest is terrible.")
	assert.Error(t, err)
	assert.Zero(t, tally.Sum(), "no partial counts on failure")
}

func TestVaderScorerPolarity(t *testing.T) {
	scorer, err := NewVaderScorer()
	require.NoError(t, err)

	positive, err := scorer.Polarity("I love this, it is wonderful")
	require.NoError(t, err)
	assert.Greater(t, positive, 0.0)

	negative, err := scorer.Polarity("This is horrible and I hate it")
	require.NoError(t, err)
	assert.Less(t, negative, 0.0)

	neutral, err := scorer.Polarity("The chair is next to the window")
	require.NoError(t, err)
	assert.Zero(t, neutral)
}
