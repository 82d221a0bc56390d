package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/domain/sentiment"
)

type fetcherFunc func(ctx context.Context, tag string, pageSize int) ([]string, error)

func (f fetcherFunc) FetchPage(ctx context.Context, tag string, pageSize int) ([]string, error) {
	return f(ctx, tag, pageSize)
}

type classifierFunc func(text string) (sentiment.Tally, error)

func (f classifierFunc) Classify(text string) (sentiment.Tally, error) {
	return f(text)
}

// recordingSink captures emitted progress notifications
type recordingSink struct {
	progresses []sentiment.Progress
}

func (s *recordingSink) Progress(_ context.Context, p sentiment.Progress) error {
	s.progresses = append(s.progresses, p)
	return nil
}

// fullPages always returns exactly as many items as requested
func fullPages(text string) fetcherFunc {
	return func(_ context.Context, _ string, pageSize int) ([]string, error) {
		items := make([]string, pageSize)
		for i := range items {
			items[i] = text
		}
		return items, nil
	}
}

// onePositiveEach labels every non-empty text as a single positive sentence
func onePositiveEach() classifierFunc {
	return func(text string) (sentiment.Tally, error) {
		if text == "" {
			return sentiment.Tally{}, nil
		}
		return sentiment.Tally{Positive: 1}, nil
	}
}

func TestRunReachesTargetWithFullPages(t *testing.T) {
	var requestedSizes []int
	fetcher := fetcherFunc(func(ctx context.Context, tag string, pageSize int) ([]string, error) {
		requestedSizes = append(requestedSizes, pageSize)
		return fullPages("great stuff")(ctx, tag, pageSize)
	})

	aggregator := NewAggregator(fetcher, onePositiveEach(), AggregatorConfig{}, nil)

	result, err := aggregator.Run(context.Background(), []string{"#test"}, 250)
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, 250, result.Results[0].Processed)
	assert.Equal(t, 250, result.Results[0].Tally.Sum())
	assert.Equal(t, []int{100, 100, 50}, requestedSizes)
}

func TestRunFinalizesEarlyOnExhaustion(t *testing.T) {
	// The source only has 180 matching items: one full page, then a short one.
	pages := [][]string{make([]string, 100), make([]string, 80)}
	for _, page := range pages {
		for i := range page {
			page[i] = "something happened"
		}
	}

	call := 0
	fetcher := fetcherFunc(func(_ context.Context, _ string, _ int) ([]string, error) {
		if call >= len(pages) {
			return nil, sentiment.ErrSourceExhausted
		}
		page := pages[call]
		call++
		return page, nil
	})

	aggregator := NewAggregator(fetcher, onePositiveEach(), AggregatorConfig{}, nil)

	result, err := aggregator.Run(context.Background(), []string{"#rare"}, 250)
	require.NoError(t, err, "exhaustion must not fail the run")

	require.Len(t, result.Results, 1)
	assert.Equal(t, 180, result.Results[0].Processed)
	assert.Equal(t, 180, result.Results[0].Tally.Sum())
	assert.Equal(t, 2, call, "no further pages requested after a short page")
}

func TestRunSkipsUnclassifiableItems(t *testing.T) {
	served := 0
	fetcher := fetcherFunc(func(_ context.Context, _ string, pageSize int) ([]string, error) {
		items := make([]string, pageSize)
		for i := range items {
			served++
			items[i] = fmt.Sprintf("item %d", served)
		}
		return items, nil
	})

	// Items 10, 20 and 30 fail classification and are skipped.
	classifier := classifierFunc(func(text string) (sentiment.Tally, error) {
		switch text {
		case "item 10", "item 20", "item 30":
			return sentiment.Tally{}, errors.New("unclassifiable")
		}
		return sentiment.Tally{Neutral: 1}, nil
	})

	aggregator := NewAggregator(fetcher, classifier, AggregatorConfig{}, nil)

	result, err := aggregator.Run(context.Background(), []string{"#mixed"}, 100)
	require.NoError(t, err)

	tagResult := result.Results[0]
	assert.Equal(t, 100, tagResult.Processed, "skipped items are replaced by a follow-up page")
	assert.Equal(t, 100, tagResult.Tally.Sum())
	assert.Equal(t, 103, served, "three extra items fetched to cover the skips")
}

func TestRunFailsFastWithoutSession(t *testing.T) {
	aggregator := NewAggregator(nil, onePositiveEach(), AggregatorConfig{}, nil)

	result, err := aggregator.Run(context.Background(), []string{"#a", "#b"}, 10)
	require.Error(t, err)
	assert.True(t, sentiment.IsSetupError(err))
	assert.Empty(t, result.Results, "no tag attempted")
}

func TestRunIsolatesFetchFailuresPerTag(t *testing.T) {
	fetcher := fetcherFunc(func(_ context.Context, tag string, pageSize int) ([]string, error) {
		if tag == "#broken" {
			return nil, errors.New("boom")
		}
		items := make([]string, pageSize)
		for i := range items {
			items[i] = "fine"
		}
		return items, nil
	})

	aggregator := NewAggregator(fetcher, onePositiveEach(), AggregatorConfig{}, nil)

	result, err := aggregator.Run(context.Background(), []string{"#broken", "#healthy"}, 50)
	require.NoError(t, err, "a page-level failure never aborts the run")

	require.Len(t, result.Results, 2)
	assert.Equal(t, "#broken", result.Results[0].Tag)
	assert.Zero(t, result.Results[0].Processed)
	assert.Equal(t, "#healthy", result.Results[1].Tag)
	assert.Equal(t, 50, result.Results[1].Processed)
}

func TestRunPreservesTagOrder(t *testing.T) {
	aggregator := NewAggregator(fullPages("ok"), onePositiveEach(), AggregatorConfig{}, nil)

	tags := []string{"#zebra", "#alpha", "#middle"}
	result, err := aggregator.Run(context.Background(), tags, 5)
	require.NoError(t, err)

	assert.Equal(t, tags, result.Tags)
	for i, tagResult := range result.Results {
		assert.Equal(t, tags[i], tagResult.Tag)
	}
}

func TestRunExcludesEmptyItemsFromCorpus(t *testing.T) {
	fetcher := fetcherFunc(func(_ context.Context, _ string, _ int) ([]string, error) {
		// The second item normalizes to the empty string.
		return []string{"a real story", "!!!"}, nil
	})

	aggregator := NewAggregator(fetcher, onePositiveEach(), AggregatorConfig{}, nil)

	result, err := aggregator.Run(context.Background(), []string{"#t"}, 2)
	require.NoError(t, err)

	tagResult := result.Results[0]
	assert.Equal(t, []string{"a real story"}, tagResult.Corpus)
	assert.Equal(t, 2, tagResult.Processed, "empty items still count once classified")
}

func TestRunEmitsProgressPerPageAndCompletion(t *testing.T) {
	sink := &recordingSink{}

	aggregator := NewAggregator(fullPages("fine"), onePositiveEach(), AggregatorConfig{}, nil)
	aggregator.RegisterProgressSink(sink)

	_, err := aggregator.Run(context.Background(), []string{"#p"}, 150)
	require.NoError(t, err)

	// Two pages plus the final completion notification.
	require.Len(t, sink.progresses, 3)
	assert.Equal(t, sentiment.Progress{Tag: "#p", Processed: 100, Target: 150}, sink.progresses[0])
	assert.Equal(t, sentiment.Progress{Tag: "#p", Processed: 150, Target: 150}, sink.progresses[1])
	assert.Equal(t, sentiment.Progress{Tag: "#p", Processed: 150, Target: 150, Done: true}, sink.progresses[2])
}
