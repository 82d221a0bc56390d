package analysis

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/domain/sentiment"
)

// Fetcher retrieves one page of raw item texts matching a tag. A returned
// page shorter than the requested size means the source is exhausted for
// that tag. Rate-limit waiting happens inside the fetcher and is invisible
// here.
type Fetcher interface {
	FetchPage(ctx context.Context, tag string, pageSize int) ([]string, error)
}

// ItemClassifier produces a per-sentence label tally for a normalized text
type ItemClassifier interface {
	Classify(text string) (sentiment.Tally, error)
}

// ProgressSink receives a progress notification after each processed page
// and once more when a tag finalizes
type ProgressSink interface {
	Progress(ctx context.Context, progress sentiment.Progress) error
}

// AggregatorConfig contains configuration for the aggregator
type AggregatorConfig struct {
	// MaxPageSize caps how many items are requested per page
	MaxPageSize int
}

// Aggregator drives the fetch, normalize, classify and tally loop for each
// tag in turn. Execution is strictly sequential: tags in input order, pages
// in order, items within a page in order.
type Aggregator struct {
	fetcher    Fetcher
	classifier ItemClassifier
	sinks      []ProgressSink
	config     AggregatorConfig
	logger     *slog.Logger
}

// NewAggregator creates a new aggregator
func NewAggregator(fetcher Fetcher, classifier ItemClassifier, config AggregatorConfig, logger *slog.Logger) *Aggregator {
	if config.MaxPageSize <= 0 {
		config.MaxPageSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Aggregator{
		fetcher:    fetcher,
		classifier: classifier,
		config:     config,
		logger:     logger,
	}
}

// RegisterProgressSink registers a sink notified after every page
func (a *Aggregator) RegisterProgressSink(sink ProgressSink) {
	a.sinks = append(a.sinks, sink)
}

// Run analyzes every tag and returns the per-tag sentiment distribution in
// input order. A missing data source session fails the whole batch before
// any tag is attempted; failures of individual items or pages never abort
// other tags.
func (a *Aggregator) Run(ctx context.Context, tags []string, targetPerTag int) (sentiment.RunResult, error) {
	if a.fetcher == nil {
		return sentiment.RunResult{}, &sentiment.SetupError{Err: errors.New("no data source session")}
	}

	result := sentiment.RunResult{
		Tags:    tags,
		Results: make([]sentiment.TagResult, 0, len(tags)),
	}

	for _, tag := range tags {
		a.logger.Info("analysis started", "tag", tag, "target", targetPerTag)
		tagResult := a.analyzeTag(ctx, tag, targetPerTag)
		a.logger.Info("analysis completed",
			"tag", tag,
			"processed", tagResult.Processed,
			"positive", tagResult.Tally.Positive,
			"negative", tagResult.Tally.Negative,
			"neutral", tagResult.Tally.Neutral,
		)
		result.Results = append(result.Results, tagResult)
	}

	return result, nil
}

// analyzeTag runs the page loop for one tag until the target is reached or
// the source is exhausted, whichever comes first
func (a *Aggregator) analyzeTag(ctx context.Context, tag string, target int) sentiment.TagResult {
	result := sentiment.TagResult{Tag: tag}

	for result.Processed < target {
		size := a.nextPageSize(target - result.Processed)

		items, err := a.fetcher.FetchPage(ctx, tag, size)
		if err != nil {
			// A failed page is treated like exhaustion: the tag keeps
			// whatever was accumulated and the run moves on.
			if !errors.Is(err, sentiment.ErrSourceExhausted) {
				a.logger.Warn("page fetch failed, finalizing tag early", "tag", tag, "error", err)
			}
			break
		}

		for _, raw := range items {
			text := Normalize(raw)
			if text != "" {
				result.Corpus = append(result.Corpus, text)
			}

			counts, err := a.classifier.Classify(text)
			if err != nil {
				a.logger.Debug("skipping unclassifiable item", "tag", tag, "error", err)
				continue
			}

			result.Tally.Add(counts)
			result.Processed++
		}

		a.emitProgress(ctx, sentiment.Progress{
			Tag:       tag,
			Processed: result.Processed,
			Target:    target,
		})

		if len(items) < size {
			break
		}
	}

	a.emitProgress(ctx, sentiment.Progress{
		Tag:       tag,
		Processed: result.Processed,
		Target:    target,
		Done:      true,
	})

	return result
}

// nextPageSize sizes the next request: full pages until fewer items than a
// full page remain, then a final partial page covering the remainder
func (a *Aggregator) nextPageSize(remaining int) int {
	if remaining > a.config.MaxPageSize {
		return a.config.MaxPageSize
	}
	return remaining
}

// emitProgress notifies all registered sinks
func (a *Aggregator) emitProgress(ctx context.Context, progress sentiment.Progress) {
	a.logger.Info("progress",
		"tag", progress.Tag,
		"processed", progress.Processed,
		"remaining", progress.Target-progress.Processed,
		"done", progress.Done,
	)

	for _, sink := range a.sinks {
		if err := sink.Progress(ctx, progress); err != nil {
			a.logger.Warn("error in progress sink", "tag", progress.Tag, "error", err)
		}
	}
}
