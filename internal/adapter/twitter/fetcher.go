package twitter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	twitterv2 "github.com/g8rswimmer/go-twitter/v2"
	"github.com/jonboulle/clockwork"

	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/domain/sentiment"
)

// The recent search endpoint rejects max_results outside 10..100, but the
// page loop can legitimately want fewer than 10 items for a final partial
// page. Undersized requests are floored and the surplus dropped.
const minSearchPageSize = 10

// minRetryWait floors the pause before retrying a rate-limited request, so
// a stale reset instant never turns into a tight request loop.
const minRetryWait = time.Second

// recentSearcher is the slice of the API client the fetcher needs
type recentSearcher interface {
	TweetRecentSearch(ctx context.Context, query string, opts twitterv2.TweetRecentSearchOpts) (*twitterv2.TweetRecentSearchResponse, error)
}

// Fetcher pages through recent tweets matching a tag, filtered to a single
// language. It keeps a per-tag pagination cursor so successive FetchPage
// calls advance through the result set, and it waits out rate-limit windows
// internally so callers never see a rate-limit error.
//
// Fetcher is not safe for concurrent use; the pipeline is strictly
// sequential by design.
type Fetcher struct {
	searcher   recentSearcher
	language   string
	clock      clockwork.Clock
	logger     *slog.Logger
	nextTokens map[string]string
	exhausted  map[string]bool
}

// NewFetcher creates a fetcher over an established session
func NewFetcher(session *Session, language string, clock clockwork.Clock, logger *slog.Logger) *Fetcher {
	return newFetcher(session.client, language, clock, logger)
}

func newFetcher(searcher recentSearcher, language string, clock clockwork.Clock, logger *slog.Logger) *Fetcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Fetcher{
		searcher:   searcher,
		language:   language,
		clock:      clock,
		logger:     logger,
		nextTokens: make(map[string]string),
		exhausted:  make(map[string]bool),
	}
}

// FetchPage returns at most pageSize item texts matching the tag. When the
// source signals a rate limit, the call blocks until the advertised reset
// instant and then resumes. Once the source has no further results for a
// tag, subsequent calls return ErrSourceExhausted.
func (f *Fetcher) FetchPage(ctx context.Context, tag string, pageSize int) ([]string, error) {
	if f.exhausted[tag] {
		return nil, sentiment.ErrSourceExhausted
	}

	requested := pageSize
	if requested < minSearchPageSize {
		requested = minSearchPageSize
	}

	query := fmt.Sprintf("%s lang:%s", tag, f.language)
	opts := twitterv2.TweetRecentSearchOpts{MaxResults: requested}
	if token := f.nextTokens[tag]; token != "" {
		opts.NextToken = token
	}

	for {
		resp, err := f.searcher.TweetRecentSearch(ctx, query, opts)
		if err != nil {
			if rateLimit, has := twitterv2.RateLimitFromError(err); has && rateLimit.Remaining == 0 {
				if waitErr := f.waitForReset(ctx, tag, rateLimit); waitErr != nil {
					return nil, waitErr
				}
				continue
			}
			return nil, fmt.Errorf("error searching tweets for %s: %w", tag, err)
		}

		texts := make([]string, 0, len(resp.Raw.Tweets))
		for _, tweet := range resp.Raw.Tweets {
			texts = append(texts, tweet.Text)
		}

		// Exhaustion is judged on what the API actually returned, before
		// any surplus from a floored request is dropped.
		if resp.Meta == nil || resp.Meta.NextToken == "" || len(texts) < requested {
			f.exhausted[tag] = true
			delete(f.nextTokens, tag)
		} else {
			f.nextTokens[tag] = resp.Meta.NextToken
		}

		if len(texts) > pageSize {
			texts = texts[:pageSize]
		}

		return texts, nil
	}
}

// waitForReset blocks until the rate-limit window reopens, or for the
// minimum retry pause when the advertised reset instant is already past
func (f *Fetcher) waitForReset(ctx context.Context, tag string, rateLimit *twitterv2.RateLimit) error {
	reset := rateLimit.Reset.Time()
	wait := reset.Sub(f.clock.Now())
	if wait < minRetryWait {
		wait = minRetryWait
	}

	f.logger.Info("rate limited, waiting for window reset", "tag", tag, "until", reset)

	select {
	case <-f.clock.After(wait):
		return nil
	case <-ctx.Done():
		return fmt.Errorf("error waiting for rate limit reset: %w", ctx.Err())
	}
}
