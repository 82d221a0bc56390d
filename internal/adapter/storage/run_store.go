package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/domain/sentiment"
)

// RunStore persists the finalized per-tag tallies of completed runs. Only
// aggregate counts are stored, never raw or normalized item texts.
type RunStore struct {
	db *pgxpool.Pool
}

// NewRunStore creates a new run store
func NewRunStore(db *pgxpool.Pool) *RunStore {
	return &RunStore{
		db: db,
	}
}

// SaveRun stores one row per tag for a completed run
func (s *RunStore) SaveRun(ctx context.Context, runID uuid.UUID, finishedAt time.Time, target int, result sentiment.RunResult) error {
	query := `
		INSERT INTO run_tallies (
			run_id, tag, tag_position, positive, negative, neutral,
			processed, target, finished_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9
		)
	`

	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}

	for position, tagResult := range result.Results {
		_, err := s.db.Exec(
			ctx,
			query,
			runID,
			tagResult.Tag,
			position,
			tagResult.Tally.Positive,
			tagResult.Tally.Negative,
			tagResult.Tally.Neutral,
			tagResult.Processed,
			target,
			finishedAt,
		)
		if err != nil {
			return fmt.Errorf("error saving tally for %s: %w", tagResult.Tag, err)
		}
	}

	return nil
}

// GetRun retrieves the per-tag tallies of an archived run in tag order
func (s *RunStore) GetRun(ctx context.Context, runID uuid.UUID) (sentiment.RunResult, error) {
	query := `
		SELECT tag, positive, negative, neutral, processed
		FROM run_tallies
		WHERE run_id = $1
		ORDER BY tag_position
	`

	rows, err := s.db.Query(ctx, query, runID)
	if err != nil {
		return sentiment.RunResult{}, fmt.Errorf("error querying run: %w", err)
	}
	defer rows.Close()

	var result sentiment.RunResult
	for rows.Next() {
		var tagResult sentiment.TagResult

		err := rows.Scan(
			&tagResult.Tag,
			&tagResult.Tally.Positive,
			&tagResult.Tally.Negative,
			&tagResult.Tally.Neutral,
			&tagResult.Processed,
		)
		if err != nil {
			return sentiment.RunResult{}, fmt.Errorf("error scanning tally: %w", err)
		}

		result.Tags = append(result.Tags, tagResult.Tag)
		result.Results = append(result.Results, tagResult)
	}

	if err := rows.Err(); err != nil {
		return sentiment.RunResult{}, fmt.Errorf("error iterating tallies: %w", err)
	}

	return result, nil
}
