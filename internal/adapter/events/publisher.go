package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/domain/sentiment"
)

// Publisher publishes pipeline progress to the event bus
type Publisher struct {
	conn  *nats.Conn
	topic string
	runID string
}

// NewPublisher creates a new progress publisher
func NewPublisher(conn *nats.Conn, topic, runID string) *Publisher {
	return &Publisher{
		conn:  conn,
		topic: topic,
		runID: runID,
	}
}

type progressEvent struct {
	RunID     string `json:"runId"`
	Tag       string `json:"tag"`
	Processed int    `json:"processed"`
	Target    int    `json:"target"`
}

// Progress publishes a page progress event. Tag finalization goes to its
// own subject so consumers can subscribe to completions alone.
func (p *Publisher) Progress(ctx context.Context, progress sentiment.Progress) error {
	event := progressEvent{
		RunID:     p.runID,
		Tag:       progress.Tag,
		Processed: progress.Processed,
		Target:    progress.Target,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling progress event: %w", err)
	}

	subject := fmt.Sprintf("%s.progress", p.topic)
	if progress.Done {
		subject = fmt.Sprintf("%s.completed", p.topic)
	}

	return p.conn.Publish(subject, data)
}
