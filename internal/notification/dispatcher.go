package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Dispatcher drains the outbox: queued rows are published to the broker and
// marked sent, publish failures are recorded with their reason. Run by the
// notify-worker on an interval.
type Dispatcher struct {
	repo      Repository
	publisher Publisher
	batchSize int
	log       zerolog.Logger
}

func NewDispatcher(repo Repository, publisher Publisher, batchSize int, log zerolog.Logger) *Dispatcher {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Dispatcher{
		repo:      repo,
		publisher: publisher,
		batchSize: batchSize,
		log:       log,
	}
}

// DispatchOnce processes one batch and reports how many rows were published.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	queued, err := d.repo.NextQueued(ctx, d.batchSize)
	if err != nil {
		return 0, fmt.Errorf("load queued notifications: %w", err)
	}

	sent := 0
	for _, n := range queued {
		if err := d.publisher.Publish(ctx, n); err != nil {
			d.log.Error().Err(err).
				Str("notification_id", n.ID.String()).
				Str("channel", string(n.Channel)).
				Msg("publish failed")

			if markErr := d.repo.MarkFailed(ctx, n.ID, err.Error()); markErr != nil {
				d.log.Error().Err(markErr).
					Str("notification_id", n.ID.String()).
					Msg("could not record publish failure")
			}
			continue
		}

		if err := d.repo.MarkSent(ctx, n.ID); err != nil {
			d.log.Error().Err(err).
				Str("notification_id", n.ID.String()).
				Msg("could not mark notification sent")
			continue
		}
		sent++
	}

	return sent, nil
}
