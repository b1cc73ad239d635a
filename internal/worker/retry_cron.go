package worker

// retry_cron.go
// Background goroutine that periodically drains the email DLQ and re-enqueues
// failed jobs with a bounded attempt count. Skips ticks while the SMTP circuit
// breaker is open so a downed relay is not hammered.

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pasteleria/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10

	// MaxEmailRetries bounds re-enqueues; entries past the limit are parked.
	MaxEmailRetries = 5

	// ParkedPrefix is where exhausted DLQ entries land for manual inspection.
	ParkedPrefix = "parked:"
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	RDB *redis.Client
	CB  *infra.CircuitBreaker
}

// StartRetryCron launches a background goroutine that ticks every 30s and
// redrives DLQ entries back onto their original queue.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				redriveDLQ(ctx, cfg, QueueEmail)
			}
		}
	}()
}

func redriveDLQ(ctx context.Context, cfg RetryCronConfig, queue string) {
	// If CB is open, skip entirely — the sends would fast-fail right back here
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	dlqKey := DLQPrefix + queue
	for i := 0; i < retryBatchSize; i++ {
		raw, err := cfg.RDB.RPop(ctx, dlqKey).Result()
		if errors.Is(err, redis.Nil) {
			return
		}
		if err != nil {
			log.Error().Err(err).Str("dlq_key", dlqKey).Msg("retry_cron: failed to pop DLQ entry")
			return
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("dlq_key", dlqKey).Msg("retry_cron: malformed DLQ entry, parking")
			_ = cfg.RDB.LPush(ctx, ParkedPrefix+dlqKey, raw).Err()
			continue
		}

		if entry.Attempts >= MaxEmailRetries {
			log.Error().
				Str("job_type", entry.JobType).
				Int("attempts", entry.Attempts).
				Str("reason", entry.Reason).
				Msg("retry_cron: max retries exceeded, parking entry")
			_ = cfg.RDB.LPush(ctx, ParkedPrefix+dlqKey, raw).Err()
			continue
		}

		// Check CB state before each redrive — it may have tripped mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			_ = cfg.RDB.LPush(ctx, dlqKey, raw).Err()
			return
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload, Attempts: entry.Attempts}
		encoded, err := json.Marshal(job)
		if err != nil {
			log.Error().Err(err).Str("job_type", entry.JobType).Msg("retry_cron: failed to marshal job")
			continue
		}
		if err := cfg.RDB.LPush(ctx, entry.OriginalQueue, encoded).Err(); err != nil {
			log.Error().Err(err).Str("queue", entry.OriginalQueue).Msg("retry_cron: failed to re-enqueue job")
			_ = cfg.RDB.LPush(ctx, dlqKey, raw).Err()
			return
		}

		log.Info().
			Str("job_type", entry.JobType).
			Str("queue", entry.OriginalQueue).
			Int("attempts", entry.Attempts).
			Msg("retry_cron: job re-enqueued from DLQ")
	}
}
