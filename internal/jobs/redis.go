package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storelift/croscan/internal/scan"
)

const (
	redisQueueKey  = "croscan:scan:queue"
	redisJobPrefix = "croscan:scan:job:"

	// Completed/failed job hashes are kept for a day for status polling,
	// then expire.
	redisJobTTL = 24 * time.Hour
)

// RedisQueue backs the job queue with redis: a list carries pending job
// ids, a hash per job carries state and result. Producers call Enqueue
// and Status; a separate worker process calls Work.
//
// Per-owner admission is NOT enforced here; two workers may scan the same
// owner concurrently and the last replace wins, same as the source
// system.
type RedisQueue struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisQueue connects to redis and verifies the connection.
func NewRedisQueue(addr string, db int) (*RedisQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisQueue{client: client, logger: slog.Default()}, nil
}

// Close releases the redis connection.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// Enqueue records the job hash and pushes the id onto the pending list.
func (q *RedisQueue) Enqueue(ctx context.Context, jobID string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	pipe := q.client.TxPipeline()
	pipe.HSet(ctx, redisJobPrefix+jobID, "state", string(StateQueued), "payload", body)
	pipe.Expire(ctx, redisJobPrefix+jobID, redisJobTTL)
	pipe.LPush(ctx, redisQueueKey, jobID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("enqueue job %s: %w", jobID, err)
	}
	return nil
}

// Status reads the job hash. A missing or expired hash is StateUnknown.
func (q *RedisQueue) Status(ctx context.Context, jobID string) (Status, error) {
	fields, err := q.client.HGetAll(ctx, redisJobPrefix+jobID).Result()
	if err != nil {
		return Status{}, fmt.Errorf("read job %s: %w", jobID, err)
	}
	if len(fields) == 0 {
		return Status{State: StateUnknown}, nil
	}

	status := Status{State: State(fields["state"]), Error: fields["error"]}
	if raw, ok := fields["result"]; ok && raw != "" {
		var result scan.Result
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return Status{}, fmt.Errorf("decode result of job %s: %w", jobID, err)
		}
		status.Result = &result
	}
	return status, nil
}

// Work consumes jobs until ctx is cancelled, running each scan with
// runner. Blocks; run it on a dedicated goroutine or worker process.
func (q *RedisQueue) Work(ctx context.Context, runner Runner) error {
	for {
		popped, err := q.client.BRPop(ctx, 0, redisQueueKey).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return fmt.Errorf("pop scan job: %w", err)
		}
		// BRPop returns [key, value].
		jobID := popped[1]
		q.process(ctx, jobID, runner)
	}
}

func (q *RedisQueue) process(ctx context.Context, jobID string, runner Runner) {
	key := redisJobPrefix + jobID

	raw, err := q.client.HGet(ctx, key, "payload").Result()
	if err != nil {
		q.logger.Error("scan job payload missing", "job", jobID, "error", err)
		return
	}
	var payload Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		q.fail(ctx, key, jobID, fmt.Errorf("decode payload: %w", err))
		return
	}

	q.client.HSet(ctx, key, "state", string(StateActive))
	q.logger.Info("scan job started", "job", jobID, "owner", payload.OwnerID)

	result, err := runner.Run(ctx, payload.OwnerID)
	if err != nil {
		q.fail(ctx, key, jobID, err)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		q.fail(ctx, key, jobID, fmt.Errorf("marshal result: %w", err))
		return
	}
	q.client.HSet(ctx, key, "state", string(StateCompleted), "result", body)
	q.logger.Info("scan job completed", "job", jobID, "owner", payload.OwnerID,
		"created", result.RecommendationsCreated)
}

func (q *RedisQueue) fail(ctx context.Context, key, jobID string, err error) {
	q.client.HSet(ctx, key, "state", string(StateFailed), "error", err.Error())
	q.logger.Error("scan job failed", "job", jobID, "error", err)
}
