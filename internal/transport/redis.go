package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type RedisTransport struct {
	rdb *redis.Client
}

func NewRedisTransport(rdb *redis.Client) *RedisTransport {
	return &RedisTransport{
		rdb: rdb,
	}
}

func (t *RedisTransport) GetMessageStream(id string) (MessageStream, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("invalid stream ID")
	}
	rs := &RedisStream{
		id:          id,
		lastRedisID: "0",
		rdb:         t.rdb,
	}
	return rs, nil
}

func (t *RedisTransport) SetTrace(ctx context.Context, trace *RequestTrace) error {
	key := traceKey(trace.ID)
	if err := t.rdb.HSet(ctx, key, trace).Err(); err != nil {
		return fmt.Errorf("failed to store trace '%s': %w", trace.ID, err)
	}
	if err := t.rdb.Expire(ctx, key, TraceExpiry).Err(); err != nil {
		slog.Warn("failed to set trace expiry", "trace", trace.ID, "err", err)
	}
	return nil
}

func (t *RedisTransport) GetTrace(ctx context.Context, traceId string) (*RequestTrace, error) {
	res := t.rdb.HGetAll(ctx, traceKey(traceId))
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace '%s': %w", traceId, err)
	}
	if len(res.Val()) == 0 {
		return nil, fmt.Errorf("trace '%s' not found", traceId)
	}

	var trace RequestTrace
	if err := res.Scan(&trace); err != nil {
		return nil, fmt.Errorf("failed to deserialize trace '%s': %w", traceId, err)
	}
	return &trace, nil
}

func traceKey(traceId string) string {
	return "leadscout:trace:" + traceId
}

type RedisStream struct {
	id          string
	lastRedisID string

	rdb *redis.Client
}

func (s *RedisStream) Send(ctx context.Context, payload MessageStreamPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	res, err := s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.id,
		ID:     "*",
		Values: map[string]any{
			"payload": string(payloadJSON),
		},
	}).Result()

	if err != nil {
		return err
	}

	slog.Debug("received result from redis", "res", res)
	return nil
}

func (s *RedisStream) Recv(ctx context.Context) (*MessageStreamPayload, error) {
	rstreams, err := s.rdb.XRead(ctx, &redis.XReadArgs{
		Streams: []string{s.id, s.lastRedisID},
		Count:   1,
		Block:   0,
	}).Result()
	if err != nil {
		return nil, err
	}

	msg := rstreams[0].Messages[0]
	s.lastRedisID = msg.ID
	payloadJSON, ok := msg.Values["payload"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to read payload from stream message")
	}

	var payload MessageStreamPayload
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return nil, fmt.Errorf("failed to deserialize stream message payload")
	}

	return &payload, nil
}

func (s *RedisStream) Result(ctx context.Context) (string, error) {
	for {
		payload, err := s.Recv(ctx)
		if err != nil {
			return "", err
		}

		switch payload.Status {
		case StatusDone:
			return payload.Content, nil
		case StatusErr:
			return "", fmt.Errorf("run failed: %s", payload.Content)
		}
	}
}

func (s *RedisStream) GetID() string {
	return s.id
}
