package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message is one entry read from a stream. The JSON payload published by
// PublishJSON lives under the "data" field of Values.
type Message struct {
	Stream string
	ID     string
	Values map[string]interface{}
}

// Data returns the JSON payload of a message published with PublishJSON,
// or an error when the entry does not carry one.
func (m Message) Data() ([]byte, error) {
	raw, ok := m.Values["data"]
	if !ok {
		return nil, fmt.Errorf("stream entry %s has no data field", m.ID)
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("stream entry %s data field is %T, want string", m.ID, raw)
	}
	return []byte(s), nil
}

// PublishJSON serializes v and appends it to the stream under a "data"
// field, with a publish timestamp alongside. Returns the entry ID.
func PublishJSON(ctx context.Context, client *redis.Client, stream string, v interface{}) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal stream payload: %w", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(payload),
			"published": time.Now().UTC().Format(time.RFC3339),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd to %s: %w", stream, err)
	}
	return id, nil
}

// EnsureGroup creates the consumer group on the stream, creating the stream
// itself if necessary. An already-existing group is not an error.
func EnsureGroup(ctx context.Context, client *redis.Client, stream, group string) error {
	err := client.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create consumer group %s on %s: %w", group, stream, err)
	}
	return nil
}

// ReadGroup blocks up to block for new entries on the stream as the given
// group member and returns them. A timeout with no entries is not an error.
func ReadGroup(ctx context.Context, client *redis.Client, stream, group, consumer string, count int64, block time.Duration) ([]Message, error) {
	streams, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    count,
		Block:    block,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("xreadgroup on %s: %w", stream, err)
	}

	var messages []Message
	for _, s := range streams {
		for _, msg := range s.Messages {
			messages = append(messages, Message{
				Stream: s.Stream,
				ID:     msg.ID,
				Values: msg.Values,
			})
		}
	}
	return messages, nil
}

// Ack acknowledges processed entries for the group. Callers ack only after
// their processing has durably succeeded, preserving at-least-once delivery
// across restarts.
func Ack(ctx context.Context, client *redis.Client, stream, group string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := client.XAck(ctx, stream, group, ids...).Err(); err != nil {
		return fmt.Errorf("xack on %s: %w", stream, err)
	}
	return nil
}
