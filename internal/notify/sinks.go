package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisSink publishes each message as JSON on a pub/sub channel for the
// delivery workers (push, e-mail) to consume.
type RedisSink struct {
	client  *redis.Client
	channel string
}

func NewRedisSink(client *redis.Client, channel string) *RedisSink {
	return &RedisSink{client: client, channel: channel}
}

func (s *RedisSink) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, body).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// LogSink only records the message. Used when no broker is configured.
type LogSink struct {
	Log logrus.FieldLogger
}

func (s LogSink) Send(_ context.Context, msg Message) error {
	s.Log.WithFields(logrus.Fields{
		"user_id": msg.UserID,
		"kind":    msg.Kind,
	}).Info("notification")
	return nil
}
