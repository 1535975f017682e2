package queue

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Event types carried on the portal stream.
const (
	TaskWifiSync      = "wifi.sync"
	TaskAccessSweep   = "access.sweep"
	TaskContactNotify = "contact.notify"
)

// Publisher appends portal events to a Redis stream consumed by the worker.
type Publisher struct {
	client *redis.Client
	stream string
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	return &Publisher{client: client, stream: stream}
}

// PublishWifiSync asks the worker to push a MAC authorization change to
// the network controller. allow=false revokes access.
func (p *Publisher) PublishWifiSync(ctx context.Context, tenantID, mac string, allow bool) error {
	return p.publish(ctx, map[string]any{
		"type":     TaskWifiSync,
		"tenantId": tenantID,
		"mac":      mac,
		"allow":    strconv.FormatBool(allow),
	})
}

// PublishAccessSweep asks the worker to revoke access for tenants whose
// grant has expired.
func (p *Publisher) PublishAccessSweep(ctx context.Context) error {
	return p.publish(ctx, map[string]any{
		"type": TaskAccessSweep,
	})
}

func (p *Publisher) PublishContactNotify(ctx context.Context, messageID, name, email string) error {
	return p.publish(ctx, map[string]any{
		"type":      TaskContactNotify,
		"messageId": messageID,
		"name":      name,
		"email":     email,
	})
}

func (p *Publisher) publish(ctx context.Context, values map[string]any) error {
	if p.client == nil {
		return nil
	}
	_, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: values,
	}).Result()
	return err
}
