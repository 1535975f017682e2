package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"wifiportal/internal/queue"
)

type accessSweeper interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, tenantID, mac string, allow bool) error
}

// Processor handles portal stream events: MAC authorization syncs,
// access expiry sweeps and contact notifications.
type Processor struct {
	dispatcher dispatcher
	sweeper    accessSweeper
	logger     zerolog.Logger
}

type taskPayload struct {
	Type      string `json:"type"`
	TenantID  string `json:"tenantId"`
	MAC       string `json:"mac"`
	Allow     string `json:"allow"`
	MessageID string `json:"messageId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

func NewProcessor(dispatcher dispatcher, sweeper accessSweeper, logger zerolog.Logger) *Processor {
	return &Processor{
		dispatcher: dispatcher,
		sweeper:    sweeper,
		logger:     logger,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	var payload taskPayload
	if err := decodePayload(msg.Values, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	switch payload.Type {
	case queue.TaskWifiSync:
		return p.handleWifiSync(ctx, payload)
	case queue.TaskAccessSweep:
		return p.handleAccessSweep(ctx)
	case queue.TaskContactNotify:
		return p.handleContactNotify(payload)
	default:
		p.logger.Warn().Str("type", payload.Type).Msg("unknown task type")
		return nil
	}
}

func decodePayload(values map[string]interface{}, out *taskPayload) error {
	bytes, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, out)
}

func (p *Processor) handleWifiSync(ctx context.Context, payload taskPayload) error {
	allow, err := strconv.ParseBool(payload.Allow)
	if err != nil {
		return fmt.Errorf("parse allow flag: %w", err)
	}

	if err := p.dispatcher.Dispatch(ctx, payload.TenantID, payload.MAC, allow); err != nil {
		return fmt.Errorf("dispatch mac authorization: %w", err)
	}

	p.logger.Info().
		Str("tenant_id", payload.TenantID).
		Str("mac", payload.MAC).
		Bool("allow", allow).
		Msg("wifi access synced")
	return nil
}

func (p *Processor) handleAccessSweep(ctx context.Context) error {
	count, err := p.sweeper.ExpireOverdue(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("expiry sweep: %w", err)
	}

	p.logger.Info().Int("expired", count).Msg("access sweep completed")
	return nil
}

func (p *Processor) handleContactNotify(payload taskPayload) error {
	// Mail/IM delivery is not wired up yet; surfacing the message in the
	// worker log is how operators notice contact submissions today.
	p.logger.Info().
		Str("message_id", payload.MessageID).
		Str("name", payload.Name).
		Str("email", payload.Email).
		Msg("contact message received")
	return nil
}
