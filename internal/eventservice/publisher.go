package eventservice

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gourab8389/blog-author/internal/common"
)

const ActionInvalidateCache = "invalidateCache"

// InvalidationEvent tells downstream cache consumers which key patterns are
// now stale. Keys keep their given order and may repeat.
type InvalidationEvent struct {
	Action string   `json:"action"`
	Keys   []string `json:"keys"`
}

type Publisher struct {
	mb     common.MessageProducer
	logger *slog.Logger
}

func NewPublisher(mb common.MessageProducer, logger *slog.Logger) *Publisher {
	return &Publisher{mb: mb, logger: logger}
}

// InvalidateCache publishes an invalidation event to the cache-invalidation
// queue. Best effort: a broker that is down or a failed publish is logged and
// swallowed, since a stale cache is an acceptable degraded state and the store
// mutation that triggered the event has already committed.
func (p *Publisher) InvalidateCache(ctx context.Context, keys ...string) {
	event := InvalidationEvent{
		Action: ActionInvalidateCache,
		Keys:   keys,
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("could not marshal invalidation event", slog.String("error", err.Error()))
		return
	}

	if !p.mb.IsReady() {
		p.logger.Error("message broker not ready, skipping cache invalidation", slog.Any("keys", keys))
		return
	}

	err = p.mb.Publish(ctx, common.CacheInvalidationQueue, body)
	if err != nil {
		p.logger.Error("could not publish cache invalidation event", slog.String("error", err.Error()), slog.Any("keys", keys))
		return
	}

	p.logger.Info("cache invalidation event published", slog.Any("keys", keys))
}
