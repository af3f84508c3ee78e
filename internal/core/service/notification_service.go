package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
	"github.com/aCoruja/TechSecurityWebsite/internal/pkg/metrics"
)

type orderNotifier struct {
	log zerolog.Logger
}

// NewOrderNotifier returns the OrderEventHandler run by the order dispatcher
// workers. It records order metrics and emits the notification log line.
func NewOrderNotifier(log zerolog.Logger) ports.OrderEventHandler {
	return &orderNotifier{log: log}
}

func (n *orderNotifier) Handle(ctx context.Context, ev ports.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	metrics.OrderUnits.Observe(float64(ev.Units))
	metrics.OrderValue.Observe(ev.Total)

	n.log.Info().
		Int64("order_id", ev.OrderID).
		Str("username", ev.Username).
		Int("lines", ev.Lines).
		Int("units", ev.Units).
		Float64("total", ev.Total).
		Time("placed_at", ev.PlacedAt).
		Msg("order notification sent")

	metrics.OrderEventDuration.Observe(time.Since(start).Seconds())
	return nil
}
