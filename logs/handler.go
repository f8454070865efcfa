package logs

import (
	"context"
	"log/slog"
)

type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if instance := InstanceOf(ctx); instance != "" {
		record.Add("logs.instance", instance)
	}
	return h.Handler.Handle(ctx, record)
}
