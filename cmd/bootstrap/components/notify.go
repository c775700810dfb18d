package components

import (
	"context"

	"tripd/internal/infra/repository"
	"tripd/internal/notify"
	"tripd/internal/pkg/clock"
	"tripd/internal/pkg/config"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewTicketRenderer,
		NewNotifyWorker,
	),
	fx.Invoke(StartNotifyWorker),
)

func NewTicketRenderer(cfg config.Config) *notify.TicketRenderer {
	return notify.NewTicketRenderer(cfg.Notify.TicketDir)
}

func NewNotifyWorker(store *repository.NotificationJobStore, renderer *notify.TicketRenderer, clk clock.Clock, cfg config.Config) *notify.Worker {
	return notify.NewWorker(store, renderer, clk, cfg.Notify)
}

func StartNotifyWorker(lc fx.Lifecycle, worker *notify.Worker) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			worker.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			worker.Stop()
			return nil
		},
	})
}
