package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"tripd/internal/infra/repository"
	"tripd/internal/pkg/clock"
	"tripd/internal/pkg/config"
)

const batchSize = 20

// Worker drains the notification job queue written by the booking commands.
// Jobs are delivered at-least-once: a crash between delivery and MarkSent
// replays the job on the next poll.
type Worker struct {
	store    *repository.NotificationJobStore
	renderer *TicketRenderer
	clock    clock.Clock
	cfg      config.NotifyConfig
	done     chan struct{}
}

func NewWorker(store *repository.NotificationJobStore, renderer *TicketRenderer, clk clock.Clock, cfg config.NotifyConfig) *Worker {
	return &Worker{
		store:    store,
		renderer: renderer,
		clock:    clk,
		cfg:      cfg,
		done:     make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *Worker) Stop() {
	close(w.done)
}

func (w *Worker) run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	jobs, err := w.store.ListPending(ctx, w.clock.Now(), batchSize)
	if err != nil {
		slog.Error("failed to poll notification jobs", "error", err.Error())
		return
	}

	for _, job := range jobs {
		// One bad job must not block the rest of the batch.
		if err := w.deliver(job); err != nil {
			slog.Warn("notification delivery failed",
				"job_id", job.ID, "topic", job.Topic, "attempt", job.Attempts+1, "error", err.Error())
			if markErr := w.store.MarkFailed(ctx, job.ID, err.Error(), w.cfg.MaxAttempts); markErr != nil {
				slog.Error("failed to mark notification job failed", "job_id", job.ID, "error", markErr.Error())
			}
			continue
		}
		if err := w.store.MarkSent(ctx, job.ID); err != nil {
			slog.Error("failed to mark notification job sent", "job_id", job.ID, "error", err.Error())
		}
	}
}

type confirmationPayload struct {
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	ScheduleID string    `json:"schedule_id"`
	Seats      []string  `json:"seats"`
	TotalCents int64     `json:"total_cents"`
	RouteFrom  string    `json:"route_from"`
	RouteTo    string    `json:"route_to"`
	DepartsAt  time.Time `json:"departs_at"`
}

func (w *Worker) deliver(job repository.NotificationJob) error {
	switch job.Topic {
	case "booking_confirmed":
		var p confirmationPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return err
		}
		path, err := w.renderer.Render(TicketData{
			BookingID:   p.BookingID,
			RouteFrom:   p.RouteFrom,
			RouteTo:     p.RouteTo,
			DepartureAt: p.DepartsAt,
			Seats:       p.Seats,
			TotalCents:  p.TotalCents,
		})
		if err != nil {
			return err
		}
		slog.Info("booking confirmation delivered", "job_id", job.ID, "booking_id", p.BookingID, "ticket", path)
		return nil
	case "booking_cancelled":
		var p struct {
			BookingID string `json:"booking_id"`
		}
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return err
		}
		slog.Info("cancellation notice delivered", "job_id", job.ID, "booking_id", p.BookingID)
		return nil
	default:
		slog.Warn("unknown notification topic, dropping", "job_id", job.ID, "topic", job.Topic)
		return nil
	}
}
