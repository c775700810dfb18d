package repository

import (
	"context"
	"time"

	"tripd/internal/infra"
	"tripd/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository enqueues outbound jobs inside the same transaction
// as the ledger write, so a committed booking always has its notification
// job and a rolled-back one never does.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) Enqueue(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_jobs (kind, topic, payload, run_at)
		VALUES ($1, $2, $3, $4)`,
		kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int
}

// NotificationJobStore is the delivery worker's view of the queue. The
// worker runs as a single in-process dispatcher, so a plain read suffices.
type NotificationJobStore struct {
	pool *pgxpool.Pool
}

func NewNotificationJobStore(pool *pgxpool.Pool) *NotificationJobStore {
	return &NotificationJobStore{pool: pool}
}

func (s *NotificationJobStore) ListPending(ctx context.Context, now time.Time, limit int) ([]NotificationJob, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, kind, topic, payload, attempts
		FROM notification_jobs
		WHERE status = 'pending' AND run_at <= $1
		ORDER BY run_at
		LIMIT $2`, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}
	return jobs, nil
}

func (s *NotificationJobStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notification_jobs
		SET status = 'sent', attempts = attempts + 1, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

// MarkFailed records the error; the job goes back to pending until the
// attempt budget is spent, then parks as failed.
func (s *NotificationJobStore) MarkFailed(ctx context.Context, id uuid.UUID, cause string, maxAttempts int) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notification_jobs
		SET attempts = attempts + 1,
		    last_error = $2,
		    status = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'pending' END,
		    updated_at = NOW()
		WHERE id = $1`, id, cause, maxAttempts)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
