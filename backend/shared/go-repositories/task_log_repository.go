package repositories

import (
	"context"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

type TaskLogRepository interface {
	Create(ctx context.Context, l *models.TaskLog) error
	ListSince(ctx context.Context, sinceMillis int64) ([]*models.TaskLog, error)
	ListByStaffSince(ctx context.Context, staffID int64, sinceMillis int64) ([]*models.TaskLog, error)
}

type taskLogRepo struct {
	db DB
}

func NewTaskLogRepository(db DB) TaskLogRepository {
	return &taskLogRepo{db: db}
}

// Create inserts l and replaces its ID with the server-assigned one.
func (r *taskLogRepo) Create(ctx context.Context, l *models.TaskLog) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO task_logs (
			task_id, staff_id, timestamp, status, image_url,
			ai_feedback, ai_rating, block, floor, flat
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`,
		l.TaskID, l.StaffID, l.Timestamp, l.Status, l.ImageURL,
		l.AIFeedback, l.AIRating, l.Block, l.Floor, l.Flat,
	).Scan(&l.ID)
}

func (r *taskLogRepo) ListSince(ctx context.Context, sinceMillis int64) ([]*models.TaskLog, error) {
	return r.list(ctx, baseSelectTaskLog()+" WHERE timestamp >= $1 ORDER BY timestamp DESC", sinceMillis)
}

func (r *taskLogRepo) ListByStaffSince(ctx context.Context, staffID int64, sinceMillis int64) ([]*models.TaskLog, error) {
	return r.list(ctx, baseSelectTaskLog()+" WHERE staff_id=$1 AND timestamp >= $2 ORDER BY timestamp DESC", staffID, sinceMillis)
}

func (r *taskLogRepo) list(ctx context.Context, sql string, args ...any) ([]*models.TaskLog, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TaskLog
	for rows.Next() {
		l, err := r.scanTaskLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func baseSelectTaskLog() string {
	return `
		SELECT id, task_id, staff_id, timestamp, status, image_url,
		       ai_feedback, ai_rating, block, floor, flat
		FROM task_logs`
}

func (r *taskLogRepo) scanTaskLog(row pgx.Row) (*models.TaskLog, error) {
	var (
		l          models.TaskLog
		imageURL   pgtype.Text
		aiFeedback pgtype.Text
		aiRating   pgtype.Float8
		block      pgtype.Int4
		floor      pgtype.Int4
		flat       pgtype.Text
	)
	if err := row.Scan(
		&l.ID, &l.TaskID, &l.StaffID, &l.Timestamp, &l.Status, &imageURL,
		&aiFeedback, &aiRating, &block, &floor, &flat,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	l.ImageURL = textPtr(imageURL)
	l.AIFeedback = textPtr(aiFeedback)
	if aiRating.Status == pgtype.Present {
		v := aiRating.Float
		l.AIRating = &v
	}
	l.Block = int4Ptr(block)
	l.Floor = int4Ptr(floor)
	l.Flat = textPtr(flat)
	return &l, nil
}

func textPtr(t pgtype.Text) *string {
	if t.Status != pgtype.Present {
		return nil
	}
	v := t.String
	return &v
}

func int4Ptr(i pgtype.Int4) *int {
	if i.Status != pgtype.Present {
		return nil
	}
	v := int(i.Int)
	return &v
}
