package repositories

import (
	"context"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
)

type PunchLogRepository interface {
	Create(ctx context.Context, p *models.PunchLog) error
	ListSince(ctx context.Context, sinceMillis int64) ([]*models.PunchLog, error)
}

type punchLogRepo struct {
	db DB
}

func NewPunchLogRepository(db DB) PunchLogRepository {
	return &punchLogRepo{db: db}
}

func (r *punchLogRepo) Create(ctx context.Context, p *models.PunchLog) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO punch_logs (staff_id, type, timestamp)
		VALUES ($1, $2, $3)
		RETURNING id
	`, p.StaffID, p.Type, p.Timestamp).Scan(&p.ID)
}

func (r *punchLogRepo) ListSince(ctx context.Context, sinceMillis int64) ([]*models.PunchLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, staff_id, type, timestamp
		FROM punch_logs
		WHERE timestamp >= $1
		ORDER BY timestamp DESC
	`, sinceMillis)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PunchLog
	for rows.Next() {
		var p models.PunchLog
		if err := rows.Scan(&p.ID, &p.StaffID, &p.Type, &p.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
