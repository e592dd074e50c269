package repositories

import (
	"context"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

type SupplyRequestRepository interface {
	Create(ctx context.Context, s *models.SupplyRequest) error
	GetByID(ctx context.Context, id string) (*models.SupplyRequest, error)
	ListRecent(ctx context.Context, limit int) ([]*models.SupplyRequest, error)
	UpdateIfVersion(ctx context.Context, s *models.SupplyRequest, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id string, mutate func(*models.SupplyRequest) error) error
}

type supplyRequestRepo struct {
	*BaseVersionedRepo[*models.SupplyRequest]
	db DB
}

func NewSupplyRequestRepository(db DB) SupplyRequestRepository {
	r := &supplyRequestRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectSupplyRequest()+" WHERE id=$1", r.scanSupplyRequest)
	return r
}

func (r *supplyRequestRepo) Create(ctx context.Context, s *models.SupplyRequest) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO supply_requests (
			item, quantity, urgency, status, requester_id, timestamp, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,1)
		RETURNING id, row_version
	`, s.Item, s.Quantity, s.Urgency, s.Status, s.RequesterID, s.Timestamp).Scan(&s.ID, &s.RowVersion)
}

func (r *supplyRequestRepo) ListRecent(ctx context.Context, limit int) ([]*models.SupplyRequest, error) {
	rows, err := r.db.Query(ctx, baseSelectSupplyRequest()+" ORDER BY timestamp DESC LIMIT $1", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SupplyRequest
	for rows.Next() {
		s, err := r.scanSupplyRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateIfVersion writes the mutable status field when row_version matches.
func (r *supplyRequestRepo) UpdateIfVersion(ctx context.Context, s *models.SupplyRequest, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
		UPDATE supply_requests
		SET status=$1, row_version=row_version+1
		WHERE id=$2 AND row_version=$3
	`, s.Status, s.ID, expected)
}

func (r *supplyRequestRepo) UpdateWithRetry(ctx context.Context, id string, mutate func(*models.SupplyRequest) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id, mutate, r.UpdateIfVersion)
}

func baseSelectSupplyRequest() string {
	return `
		SELECT id, item, quantity, urgency, status, requester_id, timestamp, row_version
		FROM supply_requests`
}

func (r *supplyRequestRepo) scanSupplyRequest(row pgx.Row) (*models.SupplyRequest, error) {
	var s models.SupplyRequest
	if err := row.Scan(
		&s.ID, &s.Item, &s.Quantity, &s.Urgency, &s.Status,
		&s.RequesterID, &s.Timestamp, &s.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
