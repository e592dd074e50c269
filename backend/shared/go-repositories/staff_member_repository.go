package repositories

import (
	"context"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/jackc/pgx/v4"
)

type StaffMemberRepository interface {
	Create(ctx context.Context, s *models.StaffMember) error
	GetByID(ctx context.Context, id int64) (*models.StaffMember, error)
	List(ctx context.Context) ([]*models.StaffMember, error)
	Count(ctx context.Context) (int, error)
}

type staffMemberRepo struct {
	db DB
}

func NewStaffMemberRepository(db DB) StaffMemberRepository {
	return &staffMemberRepo{db: db}
}

// Create inserts s and sets its server-assigned ID.
func (r *staffMemberRepo) Create(ctx context.Context, s *models.StaffMember) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO staff_members (name, role, avatar, block_assignment)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, s.Name, s.Role, s.Avatar, s.BlockAssignment).Scan(&s.ID)
}

func (r *staffMemberRepo) GetByID(ctx context.Context, id int64) (*models.StaffMember, error) {
	return r.scanStaff(r.db.QueryRow(ctx, baseSelectStaff()+" WHERE id=$1", id))
}

func (r *staffMemberRepo) List(ctx context.Context) ([]*models.StaffMember, error) {
	rows, err := r.db.Query(ctx, baseSelectStaff()+" ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.StaffMember
	for rows.Next() {
		s, err := r.scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *staffMemberRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM staff_members`).Scan(&n)
	return n, err
}

func baseSelectStaff() string {
	return `
		SELECT id, name, role, COALESCE(avatar, ''), COALESCE(block_assignment, '')
		FROM staff_members`
}

func (r *staffMemberRepo) scanStaff(row pgx.Row) (*models.StaffMember, error) {
	var s models.StaffMember
	if err := row.Scan(&s.ID, &s.Name, &s.Role, &s.Avatar, &s.BlockAssignment); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
