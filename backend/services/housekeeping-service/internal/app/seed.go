package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-repositories"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/jackc/pgconn"
)

// Helper to check for unique violation error (PostgreSQL specific code)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var defaultStaff = []models.StaffMember{
	{Name: "Rina Das", BlockAssignment: "1-2"},
	{Name: "Bapi Mondal", BlockAssignment: "3-4"},
	{Name: "Sujata Roy", BlockAssignment: "5-6"},
	{Name: "Kalu Sheikh", Role: models.StaffRoleSupervisor, BlockAssignment: "All"},
}

// SeedDefaultStaffIfNeeded inserts the demo staff roster into an empty
// staff table.
func SeedDefaultStaffIfNeeded(ctx context.Context, staffRepo repositories.StaffMemberRepository) error {
	n, err := staffRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count staff members: %w", err)
	}
	if n > 0 {
		utils.Logger.Info("housekeeping-service: staff already present; skipping seeding")
		return nil
	}

	for _, s := range defaultStaff {
		m := s
		if m.Role == "" {
			m.Role = models.StaffRoleHousekeeper
		}
		m.Avatar = models.DefaultAvatarURL(m.Name)
		if err := staffRepo.Create(ctx, &m); err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("insert staff %q: %w", m.Name, err)
		}
		utils.Logger.Infof("Seeded staff member %d (%s)", m.ID, m.Name)
	}
	return nil
}
