package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/boardwalk/internal/db"
	"github.com/alexanderramin/boardwalk/internal/domain"
)

// SQLiteMembershipRepo implements MembershipRepo using a SQLite database.
type SQLiteMembershipRepo struct {
	db db.DBTX
}

func NewSQLiteMembershipRepo(conn db.DBTX) *SQLiteMembershipRepo {
	return &SQLiteMembershipRepo{db: conn}
}

// Add inserts the membership; adding an existing pair is a no-op.
func (r *SQLiteMembershipRepo) Add(ctx context.Context, m *domain.Membership) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO memberships (org_id, user_id, created_at) VALUES (?, ?, ?)`,
		m.OrgID, m.UserID, formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting membership: %w", err)
	}
	return nil
}

func (r *SQLiteMembershipRepo) IsMember(ctx context.Context, orgID, userID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM memberships WHERE org_id = ? AND user_id = ?`, orgID, userID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking membership: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteMembershipRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT org_id, user_id, created_at FROM memberships WHERE org_id = ? ORDER BY created_at, user_id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}
	defer rows.Close()

	var out []domain.Membership
	for rows.Next() {
		var m domain.Membership
		var createdAt string
		if err := rows.Scan(&m.OrgID, &m.UserID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning membership: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating memberships: %w", err)
	}
	return out, nil
}
