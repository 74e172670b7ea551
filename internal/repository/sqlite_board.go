package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/boardwalk/internal/db"
	"github.com/alexanderramin/boardwalk/internal/domain"
)

// SQLiteBoardRepo implements BoardRepo using a SQLite database.
type SQLiteBoardRepo struct {
	db db.DBTX
}

func NewSQLiteBoardRepo(conn db.DBTX) *SQLiteBoardRepo {
	return &SQLiteBoardRepo{db: conn}
}

const boardColumns = `id, org_id, title, created_at, updated_at`

func (r *SQLiteBoardRepo) Create(ctx context.Context, b *domain.Board) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO boards (`+boardColumns+`) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.OrgID, b.Title, formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+boardColumns+` FROM boards WHERE id = ?`, id)
	b, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("board %s: %w", id, domain.ErrNotFound)
	}
	return b, err
}

func (r *SQLiteBoardRepo) ListByOrg(ctx context.Context, orgID string) ([]*domain.Board, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE org_id = ? ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()

	var boards []*domain.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating boards: %w", err)
	}
	return boards, nil
}

func (r *SQLiteBoardRepo) UpdateTitle(ctx context.Context, id, title string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE boards SET title = ?, updated_at = ? WHERE id = ?`, title, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("updating board: %w", err)
	}
	return requireRow(res, "board", id)
}

func (r *SQLiteBoardRepo) Touch(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE boards SET updated_at = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("touching board: %w", err)
	}
	return requireRow(res, "board", id)
}

func (r *SQLiteBoardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	return requireRow(res, "board", id)
}

func scanBoard(row rowScanner) (*domain.Board, error) {
	var b domain.Board
	var createdAt, updatedAt string
	if err := row.Scan(&b.ID, &b.OrgID, &b.Title, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning board: %w", err)
	}
	b.CreatedAt = parseTime(createdAt)
	b.UpdatedAt = parseTime(updatedAt)
	return &b, nil
}
