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

// SQLiteListRepo implements ListRepo using a SQLite database.
type SQLiteListRepo struct {
	db db.DBTX
}

func NewSQLiteListRepo(conn db.DBTX) *SQLiteListRepo {
	return &SQLiteListRepo{db: conn}
}

const listColumns = `id, board_id, title, order_index, created_at, updated_at`

func (r *SQLiteListRepo) Create(ctx context.Context, l *domain.List) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO lists (`+listColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.BoardID, l.Title, l.Order, formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting list: %w", err)
	}
	return nil
}

func (r *SQLiteListRepo) GetByID(ctx context.Context, id string) (*domain.List, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+listColumns+` FROM lists WHERE id = ?`, id)
	l, err := scanList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *SQLiteListRepo) ListByBoard(ctx context.Context, boardID string) ([]domain.List, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+listColumns+` FROM lists WHERE board_id = ? ORDER BY order_index, created_at, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing lists: %w", err)
	}
	defer rows.Close()

	var lists []domain.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lists: %w", err)
	}
	return lists, nil
}

func (r *SQLiteListRepo) CountByBoard(ctx context.Context, boardID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lists WHERE board_id = ?`, boardID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting lists: %w", err)
	}
	return n, nil
}

func (r *SQLiteListRepo) UpdateTitle(ctx context.Context, id, title string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE lists SET title = ?, updated_at = ? WHERE id = ?`, title, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("updating list: %w", err)
	}
	return requireRow(res, "list", id)
}

func (r *SQLiteListRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting list: %w", err)
	}
	return requireRow(res, "list", id)
}

func (r *SQLiteListRepo) SetOrder(ctx context.Context, boardID string, ids []string) error {
	now := nowUTC()
	for i, id := range ids {
		res, err := r.db.ExecContext(ctx,
			`UPDATE lists SET order_index = ?, updated_at = ? WHERE id = ? AND board_id = ?`,
			i, now, id, boardID)
		if err != nil {
			return fmt.Errorf("updating list order: %w", err)
		}
		if err := requireRow(res, "list", id); err != nil {
			return err
		}
	}
	return nil
}

func scanList(row rowScanner) (domain.List, error) {
	var l domain.List
	var createdAt, updatedAt string
	if err := row.Scan(&l.ID, &l.BoardID, &l.Title, &l.Order, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return l, err
		}
		return l, fmt.Errorf("scanning list: %w", err)
	}
	l.CreatedAt = parseTime(createdAt)
	l.UpdatedAt = parseTime(updatedAt)
	return l, nil
}
