package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/boardwalk/internal/db"
	"github.com/alexanderramin/boardwalk/internal/domain"
)

// SQLiteCardRepo implements CardRepo using a SQLite database.
type SQLiteCardRepo struct {
	db db.DBTX
}

func NewSQLiteCardRepo(conn db.DBTX) *SQLiteCardRepo {
	return &SQLiteCardRepo{db: conn}
}

const cardColumns = `c.id, c.list_id, c.title, c.description, c.order_index, c.created_at, c.updated_at`

func (r *SQLiteCardRepo) Create(ctx context.Context, c *domain.Card) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (id, list_id, title, description, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ListID, c.Title, nullableString(c.Description), c.Order,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting card: %w", err)
	}
	return nil
}

func (r *SQLiteCardRepo) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards c WHERE c.id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteCardRepo) GetInOrg(ctx context.Context, id, orgID string) (*domain.CardWithList, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+`, l.title
		FROM cards c
		JOIN lists l ON l.id = c.list_id
		JOIN boards b ON b.id = l.board_id
		WHERE c.id = ? AND b.org_id = ?`, id, orgID)

	var out domain.CardWithList
	var desc sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&out.ID, &out.ListID, &out.Title, &desc, &out.Order, &createdAt, &updatedAt, &out.ListTitle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning card: %w", err)
	}
	out.Description = stringPtr(desc)
	out.CreatedAt = parseTime(createdAt)
	out.UpdatedAt = parseTime(updatedAt)
	return &out, nil
}

func (r *SQLiteCardRepo) ListByList(ctx context.Context, listID string) ([]domain.Card, error) {
	return r.query(ctx,
		`SELECT `+cardColumns+` FROM cards c WHERE c.list_id = ? ORDER BY c.order_index, c.created_at, c.id`, listID)
}

func (r *SQLiteCardRepo) ListByBoard(ctx context.Context, boardID string) ([]domain.Card, error) {
	return r.query(ctx,
		`SELECT `+cardColumns+`
		FROM cards c
		JOIN lists l ON l.id = c.list_id
		WHERE l.board_id = ?
		ORDER BY l.order_index, l.id, c.order_index, c.created_at, c.id`, boardID)
}

func (r *SQLiteCardRepo) CountByList(ctx context.Context, listID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE list_id = ?`, listID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cards: %w", err)
	}
	return n, nil
}

func (r *SQLiteCardRepo) Update(ctx context.Context, c *domain.Card) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cards SET title = ?, description = ?, updated_at = ? WHERE id = ?`,
		c.Title, nullableString(c.Description), formatTime(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("updating card: %w", err)
	}
	return requireRow(res, "card", c.ID)
}

func (r *SQLiteCardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}
	return requireRow(res, "card", id)
}

func (r *SQLiteCardRepo) Place(ctx context.Context, boardID, listID string, ids []string) error {
	now := nowUTC()
	for i, id := range ids {
		res, err := r.db.ExecContext(ctx,
			`UPDATE cards SET list_id = ?, order_index = ?, updated_at = ?
			WHERE id = ? AND list_id IN (SELECT id FROM lists WHERE board_id = ?)`,
			listID, i, now, id, boardID)
		if err != nil {
			return fmt.Errorf("updating card order: %w", err)
		}
		if err := requireRow(res, "card", id); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteCardRepo) query(ctx context.Context, query string, args ...any) ([]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return cards, nil
}

func scanCard(row rowScanner) (domain.Card, error) {
	var c domain.Card
	var desc sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&c.ID, &c.ListID, &c.Title, &desc, &c.Order, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("scanning card: %w", err)
	}
	c.Description = stringPtr(desc)
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return c, nil
}
