package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// ListItems returns every stored item of the given kind, oldest first.
func (s *Store) ListItems(ctx context.Context, kind Kind) ([]Item, error) {
	spec, ok := kindSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}

	query := fmt.Sprintf(`SELECT id, %s, COALESCE(embedding, '')`, spec.textColumn)
	if spec.hasParent {
		query += `, work_experience_id`
	}
	query += fmt.Sprintf(` FROM %s ORDER BY id`, spec.table)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", spec.wireName, err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item := Item{Kind: kind}
		if spec.hasParent {
			err = rows.Scan(&item.ID, &item.Text, &item.Embedding, &item.ParentID)
		} else {
			err = rows.Scan(&item.ID, &item.Text, &item.Embedding)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", spec.wireName, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", spec.wireName, err)
	}
	return items, nil
}

// InsertItem stores a new item and returns it with its assigned ID. A unique
// constraint hit surfaces as *DuplicateError.
func (s *Store) InsertItem(ctx context.Context, kind Kind, text, embedding string, parentID *int) (Item, error) {
	spec, ok := kindSpecs[kind]
	if !ok {
		return Item{}, fmt.Errorf("unknown item kind %q", kind)
	}

	var (
		query string
		args  []any
	)
	if spec.hasParent {
		query = fmt.Sprintf(
			`INSERT INTO %s (%s, embedding, work_experience_id) VALUES ($1, $2, $3) RETURNING id`,
			spec.table, spec.textColumn,
		)
		args = []any{text, embedding, parentID}
	} else {
		query = fmt.Sprintf(
			`INSERT INTO %s (%s, embedding) VALUES ($1, $2) RETURNING id`,
			spec.table, spec.textColumn,
		)
		args = []any{text, embedding}
	}

	var id int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Item{}, &DuplicateError{Kind: kind, Text: text}
		}
		return Item{}, fmt.Errorf("failed to insert %s: %w", spec.wireName, err)
	}

	return Item{ID: id, Kind: kind, Text: text, Embedding: embedding, ParentID: parentID}, nil
}

// DeleteItem removes an item. Deleting an experience also removes the
// accomplishments referencing it, in one transaction, so no accomplishment is
// left pointing at a missing row.
func (s *Store) DeleteItem(ctx context.Context, kind Kind, id int) error {
	spec, ok := kindSpecs[kind]
	if !ok {
		return fmt.Errorf("unknown item kind %q", kind)
	}

	if kind == KindExperience {
		return s.deleteExperience(ctx, id)
	}

	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, spec.table), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", spec.wireName, id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return nil
}

func (s *Store) deleteExperience(ctx context.Context, id int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM accomplishments WHERE work_experience_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete linked accomplishments: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM work_experience WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work_experience %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: KindExperience, ID: id}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// SaveDocument upserts the singleton saved-resume document.
func (s *Store) SaveDocument(ctx context.Context, content string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO resume (id, content) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET content = $1`,
		content,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume document: %w", err)
	}
	return nil
}

// GetDocument returns the saved resume document, or "{}" when none has been
// saved yet.
func (s *Store) GetDocument(ctx context.Context) (string, error) {
	var content string
	err := s.pool.QueryRow(ctx, `SELECT content FROM resume WHERE id = 1`).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "{}", nil
		}
		return "", fmt.Errorf("failed to get resume document: %w", err)
	}
	return content, nil
}

// ListMissingEmbeddings returns items of the kind whose embedding column is
// empty, for the backfill command.
func (s *Store) ListMissingEmbeddings(ctx context.Context, kind Kind) ([]Item, error) {
	spec, ok := kindSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}

	query := fmt.Sprintf(
		`SELECT id, %s FROM %s WHERE embedding IS NULL OR embedding = '' ORDER BY id`,
		spec.textColumn, spec.table,
	)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s missing embeddings: %w", spec.wireName, err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item := Item{Kind: kind}
		if err := rows.Scan(&item.ID, &item.Text); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", spec.wireName, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateEmbedding stores a freshly computed embedding on an existing item.
func (s *Store) UpdateEmbedding(ctx context.Context, kind Kind, id int, embedding string) error {
	spec, ok := kindSpecs[kind]
	if !ok {
		return fmt.Errorf("unknown item kind %q", kind)
	}

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET embedding = $1 WHERE id = $2`, spec.table),
		embedding, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s %d embedding: %w", spec.wireName, id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return nil
}
