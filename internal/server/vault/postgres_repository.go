package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"passvault/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, entry *Entry) (*Entry, error) {

	query :=
		`INSERT INTO vault_entries (user_id, title, username, password, url, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Title, entry.Username, entry.Password, entry.URL, entry.Notes).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) ([]*Entry, error) {

	query :=
		`SELECT id, user_id, title, username, password, url, notes, created_at, updated_at
		 FROM vault_entries
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry := &Entry{}
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Title, &entry.Username,
			&entry.Password, &entry.URL, &entry.Notes, &entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// Update matches on both id and owner in a single conditional statement, so
// the database's per-row atomicity settles concurrent writers.
func (r *PostgresRepository) Update(ctx context.Context, entry *Entry) (*Entry, error) {

	query :=
		`UPDATE vault_entries
		 SET title = $3, username = $4, password = $5, url = $6, notes = $7, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, username, password, url, notes, created_at, updated_at
		 `

	updated := &Entry{}
	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.UserID, entry.Title, entry.Username, entry.Password, entry.URL, entry.Notes).
		Scan(&updated.ID, &updated.UserID, &updated.Title, &updated.Username,
			&updated.Password, &updated.URL, &updated.Notes, &updated.CreatedAt, &updated.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {

	query :=
		`DELETE FROM vault_entries
		 WHERE id = $1 AND user_id = $2
		 `

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}

	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
