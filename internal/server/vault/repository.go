package vault

import (
	"context"
)

// Repository persists vault entries. Update and Delete are conditional on
// the (id, owner) pair matching a stored record. A mismatch on either,
// including an id that exists but belongs to someone else, reports
// common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	GetByUser(ctx context.Context, userID string) ([]*Entry, error)
	Update(ctx context.Context, entry *Entry) (*Entry, error)
	Delete(ctx context.Context, id string, userID string) error
}
