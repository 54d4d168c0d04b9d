package vault

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"passvault/internal/common"
)

// InMemoryRepository keeps entries in process memory in insertion order.
// It backs unit tests and the -m dev mode.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries []*Entry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(ctx context.Context, entry *Entry) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := &Entry{
		ID:        uuid.NewString(),
		UserID:    entry.UserID,
		Title:     entry.Title,
		Username:  entry.Username,
		Password:  entry.Password,
		URL:       entry.URL,
		Notes:     entry.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.entries = append(r.entries, stored)

	copy := *stored
	return &copy, nil
}

func (r *InMemoryRepository) GetByUser(ctx context.Context, userID string) ([]*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*Entry{}
	for _, stored := range r.entries {
		if stored.UserID == userID {
			copy := *stored
			result = append(result, &copy)
		}
	}

	return result, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, entry *Entry) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.entries {
		if stored.ID == entry.ID && stored.UserID == entry.UserID {
			stored.Title = entry.Title
			stored.Username = entry.Username
			stored.Password = entry.Password
			stored.URL = entry.URL
			stored.Notes = entry.Notes
			stored.UpdatedAt = time.Now()

			copy := *stored
			return &copy, nil
		}
	}

	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, stored := range r.entries {
		if stored.ID == id && stored.UserID == userID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}

	return common.ErrNotFound
}
