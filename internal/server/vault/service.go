package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"passvault/internal/common"
	"passvault/internal/logging"
)

// Service implements per-owner CRUD over vault entries. Every operation is
// scoped to the owner identifier extracted from a verified token; an
// identity can never observe, mutate or remove another identity's entry,
// and "exists but not mine" is reported exactly like "does not exist".
type Service struct {
	repo   Repository
	logger logging.Logger
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("module", "vault"),
	}
}

// List returns all entries owned by ownerID in insertion order.
func (s *Service) List(ctx context.Context, ownerID string) ([]*Entry, error) {
	entries, err := s.repo.GetByUser(ctx, ownerID)
	if err != nil {
		s.logger.Error(ctx, "error listing entries", "error", err.Error())
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return entries, nil
}

// Create stamps owner and timestamps, assigns a new identifier and persists
// the entry. Fields arrive already encrypted by the caller.
func (s *Service) Create(ctx context.Context, ownerID string, f Fields) (*Entry, error) {
	entry := &Entry{
		UserID:   ownerID,
		Title:    f.Title,
		Username: f.Username,
		Password: f.Password,
		URL:      f.URL,
		Notes:    f.Notes,
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		s.logger.Error(ctx, "error creating entry", "error", err.Error())
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	return created, nil
}

// Update performs a conditional update matching both id and owner and
// refreshes the modification timestamp. ErrNotFound covers both an absent
// id and an id owned by someone else.
func (s *Service) Update(ctx context.Context, id string, ownerID string, f Fields) (*Entry, error) {
	if uuid.Validate(id) != nil {
		// A non-identifier can never match a stored record; same outcome
		// as an unknown id.
		return nil, common.ErrNotFound
	}

	entry := &Entry{
		ID:       id,
		UserID:   ownerID,
		Title:    f.Title,
		Username: f.Username,
		Password: f.Password,
		URL:      f.URL,
		Notes:    f.Notes,
	}

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "error updating entry", "error", err.Error())
		return nil, fmt.Errorf("error updating entry: %w", err)
	}

	return updated, nil
}

// Delete removes the entry matching both id and owner; ErrNotFound when no
// record matched.
func (s *Service) Delete(ctx context.Context, id string, ownerID string) error {
	if uuid.Validate(id) != nil {
		return common.ErrNotFound
	}

	err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		s.logger.Error(ctx, "error deleting entry", "error", err.Error())
		return fmt.Errorf("error deleting entry: %w", err)
	}

	return nil
}
