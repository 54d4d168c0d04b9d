package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"passvault/internal/common"
)

// InMemoryRepository keeps accounts in process memory. It backs unit tests
// and the -m dev mode; nothing survives a restart.
type InMemoryRepository struct {
	mu       sync.RWMutex
	byEmail  map[string]*Account
	accounts map[string]*Account
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byEmail:  make(map[string]*Account),
		accounts: make(map[string]*Account),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, account *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.ErrConflict
	}

	stored := &Account{
		ID:           uuid.NewString(),
		Email:        account.Email,
		PasswordHash: append([]byte(nil), account.PasswordHash...),
		CreatedAt:    time.Now(),
	}

	r.byEmail[stored.Email] = stored
	r.accounts[stored.ID] = stored

	copy := *stored
	return &copy, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}

	copy := *stored
	return &copy, nil
}
