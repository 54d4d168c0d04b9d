package db

import (
	"context"
	"database/sql"

	"passvault/internal/server/users"
	"passvault/internal/server/vault"
)

type InMemoryRepositoryManager struct {
	users   users.Repository
	entries vault.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) Close() error {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m InMemoryRepositoryManager) Entries() vault.Repository {
	return m.entries
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{
		users:   users.NewInMemoryRepository(),
		entries: vault.NewInMemoryRepository(),
	}
}
