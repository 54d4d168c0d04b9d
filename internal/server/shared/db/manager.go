package db

import (
	"context"
	"database/sql"

	"passvault/internal/server/users"
	"passvault/internal/server/vault"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Users() users.Repository
	Entries() vault.Repository
}
