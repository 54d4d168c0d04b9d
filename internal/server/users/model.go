package users

import "time"

// Account is an identity record. Email is unique across all accounts and
// case-sensitive as stored; PasswordHash is a bcrypt hash (salt embedded),
// never the plaintext. Accounts are created once at signup and never
// mutated or deleted by this layer.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
