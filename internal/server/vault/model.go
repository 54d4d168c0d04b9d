package vault

import "time"

// Entry is one stored secret owned by exactly one account. The five content
// fields are opaque ciphertext strings: the client encrypts before writing
// and decrypts after reading, and this layer never inspects them. The store
// has no way to prove a caller actually encrypted what it sent; its
// contract is strictly "opaque bytes in, opaque bytes out".
//
// JSON field names mirror the wire documents, so an exported array can be
// fed back to import unchanged.
type Entry struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fields carries the five content strings of an entry, already encrypted
// by the caller.
type Fields struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}
