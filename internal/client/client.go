// Package client implements the HTTP API client for the passvault server.
// It carries the bearer token across calls and maps response statuses back
// to the shared sentinel errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"passvault/internal/common"
)

// Entry mirrors the wire representation of a vault entry. The five content
// fields hold ciphertext; decryption happens in the caller.
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

// Fields carries the five encrypted content strings of an entry.
type Fields struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

// ImportResult reports per-record outcomes of a bulk import.
type ImportResult struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
	Failed   int  `json:"failed"`
}

type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken stores the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (c *Client) Signup(ctx context.Context, email, password string) error {
	var resp tokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/signup", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp tokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *Client) ListEntries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.doJSON(ctx, http.MethodGet, "/vault", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) CreateEntry(ctx context.Context, f Fields) (*Entry, error) {
	entry := &Entry{}
	if err := c.doJSON(ctx, http.MethodPost, "/vault", f, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (c *Client) UpdateEntry(ctx context.Context, id string, f Fields) (*Entry, error) {
	body := struct {
		ID string `json:"_id"`
		Fields
	}{ID: id, Fields: f}

	entry := &Entry{}
	if err := c.doJSON(ctx, http.MethodPatch, "/vault", body, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/vault?id="+id, nil, nil)
}

// Export returns the raw JSON array document as served by the server.
func (c *Client) Export(ctx context.Context) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/vault/export", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := statusToError(resp.StatusCode); err != nil {
		return nil, err
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) Import(ctx context.Context, document []byte) (*ImportResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/vault/import", bytes.NewReader(document))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := statusToError(resp.StatusCode); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpc.Do(req)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := statusToError(resp.StatusCode); err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

func statusToError(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusBadRequest:
		return common.ErrValidation
	case status == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case status == http.StatusNotFound:
		return common.ErrNotFound
	case status == http.StatusConflict:
		return common.ErrConflict
	default:
		return common.ErrInternal
	}
}
