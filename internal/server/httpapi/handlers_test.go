package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passvault/internal/cryptox"
	"passvault/internal/logging"
	"passvault/internal/server/config"
	"passvault/internal/server/shared/db"
	"passvault/internal/server/transfer"
	"passvault/internal/server/users"
	"passvault/internal/server/vault"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	rm := db.NewInMemoryRepositoryManager()
	cfg := &config.Config{SecretKey: "test-secret", TokenValidityDuration: time.Hour}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	us := users.NewService(rm.Users(), cfg)
	vs := vault.NewService(rm.Entries(), logger)
	ts := transfer.NewService(rm.Entries(), logger)

	srv := httptest.NewServer(NewServer("", logger, us, vs, ts).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, raw
}

func signup(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()

	resp, body := doRequest(t, srv, http.MethodPost, "/auth/signup", "",
		map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var tr struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &tr))
	require.NotEmpty(t, tr.Token)
	return tr.Token
}

func TestSignup(t *testing.T) {
	srv := newTestServer(t)

	// missing fields
	resp, _ := doRequest(t, srv, http.MethodPost, "/auth/signup", "",
		map[string]string{"email": "", "password": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// ok
	signup(t, srv, "a@x.com", "pw1")

	// duplicate email
	resp, _ = doRequest(t, srv, http.MethodPost, "/auth/signup", "",
		map[string]string{"email": "a@x.com", "password": "pw2"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)
	signup(t, srv, "a@x.com", "pw1")

	resp, body := doRequest(t, srv, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "a@x.com", "password": "pw1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var tr struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &tr))
	assert.NotEmpty(t, tr.Token)

	resp, _ = doRequest(t, srv, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "nobody@x.com", "password": "pw"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/vault", "/vault/export"} {
		resp, _ := doRequest(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, _ := doRequest(t, srv, http.MethodGet, "/vault", "garbage.token.value", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestVaultScenario walks the full lifecycle: signup, create, list, update,
// delete, list empty. Fields are encrypted the way a real client would.
func TestVaultScenario(t *testing.T) {
	srv := newTestServer(t)
	token := signup(t, srv, "a@x.com", "pw1")

	codec, err := cryptox.NewCodec("client-secret")
	require.NoError(t, err)

	titleCT, err := codec.Encrypt("Bank")
	require.NoError(t, err)

	// create
	resp, body := doRequest(t, srv, http.MethodPost, "/vault", token,
		map[string]string{"title": titleCT, "username": "u", "password": "p", "url": "", "notes": ""})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var created vault.Entry
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, titleCT, created.Title)

	// the stored title is ciphertext, decryptable by the client only
	plain, err := codec.Decrypt(created.Title)
	require.NoError(t, err)
	assert.Equal(t, "Bank", plain)

	// list
	resp, body = doRequest(t, srv, http.MethodGet, "/vault", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []vault.Entry
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, created.ID, entries[0].ID)

	// update
	title2CT, err := codec.Encrypt("Bank2")
	require.NoError(t, err)
	resp, body = doRequest(t, srv, http.MethodPatch, "/vault", token,
		map[string]string{"_id": created.ID, "title": title2CT, "username": "u", "password": "p", "url": "", "notes": ""})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var updated vault.Entry
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, title2CT, updated.Title)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	// delete
	resp, _ = doRequest(t, srv, http.MethodDelete, "/vault?id="+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// list is empty again
	resp, body = doRequest(t, srv, http.MethodGet, "/vault", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &entries))
	assert.Empty(t, entries)
}

func TestVaultUpdate_MissingID(t *testing.T) {
	srv := newTestServer(t)
	token := signup(t, srv, "a@x.com", "pw1")

	resp, _ := doRequest(t, srv, http.MethodPatch, "/vault", token,
		map[string]string{"title": "t"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVaultDelete_MissingID(t *testing.T) {
	srv := newTestServer(t)
	token := signup(t, srv, "a@x.com", "pw1")

	resp, _ := doRequest(t, srv, http.MethodDelete, "/vault", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestOwnershipIsolation verifies that another account's entries respond
// exactly like missing ones.
func TestOwnershipIsolation(t *testing.T) {
	srv := newTestServer(t)
	tokenA := signup(t, srv, "a@x.com", "pw1")
	tokenB := signup(t, srv, "b@x.com", "pw2")

	resp, body := doRequest(t, srv, http.MethodPost, "/vault", tokenA,
		map[string]string{"title": "t", "username": "u", "password": "p", "url": "", "notes": ""})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created vault.Entry
	require.NoError(t, json.Unmarshal(body, &created))

	// B sees an empty vault
	resp, body = doRequest(t, srv, http.MethodGet, "/vault", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []vault.Entry
	require.NoError(t, json.Unmarshal(body, &entries))
	assert.Empty(t, entries)

	// B's update and delete of A's entry both report 404
	resp, _ = doRequest(t, srv, http.MethodPatch, "/vault", tokenB,
		map[string]string{"_id": created.ID, "title": "hijacked"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, srv, http.MethodDelete, "/vault?id="+created.ID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A still has the entry
	resp, body = doRequest(t, srv, http.MethodGet, "/vault", tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "t", entries[0].Title)
}

func TestExportImport(t *testing.T) {
	srv := newTestServer(t)
	token := signup(t, srv, "a@x.com", "pw1")

	for i := 0; i < 2; i++ {
		resp, _ := doRequest(t, srv, http.MethodPost, "/vault", token,
			map[string]string{"title": "t", "username": "u", "password": "p", "url": "", "notes": ""})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// export: attachment headers and a JSON array body
	resp, body := doRequest(t, srv, http.MethodGet, "/vault/export", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "attachment; filename=vault-export.json", resp.Header.Get("Content-Disposition"))

	var exported []vault.Entry
	require.NoError(t, json.Unmarshal(body, &exported))
	require.Len(t, exported, 2)

	// import the same document back: count doubles
	resp, body = doRequest(t, srv, http.MethodPost, "/vault/import", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var result struct {
		Success  bool `json:"success"`
		Imported int  `json:"imported"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Imported)

	resp, body = doRequest(t, srv, http.MethodGet, "/vault", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []vault.Entry
	require.NoError(t, json.Unmarshal(body, &entries))
	assert.Len(t, entries, 4)
}

func TestImport_NotAnArray(t *testing.T) {
	srv := newTestServer(t)
	token := signup(t, srv, "a@x.com", "pw1")

	resp, _ := doRequest(t, srv, http.MethodPost, "/vault/import", token,
		[]byte(`{"title":"not an array"}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
