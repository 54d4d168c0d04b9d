package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passvault/internal/common"
)

func TestStatusToError(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusOK, nil},
		{http.StatusCreated, nil},
		{http.StatusBadRequest, common.ErrValidation},
		{http.StatusUnauthorized, common.ErrUnauthorized},
		{http.StatusNotFound, common.ErrNotFound},
		{http.StatusConflict, common.ErrConflict},
		{http.StatusInternalServerError, common.ErrInternal},
		{http.StatusBadGateway, common.ErrInternal},
	}

	for _, tt := range tests {
		err := statusToError(tt.status)
		if tt.want == nil {
			assert.NoError(t, err, "status %d", tt.status)
		} else {
			assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
		}
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var creds credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "a@x.com", creds.Email)

		json.NewEncoder(w).Encode(tokenResponse{Token: "tok123"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.False(t, c.IsAuthenticated())

	require.NoError(t, c.Login(context.Background(), "a@x.com", "pw"))
	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, "tok123", c.token)
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Entry{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok123")

	_, err := c.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestSignup_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Signup(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.False(t, c.IsAuthenticated())
}
