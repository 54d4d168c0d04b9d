package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"passvault/internal/common"
	"passvault/internal/server/auth"
	"passvault/internal/server/transfer"
	"passvault/internal/server/vault"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "error encoding response", "error", err.Error())
	}
}

// writeError maps a domain error to its HTTP status. Only the error kind
// and a short message ever reach the caller; wrapped internals (driver
// messages and the like) stay in the server log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: trimmedMessage(err)})
	case errors.Is(err, common.ErrUnauthorized):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	case errors.Is(err, common.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found or unauthorized"})
	case errors.Is(err, common.ErrConflict):
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: "Email already exists"})
	default:
		s.logger.Error(r.Context(), "internal error", "path", r.URL.Path, "error", err.Error())
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

// trimmedMessage strips the sentinel prefix from validation errors so the
// response carries just the human-readable part.
func trimmedMessage(err error) string {
	msg := err.Error()
	prefix := common.ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	token, err := s.users.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "account created", "email", req.Email)
	s.writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) handleVault(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	switch r.Method {
	case http.MethodGet:
		s.handleVaultList(w, r, identity)
	case http.MethodPost:
		s.handleVaultCreate(w, r, identity)
	case http.MethodPatch:
		s.handleVaultUpdate(w, r, identity)
	case http.MethodDelete:
		s.handleVaultDelete(w, r, identity)
	default:
		s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	}
}

func (s *Server) handleVaultList(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	entries, err := s.vault.List(r.Context(), identity.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if entries == nil {
		entries = []*vault.Entry{}
	}

	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleVaultCreate(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	var fields vault.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	entry, err := s.vault.Create(r.Context(), identity.UserID, fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleVaultUpdate(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	var req struct {
		ID string `json:"_id"`
		vault.Fields
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	if req.ID == "" {
		s.writeError(w, r, fmt.Errorf("%w: missing _id", common.ErrValidation))
		return
	}

	entry, err := s.vault.Update(r.Context(), req.ID, identity.UserID, req.Fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleVaultDelete(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	id := r.URL.Query().Get("id")
	if id == "" {
		s.writeError(w, r, fmt.Errorf("%w: missing id", common.ErrValidation))
		return
	}

	if err := s.vault.Delete(r.Context(), id, identity.UserID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	if r.Method != http.MethodGet {
		s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	entries, err := s.transfer.Export(r.Context(), identity.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if entries == nil {
		entries = []*vault.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+transfer.ExportFilename)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		s.logger.Error(r.Context(), "error encoding export", "error", err.Error())
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	if r.Method != http.MethodPost {
		s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	document, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: error reading body", common.ErrValidation))
		return
	}

	result, err := s.transfer.Import(r.Context(), identity.UserID, document)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*transfer.Result
	}{Success: true, Result: result})
}
