package httpapi

import (
	"net/http"
	"strings"

	"passvault/internal/common"
	"passvault/internal/server/auth"
)

// authedHandler is a handler that additionally receives the verified caller
// identity.
type authedHandler func(w http.ResponseWriter, r *http.Request, identity auth.Identity)

// withAuth extracts the Bearer token from the Authorization header and
// verifies it before invoking next. Missing header, wrong scheme, bad
// signature and expired token all produce the same 401 response.
func (s *Server) withAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, r, common.ErrUnauthorized)
			return
		}

		identity, err := s.users.Verify(token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		next(w, r, identity)
	}
}
