package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

// requireSession writes 401 and returns false when AuthRequired did not run.
func requireSession(w http.ResponseWriter, r *http.Request) (user.Session, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.HandleError(w, user.ErrUnauthenticated)
		return user.Session{}, false
	}
	return session, true
}

// decodeJSON writes 400 and returns false on a malformed body.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}
