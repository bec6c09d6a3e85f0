package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	sessionKey     contextKey = "session"
	accessTokenKey contextKey = "access_token"
)

// AccessToken is the raw bearer token of the request and its expiry.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// WithSession stores the caller on the context.
func WithSession(ctx context.Context, session user.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext returns the caller set by AuthRequired.
func SessionFromContext(ctx context.Context) (user.Session, bool) {
	session, ok := ctx.Value(sessionKey).(user.Session)
	return session, ok
}

func AccessTokenFromContext(ctx context.Context) (AccessToken, bool) {
	token, ok := ctx.Value(accessTokenKey).(AccessToken)
	return token, ok
}

// AuthRequired turns verified access-token claims into a user.Session.
// It must run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if token == nil {
				response.HandleError(w, user.ErrUnauthenticated)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if jwtService.IsTokenRevoked(r.Context(), raw) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			session, ok := sessionFromClaims(claims)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := WithSession(r.Context(), session)
			ctx = context.WithValue(ctx, accessTokenKey, AccessToken{Value: raw, ExpiresAt: token.Expiration()})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func sessionFromClaims(claims map[string]interface{}) (user.Session, bool) {
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || !user.Role(role).Valid() {
		return user.Session{}, false
	}

	session := user.Session{UserID: userID, Role: user.Role(role)}
	session.Email, _ = claims["email"].(string)
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		session.EmployeeID = &employeeID
	}
	return session, true
}
