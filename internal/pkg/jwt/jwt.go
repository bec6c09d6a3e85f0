package jwt

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/tokenstore"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	ParseRefreshToken(token string) (userID string, expiresAt time.Time, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(ctx context.Context, token string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, token string) bool
}

type JWTService struct {
	accessTokenExpiration  time.Duration
	refreshTokenExpiration time.Duration
	secureCookie           bool
	tokenAuth              *jwtauth.JWTAuth
	revoked                tokenstore.Store
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration, refreshTokenExpiration time.Duration, secureCookie bool, revoked tokenstore.Store) Service {
	return &JWTService{
		accessTokenExpiration:  accessTokenExpiration,
		refreshTokenExpiration: refreshTokenExpiration,
		secureCookie:           secureCookie,
		tokenAuth:              jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revoked:                revoked,
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":     userID,
		"email":       email,
		"employee_id": j.returnValueOrNil(employeeID),
		"role":        string(role),
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.refreshTokenExpiration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expiresAt,
		"type":    TokenTypeRefresh,
		"jti":     uuid.NewString(),
	})
	return tokenString, expiresAt, err
}

// ParseRefreshToken verifies signature, expiry and token type.
func (j *JWTService) ParseRefreshToken(tokenString string) (string, time.Time, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", time.Time{}, err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeRefresh {
		return "", time.Time{}, jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", time.Time{}, jwt.ErrInvalidJWT()
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", time.Time{}, jwt.ErrInvalidJWT()
	}

	return userID, token.Expiration(), nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeToken marks an access token as revoked until it would have expired anyway.
func (j *JWTService) RevokeToken(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return j.revoked.Set(ctx, tokenstore.Key(tokenstore.PrefixRevoked, token), "1", ttl)
}

func (j *JWTService) IsTokenRevoked(ctx context.Context, token string) bool {
	_, err := j.revoked.Get(ctx, tokenstore.Key(tokenstore.PrefixRevoked, token))
	if err == nil {
		return true
	}
	// Fail closed when the store is unreachable.
	return !errors.Is(err, tokenstore.ErrNotFound)
}

func (j *JWTService) returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	} else {
		return *value
	}
}
