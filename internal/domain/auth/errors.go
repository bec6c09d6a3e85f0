package auth

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked   = errors.New("refresh token has been revoked")
	ErrPasswordMismatch      = errors.New("current password is incorrect")
	ErrSamePassword          = errors.New("new password must differ from the current password")
	ErrOAuthNotConfigured    = errors.New("google sign-in is not configured")
	ErrOAuthStateMismatch    = errors.New("oauth state mismatch")
	ErrAccountNotProvisioned = errors.New("no account is registered for this google email")
)
