package auth

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	LoginWithGoogle(ctx context.Context, googleEmail string) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, session user.Session, req LogoutRequest) error
	ChangePassword(ctx context.Context, session user.Session, req ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	CreateIdentity(ctx context.Context, req CreateIdentityRequest) (CreatedIdentity, error)
	DeleteIdentityByEmployeeID(ctx context.Context, employeeID string) error
}
