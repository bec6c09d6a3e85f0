package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/tokenstore"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	tokens      tokenstore.Store
	email       email.EmailService
	audit       auditlog.AuditLogService
	frontendURL string
	bcryptCost  int
	now         func() time.Time
}

func NewAuthService(
	userRepository user.UserRepository,
	jwtService jwt.Service,
	tokens tokenstore.Store,
	emailService email.EmailService,
	auditService auditlog.AuditLogService,
	frontendURL string,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		tokens:         tokens,
		email:          emailService,
		audit:          auditService,
		frontendURL:    frontendURL,
		bcryptCost:     bcrypt.DefaultCost,
		now:            time.Now,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// issueTokens signs a token pair and remembers the refresh token until it expires.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	ttl := time.Until(time.Unix(tokenResponse.RefreshTokenExpiresIn, 0))
	if err := a.tokens.Set(ctx, tokenstore.Key(tokenstore.PrefixRefresh, tokenResponse.RefreshToken), u.ID, ttl); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	if err := a.UserRepository.UpdateLastLogin(ctx, u.ID, a.now()); err != nil {
		slog.Warn("failed to update last login", "user_id", u.ID, "error", err)
	}

	a.audit.Record(ctx, u.ID, auditlog.ActionLogin, "")
	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, googleEmail)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrAccountNotProvisioned
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user data by email: %w", err)
	}

	return a.issueTokens(ctx, userData)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userID, _, err := a.Service.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	storedUserID, err := a.tokens.Get(ctx, tokenstore.Key(tokenstore.PrefixRefresh, req.RefreshToken))
	if err != nil {
		if errors.Is(err, tokenstore.ErrNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if storedUserID != userID {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, session user.Session, req auth.LogoutRequest) error {
	if req.AccessToken != "" {
		if err := a.Service.RevokeToken(ctx, req.AccessToken, time.Unix(req.AccessTokenExpiresAt, 0)); err != nil {
			return fmt.Errorf("failed to revoke access token: %w", err)
		}
	}

	if req.RefreshToken != "" {
		key := tokenstore.Key(tokenstore.PrefixRefresh, req.RefreshToken)
		owner, err := a.tokens.Get(ctx, key)
		switch {
		case err == nil && owner == session.UserID:
			if err := a.tokens.Delete(ctx, key); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		case err != nil && !errors.Is(err, tokenstore.ErrNotFound):
			return fmt.Errorf("failed to look up refresh token: %w", err)
		}
	}

	a.audit.Record(ctx, session.UserID, auditlog.ActionLogout, "")
	return nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, session user.Session, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByID(ctx, session.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrPasswordMismatch
	}
	if req.CurrentPassword == req.NewPassword {
		return auth.ErrSamePassword
	}

	hashed, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := a.UserRepository.UpdatePassword(ctx, userData.ID, hashed); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.audit.Record(ctx, session.UserID, auditlog.ActionPasswordChange, "")
	return nil
}

// ForgotPassword implements auth.AuthService.
// Unknown emails succeed silently so the endpoint does not reveal which accounts exist.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Info("password reset requested for unknown email", "email", req.Email)
			return nil
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	token, err := randomToken(32)
	if err != nil {
		return err
	}
	if err := a.tokens.Set(ctx, tokenstore.Key(tokenstore.PrefixReset, token), userData.ID, resetTokenTTL); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetLink := a.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
	expiresAt := a.now().Add(resetTokenTTL).UTC().Format("2006-01-02 15:04 MST")
	if err := a.email.SendPasswordReset(userData.Email, resetLink, expiresAt); err != nil {
		slog.Error("failed to send password reset email", "user_id", userData.ID, "error", err)
	}

	return nil
}

// ResetPassword implements auth.AuthService.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	key := tokenstore.Key(tokenstore.PrefixReset, req.Token)
	userID, err := a.tokens.Get(ctx, key)
	if err != nil {
		if errors.Is(err, tokenstore.ErrNotFound) {
			return auth.ErrInvalidToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hashed, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := a.UserRepository.UpdatePassword(ctx, userID, hashed); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrInvalidToken
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := a.tokens.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete used reset token", "user_id", userID, "error", err)
	}

	a.audit.Record(ctx, userID, auditlog.ActionPasswordReset, "")
	return nil
}

// CreateIdentity implements auth.AuthService.
func (a *AuthServiceImpl) CreateIdentity(ctx context.Context, req auth.CreateIdentityRequest) (auth.CreatedIdentity, error) {
	if err := req.Validate(); err != nil {
		return auth.CreatedIdentity{}, err
	}

	var created auth.CreatedIdentity
	password := req.Password
	if password == "" {
		generated, err := randomToken(12)
		if err != nil {
			return auth.CreatedIdentity{}, err
		}
		password = generated
		created.TemporaryPassword = generated
	}

	hashed, err := a.hashPassword(password)
	if err != nil {
		return auth.CreatedIdentity{}, err
	}

	created.User, err = a.UserRepository.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: &hashed,
		Role:         req.Role,
		EmployeeID:   req.EmployeeID,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return auth.CreatedIdentity{}, err
		}
		return auth.CreatedIdentity{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// DeleteIdentityByEmployeeID implements auth.AuthService. Missing identities are ignored.
func (a *AuthServiceImpl) DeleteIdentityByEmployeeID(ctx context.Context, employeeID string) error {
	if err := a.UserRepository.DeleteByEmployeeID(ctx, employeeID); err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
