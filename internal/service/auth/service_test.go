package auth

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/tokenstore"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/memory"
	auditlogsvc "github.com/cmlabs-hris/payroll-backend-go/internal/service/auditlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt-0123456789"

type sentReset struct {
	to   string
	link string
}

type fakeEmailService struct {
	resets []sentReset
}

func (f *fakeEmailService) SendWelcome(to, employeeName, temporaryPassword, loginLink string) error {
	return nil
}

func (f *fakeEmailService) SendPasswordReset(to, resetLink, expiresAt string) error {
	f.resets = append(f.resets, sentReset{to: to, link: resetLink})
	return nil
}

type authFixture struct {
	svc      *AuthServiceImpl
	users    user.UserRepository
	jwt      jwt.Service
	tokens   tokenstore.Store
	email    *fakeEmailService
	auditLog auditlog.AuditLogRepository
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := memory.NewUserRepository()
	tokens := tokenstore.NewMemoryStore()
	jwtService := jwt.NewJWTService(testSecret, time.Hour, 24*time.Hour, false, tokens)
	mail := &fakeEmailService{}
	auditRepo := memory.NewAuditLogRepository()

	svc := NewAuthService(users, jwtService, tokens, mail, auditlogsvc.NewAuditLogService(auditRepo), "http://app.test").(*AuthServiceImpl)
	svc.bcryptCost = bcrypt.MinCost

	return &authFixture{svc: svc, users: users, jwt: jwtService, tokens: tokens, email: mail, auditLog: auditRepo}
}

func (f *authFixture) createUser(t *testing.T, email, password string, role user.Role) user.User {
	t.Helper()
	created, err := f.svc.CreateIdentity(context.Background(), auth.CreateIdentityRequest{
		Email:    email,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return created.User
}

func (f *authFixture) actions(t *testing.T) []auditlog.Action {
	t.Helper()
	entries, err := f.auditLog.List(context.Background(), auditlog.ListFilter{Limit: 100})
	require.NoError(t, err)
	var out []auditlog.Action
	for _, e := range entries {
		out = append(out, e.Action)
	}
	return out
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "admin@example.com", "password123", user.RoleAdmin)

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "Admin@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.RefreshTokenExpiresIn, resp.AccessTokenExpiresIn)

	stored, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
	assert.Contains(t, f.actions(t), auditlog.ActionLogin)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.createUser(t, "admin@example.com", "password123", user.RoleAdmin)

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "admin@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_ValidationError(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.createUser(t, "alice@example.com", "password123", user.RoleEmployee)

	resp, err := f.svc.LoginWithGoogle(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = f.svc.LoginWithGoogle(ctx, "stranger@example.com")
	assert.ErrorIs(t, err, auth.ErrAccountNotProvisioned)

	count, err := f.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "google sign-in must not create users")
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.createUser(t, "admin@example.com", "password123", user.RoleAdmin)

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)

	resp, err := f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.createUser(t, "admin@example.com", "password123", user.RoleAdmin)

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout_Success(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "admin@example.com", "password123", user.RoleAdmin)

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)

	session := user.Session{UserID: u.ID, Email: u.Email, Role: u.Role}
	err = f.svc.Logout(ctx, session, auth.LogoutRequest{
		AccessToken:          login.AccessToken,
		AccessTokenExpiresAt: login.AccessTokenExpiresIn,
		RefreshToken:         login.RefreshToken,
	})
	require.NoError(t, err)

	assert.True(t, f.jwt.IsTokenRevoked(ctx, login.AccessToken))

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
	assert.Contains(t, f.actions(t), auditlog.ActionLogout)
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "admin@example.com", "password123", user.RoleAdmin)
	session := user.Session{UserID: u.ID, Role: u.Role}

	err := f.svc.ChangePassword(ctx, session, auth.ChangePasswordRequest{CurrentPassword: "wrong-one", NewPassword: "newpassword1"})
	assert.ErrorIs(t, err, auth.ErrPasswordMismatch)

	err = f.svc.ChangePassword(ctx, session, auth.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"})
	assert.ErrorIs(t, err, auth.ErrSamePassword)

	err = f.svc.ChangePassword(ctx, session, auth.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "newpassword1"})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: "newpassword1"})
	assert.NoError(t, err)
	assert.Contains(t, f.actions(t), auditlog.ActionPasswordChange)
}

func TestAuthService_ForgotAndResetPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.createUser(t, "alice@example.com", "password123", user.RoleEmployee)

	require.NoError(t, f.svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "alice@example.com"}))
	require.Len(t, f.email.resets, 1)
	assert.True(t, strings.HasPrefix(f.email.resets[0].link, "http://app.test/reset-password?token="))

	link, err := url.Parse(f.email.resets[0].link)
	require.NoError(t, err)
	token := link.Query().Get("token")

	require.NoError(t, f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: token, NewPassword: "brand-new-pass"}))

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "alice@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)

	err = f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: token, NewPassword: "another-pass"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken, "reset tokens are single use")
}

func TestAuthService_ForgotPassword_UnknownEmailSucceeds(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{Email: "nobody@example.com"})
	assert.NoError(t, err)
	assert.Empty(t, f.email.resets)
}

func TestAuthService_CreateIdentity_GeneratesPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	employeeID := "emp-1"

	created, err := f.svc.CreateIdentity(ctx, auth.CreateIdentityRequest{
		Email:      "bob@example.com",
		Role:       user.RoleEmployee,
		EmployeeID: &employeeID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.TemporaryPassword)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "bob@example.com", Password: created.TemporaryPassword})
	assert.NoError(t, err)

	_, err = f.svc.CreateIdentity(ctx, auth.CreateIdentityRequest{Email: "BOB@example.com", Role: user.RoleEmployee})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	require.NoError(t, f.svc.DeleteIdentityByEmployeeID(ctx, employeeID))
	require.NoError(t, f.svc.DeleteIdentityByEmployeeID(ctx, employeeID), "deleting a missing identity is a no-op")
}

func TestAuthService_CreateIdentity_InvalidRole(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.CreateIdentity(context.Background(), auth.CreateIdentityRequest{Email: "x@example.com", Role: "superuser"})
	assert.Error(t, err)
}
