package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/oauth"
)

const (
	refreshTokenCookieName = "refresh_token"
	oauthStateCookieName   = "state"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService    jwt.Service
	authService   auth.AuthService
	googleService oauth.GoogleService
	frontendURL   string
	secureCookie  bool
}

// NewAuthHandler creates the auth handler. googleService is nil when Google sign-in is disabled.
func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, googleService oauth.GoogleService, frontendURL string, secureCookie bool) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:    jwtService,
		authService:   authService,
		googleService: googleService,
		frontendURL:   frontendURL,
		secureCookie:  secureCookie,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest
	if !decodeJSON(w, r, "Login", &loginReq) {
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	slog.Info("User logged in successfully")
	response.Created(w, "User logged in successfully", tokenResponse)
}

// LoginWithGoogle implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.HandleError(w, auth.ErrOAuthNotConfigured)
		return
	}

	state, err := a.googleService.GenerateState()
	if err != nil {
		slog.Error("Failed to generate oauth state", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/api/v1/auth/oauth/callback/google",
		Expires:  time.Now().Add(5 * time.Minute),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.googleService.RedirectURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	// Helper function to redirect to frontend with error
	redirectWithError := func(errorMsg string) {
		redirectURL := fmt.Sprintf("%s/auth/callback/google?error=%s", a.frontendURL, url.QueryEscape(errorMsg))
		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
	}

	if a.googleService == nil {
		redirectWithError("oauth_not_configured")
		return
	}

	if errorValue := r.URL.Query().Get("error"); errorValue != "" {
		slog.Error("Error in OAuth callback", "error", errorValue)
		redirectWithError(errorValue)
		return
	}

	stateReq, err := r.Cookie(oauthStateCookieName)
	if err != nil || stateReq.Value == "" {
		slog.Error("State cookie not found", "error", err)
		redirectWithError("state_cookie_not_found")
		return
	}

	stateParam := r.URL.Query().Get("state")
	if stateParam == "" || stateParam != stateReq.Value {
		slog.Error("State mismatch", "error", auth.ErrOAuthStateMismatch)
		redirectWithError("state_mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.Error("Code value is empty")
		redirectWithError("code_empty")
		return
	}

	token, err := a.googleService.VerifyToken(r.Context(), code)
	if err != nil {
		slog.Error("Failed to verify token", "error", err)
		redirectWithError("token_verification_failed")
		return
	}

	userGoogle, err := a.googleService.VerifyUser(r.Context(), token)
	if err != nil {
		slog.Error("Failed to verify user", "error", err)
		redirectWithError("user_verification_failed")
		return
	}

	tokenResponse, err := a.authService.LoginWithGoogle(r.Context(), userGoogle.Email)
	if err != nil {
		slog.Error("Failed to login with Google", "error", err)
		redirectWithError("login_failed")
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	slog.Info("User logged in successfully via Google OAuth")

	// Redirect to frontend with access token
	redirectURL := fmt.Sprintf("%s/auth/callback/google?access_token=%s&expires_in=%d",
		a.frontendURL,
		url.QueryEscape(tokenResponse.AccessToken),
		tokenResponse.AccessTokenExpiresIn,
	)
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var logoutReq auth.LogoutRequest
	if access, ok := middleware.AccessTokenFromContext(r.Context()); ok {
		logoutReq.AccessToken = access.Value
		logoutReq.AccessTokenExpiresAt = access.ExpiresAt.Unix()
	}
	if cookie, err := r.Cookie(refreshTokenCookieName); err == nil {
		logoutReq.RefreshToken = cookie.Value
	}

	if err := a.authService.Logout(r.Context(), session, logoutReq); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Clear the refresh token cookie
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	response.SuccessWithMessage(w, "User logged out successfully", nil)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshTokenReq auth.RefreshTokenRequest

	// Cookie first, JSON body as fallback
	if cookie, err := r.Cookie(refreshTokenCookieName); err == nil && cookie.Value != "" {
		refreshTokenReq.RefreshToken = cookie.Value
	} else if !decodeJSON(w, r, "Refresh Token", &refreshTokenReq) {
		return
	}

	tokenResponse, err := a.authService.RefreshToken(r.Context(), refreshTokenReq)
	if err != nil {
		slog.Error("Refresh Token service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Token refreshed successfully")
	response.Created(w, "Token refreshed successfully", tokenResponse)
}

// ForgotPassword implements AuthHandler.
func (a *AuthHandlerImpl) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var forgotPasswordReq auth.ForgotPasswordRequest
	if !decodeJSON(w, r, "ForgotPassword", &forgotPasswordReq) {
		return
	}

	if err := a.authService.ForgotPassword(r.Context(), forgotPasswordReq); err != nil {
		slog.Error("ForgotPassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Always success to prevent email enumeration
	response.SuccessWithMessage(w, "If the email is registered, a password reset link has been sent", nil)
}

// ResetPassword implements AuthHandler.
func (a *AuthHandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var resetPasswordReq auth.ResetPasswordRequest
	if !decodeJSON(w, r, "ResetPassword", &resetPasswordReq) {
		return
	}

	if err := a.authService.ResetPassword(r.Context(), resetPasswordReq); err != nil {
		slog.Error("ResetPassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Password reset successfully")
	response.SuccessWithMessage(w, "Password has been reset successfully", nil)
}

// ChangePassword implements AuthHandler.
func (a *AuthHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var changePasswordReq auth.ChangePasswordRequest
	if !decodeJSON(w, r, "ChangePassword", &changePasswordReq) {
		return
	}

	if err := a.authService.ChangePassword(r.Context(), session, changePasswordReq); err != nil {
		slog.Error("ChangePassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed successfully", nil)
}
