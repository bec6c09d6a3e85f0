package auth

import (
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
)

func validateEmail(errs *validator.ValidationErrors, field, email string) {
	if validator.IsEmpty(email) {
		errs.Add(field, field+" is required")
		return
	}
	if len(email) > 254 {
		errs.Add(field, field+" must not exceed 254 characters")
		return
	}
	if !validator.IsValidEmail(email) {
		errs.Add(field, field+" must be a valid email address, e.g. user@example.com")
	}
}

func validatePassword(errs *validator.ValidationErrors, field, password string) {
	if validator.IsEmpty(password) {
		errs.Add(field, field+" is required")
	} else if len(password) < minPasswordLength {
		errs.Add(field, field+" must be at least 8 characters long")
	} else if len(password) > maxPasswordLength {
		errs.Add(field, field+" must not exceed 72 characters")
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	validateEmail(&errs, "email", r.Email)

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	}

	return errs.Err()
}

type LogoutRequest struct {
	AccessToken          string
	AccessTokenExpiresAt int64
	RefreshToken         string
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs.Add("current_password", "current_password is required")
	}
	validatePassword(&errs, "new_password", r.NewPassword)

	return errs.Err()
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	validateEmail(&errs, "email", r.Email)

	return errs.Err()
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs.Add("token", "token is required")
	} else if len(r.Token) > 255 {
		errs.Add("token", "token must not exceed 255 characters")
	}
	validatePassword(&errs, "new_password", r.NewPassword)

	return errs.Err()
}

// CreateIdentityRequest provisions a login. Password is generated when empty.
type CreateIdentityRequest struct {
	Email      string
	Password   string
	Role       user.Role
	EmployeeID *string
}

func (r *CreateIdentityRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	validateEmail(&errs, "email", r.Email)
	if r.Password != "" {
		validatePassword(&errs, "password", r.Password)
	}
	if !r.Role.Valid() {
		errs.Add("role", user.ErrInvalidRole.Error())
	}

	return errs.Err()
}

// CreatedIdentity carries the generated password back to the administrator once.
type CreatedIdentity struct {
	User              user.User
	TemporaryPassword string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
