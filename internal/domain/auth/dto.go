package auth

import "github.com/orbithr/hr-backend-go/internal/pkg/validator"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{Field: "current_password", Message: "is required"})
	}
	if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{Field: "new_password", Message: "must be at least 8 characters long"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"-"` // delivered via HttpOnly cookie
	RefreshTokenExpiresIn int64  `json:"-"`
	ForcePasswordChange   bool   `json:"force_password_change"`
}
