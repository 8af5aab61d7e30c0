package auth

import "context"

// AuthService defines authentication flows for employees and admins.
type AuthService interface {
	// Login verifies email/password credentials and issues an access token
	// plus a persisted, revocable refresh token.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// LoginWithGoogle issues tokens for a verified Google account whose
	// email matches an existing employee.
	LoginWithGoogle(ctx context.Context, email string) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair and
	// rotates the stored refresh token.
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// ChangePassword verifies the current password, stores the new hash
	// and clears the force-password-change flag.
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
