package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrNoGoogleAccount     = errors.New("no employee is registered with this Google account")
)
