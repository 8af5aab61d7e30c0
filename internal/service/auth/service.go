package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/auth"
	"github.com/orbithr/hr-backend-go/internal/domain/employee"
	"github.com/orbithr/hr-backend-go/internal/pkg/jwt"
	"github.com/orbithr/hr-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	refreshTokens postgresql.RefreshTokenRepository
	jwtService    jwt.Service
}

func NewAuthService(
	employeeRepo employee.EmployeeRepository,
	refreshTokens postgresql.RefreshTokenRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepo,
		refreshTokens:      refreshTokens,
		jwtService:         jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if emp.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, emp)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string) (auth.TokenResponse, error) {
	emp, err := a.EmployeeRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrNoGoogleAccount
		}
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, emp)
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	employeeID, err := a.verifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrEmployeeNotFound
		}
		return auth.TokenResponse{}, err
	}

	// Rotate: the presented token is single-use.
	if err := a.refreshTokens.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, emp)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return a.refreshTokens.RevokeRefreshToken(ctx, refreshToken)
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return fmt.Errorf("employee_id claim is missing or invalid")
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	if emp.PasswordHash == nil {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// A self-chosen password clears the first-login rotation flag.
	if err := a.EmployeeRepository.UpdatePassword(ctx, emp.ID, string(hash), false); err != nil {
		return err
	}

	// Password change invalidates every open session.
	return a.refreshTokens.RevokeAllForEmployee(ctx, emp.ID)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, emp employee.Employee) (auth.TokenResponse, error) {
	accessToken, accessExp, err := a.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.EmployeeCode, emp.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := a.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := a.refreshTokens.CreateRefreshToken(ctx, emp.ID, refreshToken, refreshExp); err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp,
		ForcePasswordChange:   emp.ForcePasswordChange,
	}, nil
}

// verifyRefreshToken checks signature, expiry, token type and server-side
// revocation, returning the subject employee ID.
func (a *AuthServiceImpl) verifyRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	token, err := jwtauth.VerifyToken(a.jwtService.JWTAuth(), refreshToken)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return "", auth.ErrTokenExpired
		}
		return "", auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return "", auth.ErrInvalidToken
	}
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return "", auth.ErrInvalidToken
	}

	valid, err := a.refreshTokens.IsRefreshTokenValid(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if !valid {
		return "", auth.ErrRefreshTokenRevoked
	}

	return employeeID, nil
}
