package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/orbithr/hr-backend-go/internal/domain/auth"
	"github.com/orbithr/hr-backend-go/internal/handler/http/response"
	"github.com/orbithr/hr-backend-go/internal/pkg/jwt"
	"github.com/orbithr/hr-backend-go/internal/pkg/oauth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService    jwt.Service
	authService   auth.AuthService
	googleService oauth.GoogleService
	frontendURL   string
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, googleService oauth.GoogleService, frontendURL string) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:    jwtService,
		authService:   authService,
		googleService: googleService,
		frontendURL:   frontendURL,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn)
	http.SetCookie(w, refreshTokenCookie)
	response.SuccessWithMessage(w, "Logged in successfully", tokenResponse)
}

// LoginWithGoogle implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	state := a.googleService.GenerateState(r.UserAgent())
	cookie := &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/api/v1/auth/oauth/callback/google",
		Expires:  time.Now().Add(5 * time.Minute),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
	http.Redirect(w, r, a.googleService.RedirectURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	redirectWithError := func(errorMsg string) {
		redirectURL := fmt.Sprintf("%s/auth/callback/google?error=%s", a.frontendURL, url.QueryEscape(errorMsg))
		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
	}

	stateCookie, err := r.Cookie("state")
	if err != nil || stateCookie.Value == "" {
		slog.Error("OAuth callback state cookie missing", "error", err)
		redirectWithError("state_cookie_not_found")
		return
	}

	if errorValue := r.URL.Query().Get("error"); errorValue != "" {
		slog.Error("OAuth callback error", "error", errorValue)
		redirectWithError(errorValue)
		return
	}

	if r.URL.Query().Get("state") != stateCookie.Value {
		slog.Error("OAuth callback state mismatch")
		redirectWithError("state_mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		redirectWithError("code_missing")
		return
	}

	oauthToken, err := a.googleService.VerifyToken(r.Context(), code)
	if err != nil {
		slog.Error("OAuth token exchange failed", "error", err)
		redirectWithError("token_exchange_failed")
		return
	}

	account, err := a.googleService.VerifyUser(r.Context(), oauthToken)
	if err != nil {
		slog.Error("OAuth user info fetch failed", "error", err)
		redirectWithError("userinfo_failed")
		return
	}
	if !account.VerifiedEmail {
		redirectWithError("email_not_verified")
		return
	}

	tokenResponse, err := a.authService.LoginWithGoogle(r.Context(), account.Email)
	if err != nil {
		slog.Error("Google login failed", "error", err)
		redirectWithError("no_linked_employee")
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn)
	http.SetCookie(w, refreshTokenCookie)

	redirectURL := fmt.Sprintf("%s/auth/callback/google?access_token=%s", a.frontendURL, url.QueryEscape(tokenResponse.AccessToken))
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := refreshTokenFromCookie(r)
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	tokenResponse, err := a.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		slog.Error("Refresh service error", "error", err)
		response.HandleError(w, err)
		return
	}

	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn)
	http.SetCookie(w, refreshTokenCookie)
	response.Success(w, tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := refreshTokenFromCookie(r)
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), refreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	})
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// ChangePassword implements AuthHandler.
func (a *AuthHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var changeReq auth.ChangePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&changeReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := changeReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := a.authService.ChangePassword(r.Context(), changeReq); err != nil {
		slog.Error("ChangePassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed successfully", nil)
}

func refreshTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		return "", err
	}
	if cookie.Value == "" {
		return "", http.ErrNoCookie
	}
	return cookie.Value, nil
}
