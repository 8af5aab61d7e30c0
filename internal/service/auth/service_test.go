package auth

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/orbithr/hr-backend-go/internal/domain/auth"
	"github.com/orbithr/hr-backend-go/internal/domain/employee"
	"github.com/orbithr/hr-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testPassword   = "password123"
)

type fakeEmployeeRepo struct {
	byEmail map[string]employee.Employee
	byID    map[string]employee.Employee

	lastPasswordHash string
	lastForceChange  bool
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{
		byEmail: make(map[string]employee.Employee),
		byID:    make(map[string]employee.Employee),
	}
	for _, emp := range emps {
		repo.byEmail[emp.Email] = emp
		repo.byID[emp.ID] = emp
	}
	return repo
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}
func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if emp, ok := f.byID[id]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	if emp, ok := f.byEmail[email]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
func (f *fakeEmployeeRepo) List(_ context.Context, includeAdmins bool) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) UpdateSalary(_ context.Context, id string, salary employee.Salary) error {
	return nil
}
func (f *fakeEmployeeRepo) UpdateAvatarURL(_ context.Context, id, url string) error { return nil }
func (f *fakeEmployeeRepo) UpdatePassword(_ context.Context, id, hash string, force bool) error {
	f.lastPasswordHash = hash
	f.lastForceChange = force
	return nil
}
func (f *fakeEmployeeRepo) DecrementLeaveCredit(_ context.Context, id string, kind employee.LeaveCreditKind, days float64) error {
	return nil
}
func (f *fakeEmployeeRepo) CountJoinedInYear(_ context.Context, year int) (int, error) {
	return 0, nil
}

type fakeRefreshTokenRepo struct {
	stored  map[string]string // token -> employeeID
	revoked map[string]bool
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{
		stored:  make(map[string]string),
		revoked: make(map[string]bool),
	}
}

func (f *fakeRefreshTokenRepo) CreateRefreshToken(_ context.Context, employeeID, token string, expiresAt int64) error {
	f.stored[token] = employeeID
	return nil
}
func (f *fakeRefreshTokenRepo) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	_, known := f.stored[token]
	return known && !f.revoked[token], nil
}
func (f *fakeRefreshTokenRepo) RevokeRefreshToken(_ context.Context, token string) error {
	f.revoked[token] = true
	return nil
}
func (f *fakeRefreshTokenRepo) RevokeAllForEmployee(_ context.Context, employeeID string) error {
	for token, owner := range f.stored {
		if owner == employeeID {
			f.revoked[token] = true
		}
	}
	return nil
}

func testEmployee(t *testing.T) employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)
	return employee.Employee{
		ID:                  "emp-1",
		EmployeeCode:        "OIJADO20250001",
		Email:               "jane.doe@example.com",
		PasswordHash:        &hashStr,
		Role:                employee.RoleEmployee,
		FirstName:           "Jane",
		LastName:            "Doe",
		ForcePasswordChange: true,
	}
}

func newTestService(t *testing.T) (auth.AuthService, *fakeEmployeeRepo, *fakeRefreshTokenRepo) {
	t.Helper()
	employees := newFakeEmployeeRepo(testEmployee(t))
	tokens := newFakeRefreshTokenRepo()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(employees, tokens, jwtService), employees, tokens
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newTestService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.True(t, resp.ForcePasswordChange)
	assert.Len(t, tokens.stored, 1)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: testPassword,
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The presented refresh token is single-use.
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte(testSecret), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{"employee_id": employeeID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestChangePassword(t *testing.T) {
	svc, employees, _ := newTestService(t)

	err := svc.ChangePassword(authedContext(t, "emp-1"), auth.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "brand-new-password",
	})
	require.NoError(t, err)

	assert.False(t, employees.lastForceChange)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(employees.lastPasswordHash), []byte("brand-new-password")))
}

func TestChangePassword_RevokesOpenSessions(t *testing.T) {
	svc, _, _ := newTestService(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	err = svc.ChangePassword(authedContext(t, "emp-1"), auth.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "brand-new-password",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.ChangePassword(authedContext(t, "emp-1"), auth.ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "brand-new-password",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestChangePassword_TooShort(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.ChangePassword(authedContext(t, "emp-1"), auth.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "short",
	})

	assert.Error(t, err)
}

func TestLoginWithGoogle(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.LoginWithGoogle(context.Background(), "jane.doe@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWithGoogle_UnregisteredEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.LoginWithGoogle(context.Background(), "stranger@example.com")
	assert.ErrorIs(t, err, auth.ErrNoGoogleAccount)
}
