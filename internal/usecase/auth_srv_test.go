package usecase

import (
	"context"
	"testing"
	"time"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/dto/request"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo, *utils.JWTManager) {
	t.Helper()
	repo := newFakeUserRepo()
	jwt := utils.NewJWTManager(utils.JWTConfig{
		Secret:            "access-secret",
		RefreshSecret:     "refresh-secret",
		Expiration:        time.Hour,
		RefreshExpiration: 24 * time.Hour,
	})
	return NewAuthService(repo, jwt, zap.NewNop()), repo, jwt
}

func seedUser(t *testing.T, repo *fakeUserRepo, email string, active bool) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword("Secret123")
	require.NoError(t, err)
	u := &entity.User{Email: email, PasswordHash: hash, FirstName: "Ada", Role: entity.RoleAdmin, IsActive: active}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestAuthService_Login(t *testing.T) {
	svc, repo, jwt := newAuthFixture(t)
	user := seedUser(t, repo, "ada@example.com", true)

	got, err := svc.Login(context.Background(), &request.LoginRequest{Email: "ADA@example.com", Password: "Secret123"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", got.TokenType)
	assert.Equal(t, user.ID, got.User.ID)

	claims, err := jwt.ParseAccess(got.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_LoginFailures(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		pass    string
		wantErr error
	}{
		{name: "bad email", email: "nope", pass: "x", wantErr: apperror.ErrValidation},
		{name: "unknown user", email: "ghost@example.com", pass: "Secret123", wantErr: apperror.ErrUnauthorized},
		{name: "wrong password", email: "ada@example.com", pass: "Secret124", wantErr: apperror.ErrUnauthorized},
		{name: "inactive", email: "off@example.com", pass: "Secret123", wantErr: apperror.ErrForbidden},
	}

	svc, repo, _ := newAuthFixture(t)
	seedUser(t, repo, "ada@example.com", true)
	seedUser(t, repo, "off@example.com", false)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &request.LoginRequest{Email: tt.email, Password: tt.pass})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, repo, jwt := newAuthFixture(t)
	user := seedUser(t, repo, "ada@example.com", true)
	pair, err := jwt.Generate(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	got, err := svc.Refresh(context.Background(), &request.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, got.AccessToken)

	// an access token is not a refresh token
	_, err = svc.Refresh(context.Background(), &request.RefreshTokenRequest{RefreshToken: pair.AccessToken})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	// deactivated after the token was issued
	user.IsActive = false
	require.NoError(t, repo.Update(context.Background(), user))
	_, err = svc.Refresh(context.Background(), &request.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAuthService_Me(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	user := seedUser(t, repo, "ada@example.com", true)

	got, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)

	_, err = svc.Me(context.Background(), 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserService_CreateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zap.NewNop())

	got, err := svc.CreateUser(context.Background(), &request.CreateUserRequest{
		Email:     "New@Example.com",
		Password:  "Passw0rdX",
		FirstName: " Grace ",
		LastName:  "Hopper",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "Grace", got.FirstName)
	assert.Equal(t, entity.RoleUser, got.Role)
	assert.True(t, got.IsActive)

	stored, _ := repo.FindByEmail(context.Background(), "new@example.com")
	require.NotNil(t, stored)
	assert.True(t, utils.CheckPassword(stored.PasswordHash, "Passw0rdX"))

	_, err = svc.CreateUser(context.Background(), &request.CreateUserRequest{
		Email:     "new@example.com",
		Password:  "Passw0rdX",
		FirstName: "Dup",
		LastName:  "Dup",
	})
	assert.ErrorIs(t, err, apperror.ErrConstraintViolation)

	_, err = svc.CreateUser(context.Background(), &request.CreateUserRequest{
		Email:     "weak@example.com",
		Password:  "password",
		FirstName: "Weak",
		LastName:  "Pass",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUserService_UpdateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zap.NewNop())
	user := seedUser(t, repo, "ada@example.com", true)
	seedUser(t, repo, "taken@example.com", true)

	role := "supervisor"
	got, err := svc.UpdateUser(context.Background(), user.ID, &request.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupervisor, got.Role)
	assert.Equal(t, "Ada", got.FirstName)

	taken := "Taken@example.com"
	_, err = svc.UpdateUser(context.Background(), user.ID, &request.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, apperror.ErrConstraintViolation)

	_, err = svc.UpdateUser(context.Background(), 404, &request.UpdateUserRequest{})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
