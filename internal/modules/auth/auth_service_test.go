package auth

import (
	"context"
	"testing"
	"time"

	"travel-agency/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	users map[string]*models.User // keyed by username
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) add(username, email, password string, roles ...string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	r.users[username] = &models.User{
		ID:           int64(len(r.users) + 1),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roles,
	}
}

func (r *fakeUserRepo) FindByUsernameOrEmail(_ context.Context, identifier string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeUserRepo) RolesByUsername(_ context.Context, username string) ([]string, error) {
	u, ok := r.users[username]
	if !ok {
		return []string{}, nil
	}
	return u.Roles, nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User, passwordHash string, roles []string) (*models.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, models.ErrConflict
		}
	}
	user.ID = int64(len(r.users) + 1)
	user.PasswordHash = passwordHash
	user.Roles = roles
	r.users[user.Username] = user
	return user, nil
}

func newAuthService(repo RepositoryInterface, ttl time.Duration) ServiceInterface {
	return NewService(repo, nil, nil, testSecret, ttl, zap.NewNop())
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add("alice", "alice@agency.test", "password123", models.RoleAdmin)
	svc := newAuthService(repo, time.Hour)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.Type)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_ByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add("alice", "alice@agency.test", "password123")
	svc := newAuthService(repo, time.Hour)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		UsernameOrEmail: "alice@agency.test",
		Password:        "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_TokenCarriesSubjectAndExpiry(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add("alice", "alice@agency.test", "password123")
	svc := newAuthService(repo, 2*time.Hour)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "password123",
	})
	require.NoError(t, err)

	claims := &models.JwtCustomClaims{}
	parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "alice", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, time.Hour)
	assert.LessOrEqual(t, remaining, 2*time.Hour)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add("alice", "alice@agency.test", "password123")
	svc := newAuthService(repo, time.Hour)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "wrong",
	})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), time.Hour)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		UsernameOrEmail: "nobody",
		Password:        "whatever",
	})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestRegister_DefaultsToUserRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, time.Hour)

	created, err := svc.Register(context.Background(), models.RegisterUserRequest{
		Username: "bob",
		Email:    "bob@agency.test",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleUser}, created.Roles)
	assert.NotEmpty(t, repo.users["bob"].PasswordHash)
}

func TestRegister_GrantsRequestedRoles(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, time.Hour)

	created, err := svc.Register(context.Background(), models.RegisterUserRequest{
		Username: "carol",
		Email:    "carol@agency.test",
		Roles:    []string{models.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleAdmin}, created.Roles)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add("bob", "bob@agency.test", "password123")
	svc := newAuthService(repo, time.Hour)

	_, err := svc.Register(context.Background(), models.RegisterUserRequest{
		Username: "bob",
		Email:    "other@agency.test",
	})
	assert.ErrorIs(t, err, models.ErrConflict)
}
