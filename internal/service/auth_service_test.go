package service_test

import (
	"context"
	"errors"
	"testing"

	"sportclub/internal/config"
	"sportclub/internal/dto"
	"sportclub/internal/model"
	"sportclub/internal/repository"
	"sportclub/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) addWithPassword(orgID uuid.UUID, username, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		ID: uuid.New(), OrganizationID: orgID, Username: username,
		Name: "Test User", PasswordHash: string(hash), Role: "staff", Active: true,
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeUserRepo) List(_ context.Context, orgID uuid.UUID, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.OrganizationID == orgID && (includeInactive || u.Active) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, orgID, id uuid.UUID, active bool) error {
	if u, ok := r.users[id]; ok && u.OrganizationID == orgID {
		u.Active = active
	}
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	orgID := uuid.New()
	repo.addWithPassword(orgID, "coach", "topsecret1")
	svc := service.NewAuthService(repo, authTestConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "coach", Password: "topsecret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "coach", resp.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	repo.addWithPassword(uuid.New(), "coach", "topsecret1")
	svc := service.NewAuthService(repo, authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "coach", Password: "wrong"})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	u := repo.addWithPassword(uuid.New(), "coach", "topsecret1")
	u.Active = false
	svc := service.NewAuthService(repo, authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "coach", Password: "topsecret1"})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestRefreshRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	repo.addWithPassword(uuid.New(), "coach", "topsecret1")
	svc := service.NewAuthService(repo, authTestConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "coach", Password: "topsecret1"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := service.NewAuthService(newFakeUserRepo(), authTestConfig())

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorContains(t, err, "invalid or expired")
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	orgID := uuid.New()
	repo.addWithPassword(orgID, "coach", "topsecret1")
	svc := service.NewAuthService(repo, authTestConfig())

	_, err := svc.CreateUser(context.Background(), orgID, dto.CreateUserRequest{
		Username: "coach", Name: "Another Coach", Password: "password1", Role: "staff",
	})
	assert.ErrorContains(t, err, "already taken")
}

func TestDeactivateAndReactivateUser(t *testing.T) {
	repo := newFakeUserRepo()
	orgID := uuid.New()
	u := repo.addWithPassword(orgID, "coach", "topsecret1")
	svc := service.NewAuthService(repo, authTestConfig())

	require.NoError(t, svc.DeactivateUser(context.Background(), orgID, u.ID))
	assert.False(t, repo.users[u.ID].Active)

	require.NoError(t, svc.ReactivateUser(context.Background(), orgID, u.ID))
	assert.True(t, repo.users[u.ID].Active)
}
