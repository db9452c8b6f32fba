package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/monicajeon28/gmcruise-api/internal/application/auth"
	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
	pkgjwt "github.com/monicajeon28/gmcruise-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User // by email
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.users[email], nil
}

type fakeProfileRepo struct {
	byUser map[string]*entity.AffiliateProfile
}

func (r *fakeProfileRepo) Create(_ context.Context, _ *entity.AffiliateProfile) error { return nil }

func (r *fakeProfileRepo) GetByID(_ context.Context, _ string) (*entity.AffiliateProfile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) GetByCode(_ context.Context, _ string) (*entity.AffiliateProfile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.AffiliateProfile, error) {
	return r.byUser[userID], nil
}

func (r *fakeProfileRepo) ListByManager(_ context.Context, _ string) ([]*entity.AffiliateProfile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, _ *entity.AffiliateProfile) error { return nil }

const testSecret = "test-secret-key-for-unit-tests"

func newFixture(t *testing.T) (*auth.UseCase, *fakeUserRepo, *fakeProfileRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"lee.agent@example.com": {
			ID:           "user-1",
			Email:        "lee.agent@example.com",
			PasswordHash: string(hash),
			Role:         entity.RoleAgent,
			Status:       "active",
		},
	}}
	profileRepo := &fakeProfileRepo{byUser: map[string]*entity.AffiliateProfile{
		"user-1": {ID: "agt-1", UserID: "user-1", Type: entity.ProfileTypeSalesAgent},
	}}
	uc := auth.NewUseCase(userRepo, profileRepo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "gmcruise-test",
	})
	return uc, userRepo, profileRepo
}

func TestLogin_IssuesTokenWithProfileClaim(t *testing.T) {
	uc, _, _ := newFixture(t)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "Lee.Agent@Example.com", // case-insensitive
		Password: "correct-password",
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, "agt-1", resp.ProfileID)
	assert.Equal(t, entity.RoleAgent, resp.Role)

	userID, profileID, role, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "agt-1", profileID)
	assert.Equal(t, entity.RoleAgent, role)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "lee.agent@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_InactiveUserForbidden(t *testing.T) {
	uc, userRepo, _ := newFixture(t)
	userRepo.users["lee.agent@example.com"].Status = "suspended"

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "lee.agent@example.com",
		Password: "correct-password",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_AdminWithoutProfile(t *testing.T) {
	uc, userRepo, _ := newFixture(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.users["admin@example.com"] = &entity.User{
		ID:           "user-2",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Status:       "active",
	}

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "admin-password",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.ProfileID, "back-office admins carry no profile claim")
}

func TestLogin_EmptyCredentials(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
