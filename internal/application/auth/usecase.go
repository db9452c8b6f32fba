package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
	"github.com/monicajeon28/gmcruise-api/pkg/jwt"
)

// JWTConfig for token generation.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase authentication for back-office admins and partners. Account
// creation lives in partner.ApproveContract; this only logs in.
type UseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	jwtCfg      JWTConfig
}

// NewUseCase builds the auth use case.
func NewUseCase(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, profileRepo: profileRepo, jwtCfg: jwtCfg}
}

// Login verifies credentials and issues a JWT with the user's role and, for
// partners, their affiliate profile id.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	profileID := ""
	if profile, err := uc.profileRepo.GetByUserID(ctx, user.ID); err != nil {
		return nil, err
	} else if profile != nil {
		profileID = profile.ID
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, profileID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     token,
		UserID:    user.ID,
		ProfileID: profileID,
		Role:      user.Role,
	}, nil
}
