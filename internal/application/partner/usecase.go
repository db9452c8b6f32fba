package partner

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
)

// UseCase manages the affiliate network: contract approval, the agent to
// branch-manager relation, and referral links.
type UseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	linkRepo    repository.LinkRepository
	txRunner    TxRunner
}

// NewUseCase builds the partner use case.
func NewUseCase(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, linkRepo repository.LinkRepository, txRunner TxRunner) *UseCase {
	return &UseCase{userRepo: userRepo, profileRepo: profileRepo, linkRepo: linkRepo, txRunner: txRunner}
}

// ApproveContract creates the partner's user account (bcrypt-hashed password)
// and its 1:1 affiliate profile. Agents must name an active branch manager,
// the recipient of their override commission.
func (uc *UseCase) ApproveContract(ctx context.Context, in dto.ApproveContractRequest) (*dto.ProfileResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ProfileType != entity.ProfileTypeBranchManager && in.ProfileType != entity.ProfileTypeSalesAgent {
		return nil, domain.ErrInvalidInput
	}

	if existing, err := uc.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	var managerProfileID string
	if in.ProfileType == entity.ProfileTypeSalesAgent {
		if in.ManagerCode == "" {
			return nil, domain.ErrInvalidInput
		}
		manager, err := uc.profileRepo.GetByCode(ctx, in.ManagerCode)
		if err != nil {
			return nil, err
		}
		if manager == nil || manager.Type != entity.ProfileTypeBranchManager {
			return nil, domain.ErrNotFound
		}
		if !manager.IsActive() {
			return nil, domain.ErrConflict
		}
		managerProfileID = manager.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	role := entity.RoleManager
	if in.ProfileType == entity.ProfileTypeSalesAgent {
		role = entity.RoleAgent
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	code := in.Code
	if code == "" {
		code = newAffiliateCode()
	}
	profile := &entity.AffiliateProfile{
		ID:               uuid.New().String(),
		UserID:           user.ID,
		Type:             in.ProfileType,
		Code:             code,
		Status:           entity.ProfileStatusActive,
		ManagerProfileID: managerProfileID,
		BankName:         in.BankName,
		BankAccount:      in.BankAccount,
		BankHolder:       in.BankHolder,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.RunPartner(ctx, func(
		userRepo repository.UserRepository,
		profileRepo repository.ProfileRepository,
	) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return profileRepo.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

// GetProfile returns a profile by id.
func (uc *UseCase) GetProfile(ctx context.Context, id string) (*dto.ProfileResponse, error) {
	p, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProfileResponse(p), nil
}

// ListAgents returns the agents reporting to a branch manager.
func (uc *UseCase) ListAgents(ctx context.Context, managerProfileID string) ([]dto.ProfileResponse, error) {
	agents, err := uc.profileRepo.ListByManager(ctx, managerProfileID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfileResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, *toProfileResponse(a))
	}
	return out, nil
}

// newAffiliateCode returns a short unique slug; uuid keeps it collision-free
// without a DB round trip.
func newAffiliateCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}

func toProfileResponse(p *entity.AffiliateProfile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		Type:             p.Type,
		Code:             p.Code,
		Status:           p.Status,
		ManagerProfileID: p.ManagerProfileID,
		BankName:         p.BankName,
		BankAccount:      p.BankAccount,
		BankHolder:       p.BankHolder,
	}
}
