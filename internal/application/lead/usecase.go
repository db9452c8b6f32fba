package lead

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
	"github.com/monicajeon28/gmcruise-api/pkg/phone"
)

// UseCase back-office lead intake and status management.
type UseCase struct {
	leadRepo    repository.LeadRepository
	linkRepo    repository.LinkRepository
	profileRepo repository.ProfileRepository
}

// NewUseCase builds the lead use case.
func NewUseCase(leadRepo repository.LeadRepository, linkRepo repository.LinkRepository, profileRepo repository.ProfileRepository) *UseCase {
	return &UseCase{leadRepo: leadRepo, linkRepo: linkRepo, profileRepo: profileRepo}
}

// Create registers a manually entered lead. The normalized phone is the dedup
// key: a number already on file returns ErrDuplicate, whatever formatting the
// operator typed.
func (uc *UseCase) Create(ctx context.Context, operatorID string, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	normalized := phone.Normalize(in.CustomerPhone)
	if in.CustomerName == "" || !phone.Valid(normalized) {
		return nil, domain.ErrInvalidInput
	}

	if existing, err := uc.leadRepo.GetByPhone(ctx, normalized); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	var managerID, agentID, linkID string
	if in.LinkCode != "" {
		link, err := uc.linkRepo.GetByCode(ctx, in.LinkCode)
		if err != nil {
			return nil, err
		}
		if link == nil {
			return nil, domain.ErrNotFound
		}
		linkID = link.ID
		managerID = link.ManagerProfileID
		agentID = link.AgentProfileID
	}
	if in.ManagerCode != "" {
		p, err := uc.activeProfile(ctx, in.ManagerCode, entity.ProfileTypeBranchManager)
		if err != nil {
			return nil, err
		}
		managerID = p.ID
	}
	if in.AgentCode != "" {
		p, err := uc.activeProfile(ctx, in.AgentCode, entity.ProfileTypeSalesAgent)
		if err != nil {
			return nil, err
		}
		agentID = p.ID
	}

	now := time.Now()
	lead := &entity.Lead{
		ID:               uuid.New().String(),
		CustomerName:     in.CustomerName,
		CustomerPhone:    normalized,
		Status:           entity.LeadStatusNew,
		ManagerProfileID: managerID,
		AgentProfileID:   agentID,
		LinkID:           linkID,
		Provenance:       entity.Provenance{Source: entity.ProvenanceManualEntry, OperatorID: operatorID},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}
	return toLeadResponse(lead), nil
}

// Advance moves a lead to the requested status through the transition table.
// Invalid targets return ErrInvalidInput; disallowed moves return ErrConflict.
func (uc *UseCase) Advance(ctx context.Context, leadID string, in dto.AdvanceLeadRequest) (*dto.LeadResponse, error) {
	target := entity.LeadStatus(in.Status)
	switch target {
	case entity.LeadStatusContacted, entity.LeadStatusQualified, entity.LeadStatusConverted,
		entity.LeadStatusPurchased, entity.LeadStatusLost, entity.LeadStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}

	lead, err := uc.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if !lead.Status.CanTransition(target) {
		return nil, domain.ErrConflict
	}

	ok, err := uc.leadRepo.TransitionStatus(ctx, lead.ID, lead.Status, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrConflict
	}
	lead.Status = target
	return toLeadResponse(lead), nil
}

// Get returns a lead by id.
func (uc *UseCase) Get(ctx context.Context, leadID string) (*dto.LeadResponse, error) {
	lead, err := uc.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	return toLeadResponse(lead), nil
}

// List returns leads filtered by status.
func (uc *UseCase) List(ctx context.Context, status entity.LeadStatus, limit, offset int) ([]dto.LeadResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	leads, err := uc.leadRepo.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, *toLeadResponse(l))
	}
	return out, nil
}

func (uc *UseCase) activeProfile(ctx context.Context, code, wantType string) (*entity.AffiliateProfile, error) {
	p, err := uc.profileRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Type != wantType {
		return nil, domain.ErrNotFound
	}
	if !p.IsActive() {
		return nil, domain.ErrConflict
	}
	return p, nil
}

func toLeadResponse(l *entity.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		ID:               l.ID,
		CustomerName:     l.CustomerName,
		CustomerPhone:    l.CustomerPhone,
		Status:           string(l.Status),
		ManagerProfileID: l.ManagerProfileID,
		AgentProfileID:   l.AgentProfileID,
		LinkID:           l.LinkID,
		Source:           string(l.Provenance.Source),
		CreatedAt:        l.CreatedAt.Format(time.RFC3339),
	}
}
