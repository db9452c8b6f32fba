package partner

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/monicajeon28/gmcruise-api/internal/application/dto"
	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
)

// linkBatchChunk caps how many links one transaction inserts. Large batches
// run as a sequence of independent transactions to bound lock duration.
const linkBatchChunk = 100

// maxLinkBatch caps a single request.
const maxLinkBatch = 5000

// GenerateLinks creates a batch of referral links attributed to a manager
// and/or agent. Chunks already committed stay committed if a later chunk
// fails; link generation is repeatable, so callers just re-request the
// remainder.
func (uc *UseCase) GenerateLinks(ctx context.Context, in dto.GenerateLinksRequest) (*dto.GenerateLinksResponse, error) {
	if in.Count <= 0 || in.Count > maxLinkBatch {
		return nil, domain.ErrInvalidInput
	}

	var managerID, agentID string
	if in.ManagerCode != "" {
		p, err := uc.profileRepo.GetByCode(ctx, in.ManagerCode)
		if err != nil {
			return nil, err
		}
		if p == nil || p.Type != entity.ProfileTypeBranchManager {
			return nil, domain.ErrNotFound
		}
		managerID = p.ID
	}
	if in.AgentCode != "" {
		p, err := uc.profileRepo.GetByCode(ctx, in.AgentCode)
		if err != nil {
			return nil, err
		}
		if p == nil || p.Type != entity.ProfileTypeSalesAgent {
			return nil, domain.ErrNotFound
		}
		agentID = p.ID
		if managerID == "" {
			managerID = p.ManagerProfileID
		}
	}
	if managerID == "" && agentID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	links := make([]*entity.AffiliateLink, 0, in.Count)
	for i := 0; i < in.Count; i++ {
		links = append(links, &entity.AffiliateLink{
			ID:               uuid.New().String(),
			Code:             newLinkCode(),
			ManagerProfileID: managerID,
			AgentProfileID:   agentID,
			Campaign:         in.Campaign,
			CreatedAt:        now,
		})
	}

	for start := 0; start < len(links); start += linkBatchChunk {
		end := start + linkBatchChunk
		if end > len(links) {
			end = len(links)
		}
		chunk := links[start:end]
		err := uc.txRunner.RunLinks(ctx, func(linkRepo repository.LinkRepository) error {
			return linkRepo.CreateBatch(ctx, chunk)
		})
		if err != nil {
			return nil, err
		}
	}

	resp := &dto.GenerateLinksResponse{Links: make([]dto.LinkResponse, 0, len(links))}
	for _, l := range links {
		resp.Links = append(resp.Links, dto.LinkResponse{ID: l.ID, Code: l.Code, Campaign: l.Campaign})
	}
	return resp, nil
}

// ListLinks returns the links attributed to a profile (either leg),
// newest first.
func (uc *UseCase) ListLinks(ctx context.Context, profileID string, limit, offset int) (*dto.GenerateLinksResponse, error) {
	if profileID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	links, err := uc.linkRepo.ListByProfile(ctx, profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.GenerateLinksResponse{Links: make([]dto.LinkResponse, 0, len(links))}
	for _, l := range links {
		resp.Links = append(resp.Links, dto.LinkResponse{
			ID:       l.ID,
			Code:     l.Code,
			Campaign: l.Campaign,
			Clicks:   l.ClickCount,
		})
	}
	return resp, nil
}

// TrackClick bumps the click counter for a link code.
func (uc *UseCase) TrackClick(ctx context.Context, code string) error {
	link, err := uc.linkRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if link == nil {
		return domain.ErrNotFound
	}
	return uc.linkRepo.IncrementClick(ctx, link.ID)
}

func newLinkCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
