package commerce_test

import (
	"context"
	"sync"
	"time"

	"github.com/monicajeon28/gmcruise-api/internal/domain"
	"github.com/monicajeon28/gmcruise-api/internal/domain/entity"
	"github.com/monicajeon28/gmcruise-api/internal/domain/repository"
)

// In-memory fakes for the persistence ports. Mutex-guarded so tests can hit
// them from concurrent goroutines, mirroring the compare-and-swap behavior of
// the SQL adapters.

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales map[string]*entity.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[string]*entity.Sale{}}
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.OrderCode == sale.OrderCode {
			return domain.ErrDuplicate
		}
	}
	cp := *sale
	r.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) GetByOrderCode(_ context.Context, orderCode string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.OrderCode == orderCode {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) TransitionStatus(_ context.Context, id string, from, to entity.SaleStatus, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	if to == entity.SaleStatusConfirmed {
		s.ConfirmedAt = &at
	}
	s.UpdatedAt = at
	return true, nil
}

func (r *fakeSaleRepo) List(_ context.Context, status entity.SaleStatus, limit, offset int) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		if status == "" || s.Status == status {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeLedgerRepo struct {
	mu      sync.Mutex
	entries []*entity.LedgerEntry
}

func (r *fakeLedgerRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLedgerRepo) ListBySale(_ context.Context, saleID string) ([]*entity.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.LedgerEntry
	for _, e := range r.entries {
		if e.SaleID == saleID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) VoidBySale(_ context.Context, saleID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.entries {
		if e.SaleID == saleID && !e.IsVoided {
			e.IsVoided = true
			n++
		}
	}
	return n, nil
}

func (r *fakeLedgerRepo) SummarizeForPeriod(_ context.Context, _, _ time.Time, _ string) ([]*repository.LedgerSummaryRow, error) {
	return nil, nil
}

func (r *fakeLedgerRepo) ListForPeriod(_ context.Context, _, _ time.Time, _ bool) ([]*entity.LedgerEntry, error) {
	return nil, nil
}

func (r *fakeLedgerRepo) MarkSettledForPeriod(_ context.Context, _ string, _, _ time.Time) (int64, error) {
	return 0, nil
}

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads map[string]*entity.Lead // by id
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: map[string]*entity.Lead{}}
}

func (r *fakeLeadRepo) Create(_ context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.CustomerPhone == lead.CustomerPhone {
			return domain.ErrDuplicate
		}
	}
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) GetByID(_ context.Context, id string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLeadRepo) GetByPhone(_ context.Context, normalizedPhone string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.CustomerPhone == normalizedPhone {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLeadRepo) TransitionStatus(_ context.Context, id string, from, to entity.LeadStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok || l.Status != from {
		return false, nil
	}
	l.Status = to
	return true, nil
}

func (r *fakeLeadRepo) Update(_ context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[lead.ID]
	if !ok {
		return domain.ErrNotFound
	}
	l.CustomerName = lead.CustomerName
	l.ManagerProfileID = lead.ManagerProfileID
	l.AgentProfileID = lead.AgentProfileID
	l.LinkID = lead.LinkID
	l.UpdatedAt = lead.UpdatedAt
	return nil
}

func (r *fakeLeadRepo) ListByStatus(_ context.Context, status entity.LeadStatus, limit, offset int) ([]*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Lead
	for _, l := range r.leads {
		if status == "" || l.Status == status {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeLinkRepo struct {
	mu    sync.Mutex
	links map[string]*entity.AffiliateLink // by code
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: map[string]*entity.AffiliateLink{}}
}

func (r *fakeLinkRepo) CreateBatch(_ context.Context, links []*entity.AffiliateLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range links {
		cp := *l
		r.links[l.Code] = &cp
	}
	return nil
}

func (r *fakeLinkRepo) GetByCode(_ context.Context, code string) (*entity.AffiliateLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.links[code]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLinkRepo) IncrementClick(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.links {
		if l.ID == id {
			l.ClickCount++
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeLinkRepo) ListByProfile(_ context.Context, profileID string, limit, offset int) ([]*entity.AffiliateLink, error) {
	return nil, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.AffiliateProfile // by id
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*entity.AffiliateProfile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *entity.AffiliateProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*entity.AffiliateProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) GetByCode(_ context.Context, code string) (*entity.AffiliateProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.AffiliateProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) ListByManager(_ context.Context, managerProfileID string) ([]*entity.AffiliateProfile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *entity.AffiliateProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

// fakeTxRunner passes the fakes straight through. No rollback semantics; the
// tests assert on the CAS outcome, which is what the SQL transaction guards.
type fakeTxRunner struct {
	saleRepo   repository.SaleRepository
	ledgerRepo repository.LedgerRepository
	leadRepo   repository.LeadRepository
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	ledgerRepo repository.LedgerRepository,
	leadRepo repository.LeadRepository,
) error) error {
	return fn(r.saleRepo, r.ledgerRepo, r.leadRepo)
}
