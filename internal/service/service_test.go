package service

import (
	"context"
	"testing"
	"time"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/repository"
)

// stubRepo implements repository.Repositories with per-field overrides; a
// nil override returns the zero value for that call. Tests set only the
// fields the scenario under test actually reads.
type stubRepo struct {
	supplier            *domain.Supplier
	supplierErr         error
	ranking             []repository.SupplierSummary
	searchResults       []repository.SupplierSummary
	contracts           []domain.Contract
	sanctions           []domain.Sanction
	partners            []domain.Partner
	links               []domain.OwnershipLink
	donations           []domain.Donation
	related             []repository.RelatedSupplierContracts
	signals             []repository.PartnerSignalRow
	sharedAddress       bool
	alertFeed           []repository.AlertFeedItem
	stats               repository.Stats
	orgDashboard        *repository.OrgDashboard
	orgErr              error
	graphNodes          []repository.GraphNode
	graphEdges          []repository.GraphEdge
	graphTruncated      bool
}

func (r *stubRepo) SupplierByID(ctx context.Context, id domain.CompanyId) (*domain.Supplier, error) {
	return r.supplier, r.supplierErr
}
func (r *stubRepo) RankByScore(ctx context.Context, limit, offset int) ([]repository.SupplierSummary, error) {
	return r.ranking, nil
}
func (r *stubRepo) SearchByNameOrID(ctx context.Context, query string, limit int) ([]repository.SupplierSummary, error) {
	return r.searchResults, nil
}
func (r *stubRepo) CountSuppliers(ctx context.Context) (int64, error) { return 0, nil }
func (r *stubRepo) SharedAddressElsewhere(ctx context.Context, id domain.CompanyId) (bool, error) {
	return r.sharedAddress, nil
}
func (r *stubRepo) Contracts(ctx context.Context, filter repository.ContractFilter, limit, offset int) ([]domain.Contract, error) {
	return r.contracts, nil
}
func (r *stubRepo) SanctionsFor(ctx context.Context, id domain.CompanyId) ([]domain.Sanction, error) {
	return r.sanctions, nil
}
func (r *stubRepo) PartnersOf(ctx context.Context, id domain.CompanyId) ([]domain.Partner, []domain.OwnershipLink, error) {
	return r.partners, r.links, nil
}
func (r *stubRepo) DonationsFor(ctx context.Context, id domain.CompanyId) ([]domain.Donation, error) {
	return r.donations, nil
}
func (r *stubRepo) AlertFeed(ctx context.Context, limit, offset int) ([]repository.AlertFeedItem, error) {
	return r.alertFeed, nil
}
func (r *stubRepo) AlertFeedByKind(ctx context.Context, kind domain.AlertKind, limit, offset int) ([]repository.AlertFeedItem, error) {
	var out []repository.AlertFeedItem
	for _, item := range r.alertFeed {
		if item.Alert.Kind == kind {
			out = append(out, item)
		}
	}
	return out, nil
}
func (r *stubRepo) StatsRollup(ctx context.Context) (repository.Stats, error) { return r.stats, nil }
func (r *stubRepo) OrgDashboard(ctx context.Context, orgCode domain.GovOrgCode) (*repository.OrgDashboard, error) {
	return r.orgDashboard, r.orgErr
}
func (r *stubRepo) GraphTwoHops(ctx context.Context, id domain.CompanyId, maxNodes int) ([]repository.GraphNode, []repository.GraphEdge, bool, error) {
	return r.graphNodes, r.graphEdges, r.graphTruncated, nil
}
func (r *stubRepo) RelatedSuppliersSharingPartners(ctx context.Context, id domain.CompanyId) ([]repository.RelatedSupplierContracts, error) {
	return r.related, nil
}
func (r *stubRepo) PartnerSignals(ctx context.Context, id domain.CompanyId) ([]repository.PartnerSignalRow, error) {
	return r.signals, nil
}

// testCompanyID builds a checksum-valid 14-digit company id for fixtures,
// mirroring domain's own weighted-mod-11 algorithm so no hand-picked
// constant is needed.
func testCompanyID(t *testing.T) domain.CompanyId {
	t.Helper()
	base := "112223330001"
	d1 := companyCheckDigitForTest(base, companyWeightsForServiceTest(12))
	d2 := companyCheckDigitForTest(base+itoaDigit(d1), companyWeightsForServiceTest(13))
	raw := base + itoaDigit(d1) + itoaDigit(d2)
	id, err := domain.NewCompanyId(raw)
	if err != nil {
		t.Fatalf("fixture company id must pass checksum: %v", err)
	}
	return id
}

func companyWeightsForServiceTest(n int) []int {
	weights := make([]int, n)
	w := 2
	for i := n - 1; i >= 0; i-- {
		weights[i] = w
		w++
		if w > 9 {
			w = 2
		}
	}
	return weights
}

func companyCheckDigitForTest(digits string, weights []int) int {
	sum := 0
	for i, r := range digits {
		sum += int(r-'0') * weights[i]
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

func itoaDigit(d int) string {
	return string(rune('0' + d))
}

// fixedClock returns a Clock pinned to a fixed instant, for deterministic
// rule-engine evaluation in tests.
func fixedClock() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}
