// Package repository declares the capability-shaped contracts the
// application services depend on. Each interface names exactly the
// operations its consumer needs; the analytical-store adapter in
// internal/store/sqlite satisfies their union. No inheritance tree, no
// single god-interface.
package repository

import (
	"context"
	"time"

	"supplierwatch/internal/domain"
)

// SupplierSummary is the row shape used by ranking and search results.
type SupplierSummary struct {
	ID                 domain.CompanyId
	LegalName          string
	ScoreTotal         int
	Band               domain.Band
	TotalContractValue domain.Money
}

// AlertFeedItem joins a stored CriticalAlert with its owning supplier and
// optional partner reference.
type AlertFeedItem struct {
	Alert        domain.CriticalAlert
	SupplierID   domain.CompanyId
	SupplierName string
}

// ContractFilter narrows the Contracts query.
type ContractFilter struct {
	SupplierID *domain.CompanyId
	OrgCode    *domain.GovOrgCode
}

// GraphNodeKind distinguishes the two node types in the ownership graph.
type GraphNodeKind string

const (
	GraphNodeCompany GraphNodeKind = "company"
	GraphNodePerson  GraphNodeKind = "person"
)

// GraphNode is one node in the two-hop ownership projection.
type GraphNode struct {
	ID    string
	Kind  GraphNodeKind
	Label string
}

// GraphEdge is an ownership edge (partner to supplier) in the two-hop
// neighborhood projection; the adapter sets Kind to "owns-share-of" on
// every edge.
type GraphEdge struct {
	From string
	To   string
	Kind string
}

// StatsSourceFreshness is the per-source freshness metadata for the Stats
// rollup: source name, last update, row count.
type StatsSourceFreshness struct {
	SourceName string
	LastUpdate time.Time
	RowCount   int64
}

// Stats is the headline-counts-plus-freshness rollup.
type Stats struct {
	SupplierCount int64
	ContractCount int64
	AlertCount    int64
	Sources       []StatsSourceFreshness
}

// OrgDashboard is the per-org aggregate view.
type OrgDashboard struct {
	OrgCode          domain.GovOrgCode
	SupplierCount    int64
	TotalContracted  domain.Money
	TopSuppliers     []SupplierSummary
}

// SupplierRepository fetches the Supplier aggregate's identity and the
// collections its lazy-hydrated fields need.
type SupplierRepository interface {
	SupplierByID(ctx context.Context, id domain.CompanyId) (*domain.Supplier, error)
	RankByScore(ctx context.Context, limit, offset int) ([]SupplierSummary, error)
	SearchByNameOrID(ctx context.Context, query string, limit int) ([]SupplierSummary, error)
	CountSuppliers(ctx context.Context) (int64, error)
	SharedAddressElsewhere(ctx context.Context, id domain.CompanyId) (bool, error)
}

// ContractRepository fetches contract rows.
type ContractRepository interface {
	Contracts(ctx context.Context, filter ContractFilter, limit, offset int) ([]domain.Contract, error)
}

// SanctionRepository fetches sanction rows for a supplier.
type SanctionRepository interface {
	SanctionsFor(ctx context.Context, id domain.CompanyId) ([]domain.Sanction, error)
}

// PartnerRepository fetches partners (with their ownership-link
// attributes) for a supplier.
type PartnerRepository interface {
	PartnersOf(ctx context.Context, id domain.CompanyId) ([]domain.Partner, []domain.OwnershipLink, error)
}

// DonationRepository fetches donations tied to a supplier.
type DonationRepository interface {
	DonationsFor(ctx context.Context, id domain.CompanyId) ([]domain.Donation, error)
}

// AlertFeedRepository fetches pre-materialized alert-feed rows ordered by
// detection timestamp descending.
type AlertFeedRepository interface {
	AlertFeed(ctx context.Context, limit, offset int) ([]AlertFeedItem, error)
	AlertFeedByKind(ctx context.Context, kind domain.AlertKind, limit, offset int) ([]AlertFeedItem, error)
}

// StatsRepository fetches the headline rollup.
type StatsRepository interface {
	StatsRollup(ctx context.Context) (Stats, error)
}

// OrgRepository fetches the per-org dashboard aggregate.
type OrgRepository interface {
	OrgDashboard(ctx context.Context, orgCode domain.GovOrgCode) (*OrgDashboard, error)
}

// GraphRepository performs the bounded two-hop ownership traversal.
type GraphRepository interface {
	GraphTwoHops(ctx context.Context, id domain.CompanyId, maxNodes int) (nodes []GraphNode, edges []GraphEdge, truncated bool, err error)
}

// RuleDataRepository fetches the raw collections the rule engine evaluates
// for one supplier, plus the related-supplier view TENDER_ROTATION needs
// and the partner signals STRAWMAN needs.
type RuleDataRepository interface {
	PartnerRepository
	ContractRepository
	SanctionRepository
	DonationRepository
	RelatedSuppliersSharingPartners(ctx context.Context, id domain.CompanyId) ([]RelatedSupplierContracts, error)
	PartnerSignals(ctx context.Context, id domain.CompanyId) ([]PartnerSignalRow, error)
}

// RelatedSupplierContracts is the raw row shape backing
// ruleengine.RelatedSupplierView.
type RelatedSupplierContracts struct {
	PartnerHash     string
	OtherSupplierID domain.CompanyId
	OtherContracts  []domain.Contract
}

// PartnerSignalRow is the raw row shape backing ruleengine.PartnerSignal.
type PartnerSignalRow struct {
	PersonHash              string
	AgeYears                *int
	HasPriorBusinessHistory *bool
	PresumedAnnualIncome    *domain.Money
	GovContractTotal        *domain.Money
}

// Repositories bundles every capability the application services need.
// The adapter in internal/store/sqlite satisfies this union; services take
// only the narrower interfaces they actually call.
type Repositories interface {
	SupplierRepository
	ContractRepository
	SanctionRepository
	PartnerRepository
	DonationRepository
	AlertFeedRepository
	StatsRepository
	OrgRepository
	GraphRepository
	RuleDataRepository
}
