// Package service orchestrates repositories and the rule engine into the
// response shapes the HTTP surface encodes. Services carry
// no business rules of their own: every decision not already encoded in the
// rule engine (what counts as "services" for NO_EMPLOYEES, what the default
// STRAWMAN thresholds are) is configuration handed in at construction.
package service

import (
	"context"
	"time"

	"supplierwatch/internal/apierr"
	"supplierwatch/internal/domain"
	"supplierwatch/internal/repository"
	"supplierwatch/internal/ruleengine"
)

// Clock abstracts "now" so the rule engine and rate limiter both accept an
// injected time source in tests.
type Clock func() time.Time

// Services bundles every application-service entry point the HTTP surface
// calls. One value is constructed at boot and shared read-only across
// workers.
type Services struct {
	repo             repository.Repositories
	lookup           ruleengine.ActivityLookup
	strawman         ruleengine.StrawmanConfig
	disclaimer       string
	now              Clock
	graphMaxNodes    int
}

// Config is the constructor input for Services.
type Config struct {
	Repo          repository.Repositories
	Lookup        ruleengine.ActivityLookup
	Strawman      ruleengine.StrawmanConfig
	Disclaimer    string
	Now           Clock
	GraphMaxNodes int
}

// New builds a Services value. GraphMaxNodes defaults to 50
// when zero; Now defaults to time.Now when nil.
func New(cfg Config) *Services {
	maxNodes := cfg.GraphMaxNodes
	if maxNodes <= 0 {
		maxNodes = 50
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Services{
		repo:          cfg.Repo,
		lookup:        cfg.Lookup,
		strawman:      cfg.Strawman,
		disclaimer:    cfg.Disclaimer,
		now:           now,
		graphMaxNodes: maxNodes,
	}
}

func notFoundIfNil[T any](v *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apierr.ErrNotFound
	}
	return v, nil
}

// fetchRuleData assembles the plain in-memory collections both rule-engine
// entry points evaluate, fanning out to every repository capability a
// dossier needs. Fetched once per request and shared between
// DetectCriticalAlerts and ComputeCumulativeScore so neither re-queries the
// store on the other's behalf — keeping the two dimensions independent all
// the way down to their I/O.
type ruleData struct {
	supplier       domain.Supplier
	partners       []domain.Partner
	links          []domain.OwnershipLink
	contracts      []domain.Contract
	sanctions      []domain.Sanction
	donations      []domain.Donation
	related        []ruleengine.RelatedSupplierView
	signals        []ruleengine.PartnerSignal
	sharedAddress  bool
}

func (s *Services) fetchRuleData(ctx context.Context, id domain.CompanyId) (*ruleData, error) {
	supplier, err := notFoundIfNil(s.repo.SupplierByID(ctx, id))
	if err != nil {
		return nil, err
	}
	contracts, err := s.repo.Contracts(ctx, repository.ContractFilter{SupplierID: &id}, 1000, 0)
	if err != nil {
		return nil, err
	}
	partners, links, err := s.repo.PartnersOf(ctx, id)
	if err != nil {
		return nil, err
	}
	sanctions, err := s.repo.SanctionsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	donations, err := s.repo.DonationsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	relatedRows, err := s.repo.RelatedSuppliersSharingPartners(ctx, id)
	if err != nil {
		return nil, err
	}
	related := make([]ruleengine.RelatedSupplierView, 0, len(relatedRows))
	for _, r := range relatedRows {
		related = append(related, ruleengine.RelatedSupplierView{
			PartnerHash:     r.PartnerHash,
			OtherSupplierID: r.OtherSupplierID,
			OtherContracts:  r.OtherContracts,
		})
	}
	signalRows, err := s.repo.PartnerSignals(ctx, id)
	if err != nil {
		return nil, err
	}
	signals := make([]ruleengine.PartnerSignal, 0, len(signalRows))
	for _, r := range signalRows {
		signals = append(signals, ruleengine.PartnerSignal{
			PersonHash:              r.PersonHash,
			AgeYears:                r.AgeYears,
			HasPriorBusinessHistory: r.HasPriorBusinessHistory,
			PresumedAnnualIncome:    r.PresumedAnnualIncome,
			GovContractTotal:        r.GovContractTotal,
		})
	}
	sharedAddress, err := s.repo.SharedAddressElsewhere(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ruleData{
		supplier:      *supplier,
		partners:      partners,
		links:         links,
		contracts:     contracts,
		sanctions:     sanctions,
		donations:     donations,
		related:       related,
		signals:       signals,
		sharedAddress: sharedAddress,
	}, nil
}

func contractsDescribeServices(contracts []domain.Contract, lookup ruleengine.ActivityLookup) bool {
	if lookup == nil {
		return false
	}
	for _, c := range contracts {
		if category, ok := lookup.SubjectCategory(c.Subject); ok && category == "SERVICE" {
			return true
		}
	}
	return false
}
