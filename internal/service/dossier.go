package service

import (
	"context"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/ruleengine"
)

// Dossier is the complete per-supplier response: identity, cadastral
// fields, every lazily-hydrated collection, the derived alerts and score,
// and the disclaimer string.
type Dossier struct {
	Supplier   domain.Supplier            `json:"supplier"`
	Contracts  []domain.Contract          `json:"contracts"`
	Partners   []domain.Partner           `json:"partners"`
	Links      []domain.OwnershipLink     `json:"ownershipLinks"`
	Sanctions  []domain.Sanction          `json:"sanctions"`
	Donations  []domain.Donation          `json:"donations"`
	Alerts     []domain.CriticalAlert     `json:"alerts"`
	Score      domain.ScoreBreakdown      `json:"score"`
	Disclaimer string                     `json:"disclaimer"`
}

// Dossier assembles the full supplier view: fetch every collection, run
// both rule-engine entry points over the same fetched data, and attach the
// disclaimer.
func (s *Services) Dossier(ctx context.Context, id domain.CompanyId) (*Dossier, error) {
	data, err := s.fetchRuleData(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	alerts := ruleengine.DetectCriticalAlerts(ruleengine.AlertContext{
		Supplier:         data.supplier,
		Partners:         data.partners,
		OwnershipLinks:   data.links,
		Contracts:        data.contracts,
		Sanctions:        data.sanctions,
		Donations:        data.donations,
		RelatedSuppliers: data.related,
		PartnerSignals:   data.signals,
		Strawman:         s.strawman,
		Now:              now,
	})

	score := ruleengine.ComputeCumulativeScore(ruleengine.ScoreContext{
		Supplier:                  data.supplier,
		Partners:                  data.partners,
		Contracts:                 data.contracts,
		Sanctions:                 data.sanctions,
		Lookup:                    s.lookup,
		SharedAddressElsewhere:    data.sharedAddress,
		EmployeeCount:             data.supplier.EmployeeCount,
		ContractsDescribeServices: contractsDescribeServices(data.contracts, s.lookup),
		Now:                       now,
	})

	return &Dossier{
		Supplier:   data.supplier,
		Contracts:  data.contracts,
		Partners:   data.partners,
		Links:      data.links,
		Sanctions:  data.sanctions,
		Donations:  data.donations,
		Alerts:     alerts,
		Score:      score,
		Disclaimer: s.disclaimer,
	}, nil
}
