// Package ruleengine implements the two independent, pure rule-evaluation
// entry points: detectCriticalAlerts and computeCumulativeScore. Neither
// calls the other, and no identifier from the alert vocabulary
// (domain.AlertKind) ever appears in the score module's vocabulary
// (domain.IndicatorKind) or vice versa — enforced by disjoint_test.go.
package ruleengine

import (
	"fmt"
	"strings"
	"time"

	"supplierwatch/internal/domain"
)

// RelatedSupplierView describes one other supplier reachable from the
// subject supplier via a shared partner, restricted to the fields the
// TENDER_ROTATION detector needs. Populated from a graph+contracts fetch;
// when the caller has no such view, pass a nil slice and the detector is
// skipped for that request.
type RelatedSupplierView struct {
	PartnerHash     string
	OtherSupplierID domain.CompanyId
	OtherContracts  []domain.Contract
}

// PartnerSignal carries the optional data the STRAWMAN heuristic needs.
// Any nil field means that signal is unavailable for this partner, and the
// corresponding branch of the heuristic must not fire.
type PartnerSignal struct {
	PersonHash              string
	AgeYears                *int
	HasPriorBusinessHistory *bool
	PresumedAnnualIncome    *domain.Money
	GovContractTotal        *domain.Money
}

// StrawmanConfig parameterizes the STRAWMAN heuristic. The exact thresholds
// are an open question with no labeled data to fit against yet; this
// exposes them as configuration rather than hard-coding a guess.
type StrawmanConfig struct {
	MinAgeYears              int
	MaxAgeYears              int
	CapitalToIncomeRatio     float64
	HighGovContractThreshold domain.Money
}

// DefaultStrawmanConfig is a representative, documented default (see
// DESIGN.md); operators are expected to tune it against labeled data.
func DefaultStrawmanConfig() StrawmanConfig {
	threshold, _ := domain.NewMoney(500_000, 0)
	return StrawmanConfig{
		MinAgeYears:              20,
		MaxAgeYears:              80,
		CapitalToIncomeRatio:     10,
		HighGovContractThreshold: threshold,
	}
}

// AlertContext is the plain in-memory data detectCriticalAlerts evaluates.
// Every field is data already fetched by the caller; nothing here triggers
// I/O.
type AlertContext struct {
	Supplier         domain.Supplier
	Partners         []domain.Partner
	OwnershipLinks   []domain.OwnershipLink
	Contracts        []domain.Contract
	Sanctions        []domain.Sanction
	Donations        []domain.Donation
	RelatedSuppliers []RelatedSupplierView
	PartnerSignals   []PartnerSignal
	Strawman         StrawmanConfig
	// Now is supplied by the caller for testability
	Now time.Time
}

// DetectCriticalAlerts evaluates every alert condition against ctx and
// returns the alerts in the fixed emission order defined by
// domain.AllAlertKinds, with duplicates across the same (kind, partner?)
// pair collapsed.
func DetectCriticalAlerts(ctx AlertContext) []domain.CriticalAlert {
	var alerts []domain.CriticalAlert

	alerts = append(alerts, detectPublicServantPartners(ctx)...)
	alerts = append(alerts, detectSanctionedStillContracting(ctx)...)
	alerts = append(alerts, detectTenderRotation(ctx)...)
	alerts = append(alerts, detectDonationToContractAwarder(ctx)...)
	alerts = append(alerts, detectPartnerSanctionedElsewhere(ctx)...)
	alerts = append(alerts, detectStrawman(ctx)...)

	return domain.DedupeAlerts(alerts)
}

func detectPublicServantPartners(ctx AlertContext) []domain.CriticalAlert {
	var out []domain.CriticalAlert
	for _, p := range ctx.Partners {
		if !p.IsPublicServant {
			continue
		}
		out = append(out, domain.CriticalAlert{
			Kind:        domain.AlertPartnerIsPublicServant,
			Severity:    domain.SeverityMostSevere,
			Description: "a partner of this supplier is a public servant",
			Evidence:    fmt.Sprintf("supplier=%s partner=%s employingBody=%q", ctx.Supplier.ID, p.PersonIDHash, p.EmployingBody),
			DetectedAt:  ctx.Now,
			PartnerHash: p.PersonIDHash,
		})
	}
	return out
}

func detectSanctionedStillContracting(ctx AlertContext) []domain.CriticalAlert {
	var out []domain.CriticalAlert
	for _, s := range ctx.Sanctions {
		if !s.Active(ctx.Now) {
			continue
		}
		for _, c := range ctx.Contracts {
			if c.SigningDate.Before(s.Start) {
				continue
			}
			out = append(out, domain.CriticalAlert{
				Kind:        domain.AlertSanctionedSupplierContracting,
				Severity:    domain.SeverityMostSevere,
				Description: "supplier holds an active sanction and signed a contract on or after its start date",
				Evidence:    fmt.Sprintf("supplier=%s sanctionStart=%s contractSigned=%s tender=%s", ctx.Supplier.ID, s.Start.Format("2006-01-02"), c.SigningDate.Format("2006-01-02"), c.TenderNumber),
				DetectedAt:  ctx.Now,
			})
			break
		}
	}
	return out
}

func detectTenderRotation(ctx AlertContext) []domain.CriticalAlert {
	if len(ctx.RelatedSuppliers) == 0 {
		return nil
	}
	ownTenders := make(map[domain.TenderNumber]struct{}, len(ctx.Contracts))
	for _, c := range ctx.Contracts {
		if c.TenderNumber != "" {
			ownTenders[c.TenderNumber] = struct{}{}
		}
	}
	var out []domain.CriticalAlert
	for _, rel := range ctx.RelatedSuppliers {
		for _, c := range rel.OtherContracts {
			if c.TenderNumber == "" {
				continue
			}
			if _, ok := ownTenders[c.TenderNumber]; !ok {
				continue
			}
			out = append(out, domain.CriticalAlert{
				Kind:        domain.AlertTenderRotation,
				Severity:    domain.SeverityMostSevere,
				Description: "supplier shares a partner and a tender with another supplier",
				Evidence:    fmt.Sprintf("supplier=%s otherSupplier=%s sharedPartner=%s tender=%s", ctx.Supplier.ID, rel.OtherSupplierID, rel.PartnerHash, c.TenderNumber),
				DetectedAt:  ctx.Now,
				PartnerHash: rel.PartnerHash,
			})
			break
		}
	}
	return out
}

const donationMaterialityThreshold = 10_000_00  // cents, > 10 000
const contractMaterialityThreshold = 500_000_00 // cents, > 500 000

func detectDonationToContractAwarder(ctx AlertContext) []domain.CriticalAlert {
	var out []domain.CriticalAlert
	for _, d := range ctx.Donations {
		if d.Amount.Cents() <= donationMaterialityThreshold {
			continue
		}
		for _, c := range ctx.Contracts {
			if c.OrgCode != d.PoliticalBodyAlignment {
				continue
			}
			if c.Value.Cents() <= contractMaterialityThreshold {
				continue
			}
			out = append(out, domain.CriticalAlert{
				Kind:        domain.AlertDonationToContractAwarder,
				Severity:    domain.SeveritySevere,
				Description: "a donation to the contract-awarding body's aligned candidate exceeds materiality jointly with the contract value",
				Evidence:    fmt.Sprintf("supplier=%s donation=%s contract=%s org=%s", ctx.Supplier.ID, d.Amount, c.Value, c.OrgCode),
				DetectedAt:  ctx.Now,
			})
			break
		}
	}
	return out
}

func detectPartnerSanctionedElsewhere(ctx AlertContext) []domain.CriticalAlert {
	var out []domain.CriticalAlert
	for _, p := range ctx.Partners {
		if !p.IsSanctioned {
			continue
		}
		out = append(out, domain.CriticalAlert{
			Kind:        domain.AlertPartnerSanctionedElsewhere,
			Severity:    domain.SeveritySevere,
			Description: "a partner of this supplier is sanctioned in another capacity",
			Evidence:    fmt.Sprintf("supplier=%s partner=%s", ctx.Supplier.ID, p.PersonIDHash),
			DetectedAt:  ctx.Now,
			PartnerHash: p.PersonIDHash,
		})
	}
	return out
}

func detectStrawman(ctx AlertContext) []domain.CriticalAlert {
	cfg := ctx.Strawman
	var out []domain.CriticalAlert
	for _, sig := range ctx.PartnerSignals {
		if triggered, reason := strawmanTriggered(sig, cfg); triggered {
			out = append(out, domain.CriticalAlert{
				Kind:        domain.AlertStrawman,
				Severity:    domain.SeverityMostSevere,
				Description: "partner profile matches the strawman heuristic bundle",
				Evidence:    fmt.Sprintf("supplier=%s partner=%s reason=%s", ctx.Supplier.ID, sig.PersonHash, reason),
				DetectedAt:  ctx.Now,
				PartnerHash: sig.PersonHash,
			})
		}
	}
	return out
}

func strawmanTriggered(sig PartnerSignal, cfg StrawmanConfig) (bool, string) {
	var reasons []string
	if sig.AgeYears != nil && (*sig.AgeYears < cfg.MinAgeYears || *sig.AgeYears > cfg.MaxAgeYears) {
		reasons = append(reasons, "age-out-of-range")
	}
	if sig.HasPriorBusinessHistory != nil && !*sig.HasPriorBusinessHistory &&
		sig.PresumedAnnualIncome != nil && sig.GovContractTotal != nil {
		income := float64(sig.PresumedAnnualIncome.Cents())
		capitalProxy := float64(sig.GovContractTotal.Cents())
		disproportionate := income > 0 && capitalProxy > income*cfg.CapitalToIncomeRatio
		highGovTotal := sig.GovContractTotal.GreaterThan(cfg.HighGovContractThreshold)
		if disproportionate && highGovTotal {
			reasons = append(reasons, "no-history-disproportionate-capital-high-gov-total")
		}
	}
	if len(reasons) == 0 {
		return false, ""
	}
	return true, strings.Join(reasons, ",")
}
