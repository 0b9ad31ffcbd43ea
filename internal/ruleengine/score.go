package ruleengine

import (
	"strconv"
	"time"

	"supplierwatch/internal/domain"
)

// ActivityLookup is the curated, manually-maintained mapping the ACTIVITY_MISMATCH
// and LOW_CAPITAL indicators need but the ingestion pipeline leaves
// uncurated. CategoryFor classifies a primary activity
// code into a coarse category (e.g. "SERVICE", "COMMERCE"); SectorThreshold
// gives the minimum tolerated capital for that category; SubjectCategory
// classifies free-text contract subjects into the same category
// vocabulary so ACTIVITY_MISMATCH can compare disjointness.
type ActivityLookup interface {
	CategoryFor(code domain.CNAECode) (category string, ok bool)
	SectorThreshold(category string) (domain.Money, bool)
	SubjectCategory(subject string) (category string, ok bool)
}

// ScoreContext is the plain in-memory data computeCumulativeScore evaluates.
type ScoreContext struct {
	Supplier             domain.Supplier
	Partners             []domain.Partner
	Contracts            []domain.Contract
	Sanctions            []domain.Sanction
	Lookup               ActivityLookup
	SharedAddressElsewhere bool
	EmployeeCount        *int
	ContractsDescribeServices bool
	Now                  time.Time
}

// ComputeCumulativeScore evaluates every indicator predicate independently
// and sums the weights of those that hold, clamped to 100.
func ComputeCumulativeScore(ctx ScoreContext) domain.ScoreBreakdown {
	var active []domain.Indicator

	if ind, ok := lowCapital(ctx); ok {
		active = append(active, ind)
	}
	if ind, ok := recentCompany(ctx); ok {
		active = append(active, ind)
	}
	if ind, ok := activityMismatch(ctx); ok {
		active = append(active, ind)
	}
	if ind, ok := partnerInManySuppliers(ctx); ok {
		active = append(active, ind)
	}
	if ind, ok := sharedAddress(ctx); ok {
		active = append(active, ind)
	}
	if ind, ok := exclusiveBuyer(ctx); ok {
		active = append(active, ind)
	}
	if ind, ok := noEmployees(ctx); ok {
		active = append(active, ind)
	}
	if ind, ok := suddenGrowth(ctx); ok {
		active = append(active, ind)
	}
	if ind, ok := historicalSanction(ctx); ok {
		active = append(active, ind)
	}

	return domain.NewScoreBreakdown(active)
}

func indicator(kind domain.IndicatorKind, description, evidence string) domain.Indicator {
	return domain.Indicator{
		Kind:        kind,
		Weight:      domain.WeightOf(kind),
		Description: description,
		Evidence:    evidence,
	}
}

func lowCapital(ctx ScoreContext) (domain.Indicator, bool) {
	if ctx.Lookup == nil {
		return domain.Indicator{}, false
	}
	category, ok := ctx.Lookup.CategoryFor(ctx.Supplier.PrimaryActivity)
	if !ok {
		return domain.Indicator{}, false
	}
	threshold, ok := ctx.Lookup.SectorThreshold(category)
	if !ok {
		return domain.Indicator{}, false
	}
	if !threshold.GreaterThan(ctx.Supplier.Capital) {
		return domain.Indicator{}, false
	}
	hasLargeContract := false
	for _, c := range ctx.Contracts {
		if c.Value.Cents() > 100_000_00 {
			hasLargeContract = true
			break
		}
	}
	if !hasLargeContract {
		return domain.Indicator{}, false
	}
	return indicator(domain.IndicatorLowCapital,
		"declared capital is below the sector threshold and a large contract exists",
		"sector="+category+" capital="+ctx.Supplier.Capital.String()+" threshold="+threshold.String()), true
}

func recentCompany(ctx ScoreContext) (domain.Indicator, bool) {
	if ctx.Supplier.OpeningDate.IsZero() || len(ctx.Contracts) == 0 {
		return domain.Indicator{}, false
	}
	first := ctx.Contracts[0].SigningDate
	for _, c := range ctx.Contracts[1:] {
		if c.SigningDate.Before(first) {
			first = c.SigningDate
		}
	}
	sixMonthsBefore := first.AddDate(0, -6, 0)
	if !ctx.Supplier.OpeningDate.After(sixMonthsBefore) {
		return domain.Indicator{}, false
	}
	if ctx.Supplier.OpeningDate.After(first) {
		return domain.Indicator{}, false
	}
	return indicator(domain.IndicatorRecentCompany,
		"company opened less than six months before its first contract",
		"opened="+ctx.Supplier.OpeningDate.Format("2006-01-02")+" firstContract="+first.Format("2006-01-02")), true
}

func activityMismatch(ctx ScoreContext) (domain.Indicator, bool) {
	if ctx.Lookup == nil || len(ctx.Contracts) == 0 {
		return domain.Indicator{}, false
	}
	primaryCategory, ok := ctx.Lookup.CategoryFor(ctx.Supplier.PrimaryActivity)
	if !ok {
		return domain.Indicator{}, false
	}
	for _, c := range ctx.Contracts {
		subjectCategory, ok := ctx.Lookup.SubjectCategory(c.Subject)
		if !ok {
			continue
		}
		if subjectCategory != primaryCategory {
			return indicator(domain.IndicatorActivityMismatch,
				"primary activity category is disjoint from a contract's subject category",
				"activity="+primaryCategory+" subject="+subjectCategory), true
		}
	}
	return domain.Indicator{}, false
}

func partnerInManySuppliers(ctx ScoreContext) (domain.Indicator, bool) {
	for _, p := range ctx.Partners {
		if p.GovSupplierCount >= 3 {
			return indicator(domain.IndicatorPartnerInManySuppliers,
				"a partner holds ownership in three or more government suppliers",
				"partner="+p.PersonIDHash), true
		}
	}
	return domain.Indicator{}, false
}

func sharedAddress(ctx ScoreContext) (domain.Indicator, bool) {
	if !ctx.SharedAddressElsewhere {
		return domain.Indicator{}, false
	}
	return indicator(domain.IndicatorSharedAddress,
		"street and number match another supplier",
		"address="+ctx.Supplier.AddressStreet+" "+ctx.Supplier.AddressNumber), true
}

func exclusiveBuyer(ctx ScoreContext) (domain.Indicator, bool) {
	if len(ctx.Contracts) == 0 {
		return domain.Indicator{}, false
	}
	orgs := make(map[domain.GovOrgCode]struct{}, len(ctx.Contracts))
	for _, c := range ctx.Contracts {
		orgs[c.OrgCode] = struct{}{}
	}
	if len(orgs) != 1 {
		return domain.Indicator{}, false
	}
	var org domain.GovOrgCode
	for o := range orgs {
		org = o
	}
	return indicator(domain.IndicatorExclusiveBuyer,
		"all contracts share a single government org",
		"org="+string(org)), true
}

func noEmployees(ctx ScoreContext) (domain.Indicator, bool) {
	if ctx.EmployeeCount == nil {
		return domain.Indicator{}, false
	}
	if *ctx.EmployeeCount > 0 || !ctx.ContractsDescribeServices {
		return domain.Indicator{}, false
	}
	return indicator(domain.IndicatorNoEmployees,
		"no declared employees while contracts describe services",
		"employeeCount=0"), true
}

func suddenGrowth(ctx ScoreContext) (domain.Indicator, bool) {
	byYear := make(map[int]int64)
	for _, c := range ctx.Contracts {
		byYear[c.SigningDate.Year()] += c.Value.Cents()
	}
	if len(byYear) < 2 {
		return domain.Indicator{}, false
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	for i := 0; i < len(years); i++ {
		for j := 0; j < len(years); j++ {
			if years[j] != years[i]+1 {
				continue
			}
			prev := byYear[years[i]]
			next := byYear[years[j]]
			if prev > 0 && next >= prev*10 {
				return indicator(domain.IndicatorSuddenGrowth,
					"yearly contracted total grew at least tenfold year over year",
					"fromYear="+strconv.Itoa(years[i])+" toYear="+strconv.Itoa(years[j])), true
			}
		}
	}
	return domain.Indicator{}, false
}

func historicalSanction(ctx ScoreContext) (domain.Indicator, bool) {
	for _, s := range ctx.Sanctions {
		if !s.Active(ctx.Now) {
			return indicator(domain.IndicatorHistoricalSanction,
				"supplier has a past, no-longer-active sanction",
				"sanctioningBody="+s.SanctioningBody), true
		}
	}
	return domain.Indicator{}, false
}
