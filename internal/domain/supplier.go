package domain

import "time"

// Supplier is the aggregate root: a company with at least one contract with
// a public body. Alerts and score are always derived by the rule engine for
// the request at hand; nothing in this core ever persists them back onto the
// aggregate.
type Supplier struct {
	ID              CompanyId
	LegalName       string
	OpeningDate     time.Time
	Capital         Money
	PrimaryActivity CNAECode
	AddressStreet   string
	AddressNumber   string
	CadastralStatus CadastralStatus
	// EmployeeCount is nil when the ingestion pipeline has no declaration on
	// file for this supplier; NO_EMPLOYEES only evaluates when non-nil.
	EmployeeCount *int
}

// CNAECode is the opaque primary-activity classification code.
type CNAECode string

// GovOrgCode identifies a contracting public body.
type GovOrgCode string

// TenderNumber identifies a single procurement event.
type TenderNumber string

// Contract is a single award between a supplier and a government org.
type Contract struct {
	SupplierID   CompanyId
	OrgCode      GovOrgCode
	Value        Money
	Subject      string
	TenderNumber TenderNumber
	SigningDate  time.Time
	ValidUntil   time.Time
}

// Sanction is a record from one of the three public sanction registries.
type Sanction struct {
	SupplierID      CompanyId
	Kind            SanctionKind
	SanctioningBody string
	Reason          string
	Start           time.Time
	End             *time.Time
}

// Active reports whether the sanction is in force as of asOf: an open or
// future end date counts as active.
func (s Sanction) Active(asOf time.Time) bool {
	if s.End == nil {
		return true
	}
	return !s.End.Before(asOf)
}

// OwnershipLink ties a Partner to a Supplier with a capital share.
type OwnershipLink struct {
	SupplierID    CompanyId
	PartnerIDHash string
	Qualification string
	EntryDate     time.Time
	ExitDate      *time.Time
	CapitalShare  Share
}

// Partner is a natural or juridical person holding an ownership link. The
// identifier is always the keyed hash computed upstream; this core never
// handles the plaintext national person id beyond validating an inbound
// request path segment.
type Partner struct {
	PersonIDHash     string
	Name             string
	Qualification    string
	IsPublicServant  bool
	EmployingBody    string
	IsSanctioned     bool
	GovSupplierCount int
}

// Donation links a supplier and/or partner to a campaign contribution.
type Donation struct {
	SupplierID   *CompanyId
	PartnerHash  *string
	Candidate    string
	Party        string
	Office       string
	Amount       Money
	ElectionYear int
	ResourceType string
	// PoliticalBodyAlignment identifies the gov org the candidate's office
	// aligns with, used by DONATION_TO_CONTRACT_AWARDER to join against
	// Contract.OrgCode. It is derived upstream by the ingestion pipeline.
	PoliticalBodyAlignment GovOrgCode
}
