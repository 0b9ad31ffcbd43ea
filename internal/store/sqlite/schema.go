package sqlite

// schema documents the dimensional layout the analytical store is expected
// to carry: dimensions for supplier, government body, partner,
// modality, election candidate, time; fact tables for contract, donation,
// score-indicator row, and critical-alert row; a bridge joining supplier to
// partner; and a sanction table. The ingestion pipeline that produces the
// store file is an external collaborator and owns the DDL; this
// schema is only ever applied by test fixtures that stand up an in-memory
// store shaped like the production artifact.
const schema = `
CREATE TABLE IF NOT EXISTS dim_supplier (
	supplier_key     INTEGER PRIMARY KEY,
	company_id       TEXT NOT NULL UNIQUE,
	legal_name       TEXT NOT NULL,
	opening_date     TEXT,
	capital_cents    INTEGER NOT NULL DEFAULT 0,
	primary_activity TEXT,
	address_street   TEXT,
	address_number   TEXT,
	cadastral_status TEXT,
	employee_count   INTEGER
);

CREATE TABLE IF NOT EXISTS dim_gov_org (
	org_key  INTEGER PRIMARY KEY,
	org_code TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS dim_partner (
	partner_key       INTEGER PRIMARY KEY,
	person_hash       TEXT NOT NULL UNIQUE,
	name              TEXT NOT NULL,
	is_public_servant INTEGER NOT NULL DEFAULT 0,
	employing_body    TEXT,
	is_sanctioned     INTEGER NOT NULL DEFAULT 0,
	gov_supplier_count INTEGER NOT NULL DEFAULT 0,
	age_years         INTEGER,
	has_prior_business INTEGER,
	presumed_income_cents INTEGER,
	gov_contract_total_cents INTEGER
);

CREATE TABLE IF NOT EXISTS bridge_supplier_partner (
	supplier_key  INTEGER NOT NULL,
	partner_key   INTEGER NOT NULL,
	qualification TEXT,
	entry_date    TEXT,
	exit_date     TEXT,
	capital_share_hundredths INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS fact_contract (
	contract_key  INTEGER PRIMARY KEY,
	supplier_key  INTEGER NOT NULL,
	org_key       INTEGER NOT NULL,
	value_cents   INTEGER NOT NULL,
	subject       TEXT,
	tender_number TEXT,
	signing_date  TEXT,
	valid_until   TEXT
);

CREATE TABLE IF NOT EXISTS fact_sanction (
	sanction_key     INTEGER PRIMARY KEY,
	supplier_key     INTEGER NOT NULL,
	kind             TEXT NOT NULL,
	sanctioning_body TEXT,
	reason           TEXT,
	start_date       TEXT NOT NULL,
	end_date         TEXT
);

CREATE TABLE IF NOT EXISTS dim_candidate (
	candidate_key INTEGER PRIMARY KEY,
	name          TEXT NOT NULL,
	party         TEXT,
	office        TEXT,
	org_alignment TEXT
);

CREATE TABLE IF NOT EXISTS fact_donation (
	donation_key   INTEGER PRIMARY KEY,
	supplier_key   INTEGER,
	partner_key    INTEGER,
	candidate_key  INTEGER NOT NULL,
	amount_cents   INTEGER NOT NULL,
	election_year  INTEGER NOT NULL,
	resource_type  TEXT
);

CREATE TABLE IF NOT EXISTS fact_critical_alert (
	alert_key    INTEGER PRIMARY KEY,
	supplier_key INTEGER NOT NULL,
	partner_key  INTEGER,
	kind         TEXT NOT NULL,
	severity     TEXT NOT NULL,
	description  TEXT,
	evidence     TEXT,
	detected_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fact_score_indicator (
	indicator_key INTEGER PRIMARY KEY,
	supplier_key  INTEGER NOT NULL,
	kind          TEXT NOT NULL,
	weight        INTEGER NOT NULL,
	description   TEXT,
	evidence      TEXT
);
`
