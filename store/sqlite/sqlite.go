/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements all persistence interfaces (RecordStore, ContractStore,
  AuditStore) using SQLite. In production, the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  royalty.RecordStore:   Royalty record persistence
  royalty.ContractStore: Contract definitions with JSON params
  royalty.AuditStore:    Append-only calculation audit trail

APPEND-ONLY ENFORCEMENT:
  The audit trail is append-only:
  - No UPDATE statements on audit_records
  - No DELETE statements on audit_records
  - Re-running a calculation appends a new audit record

KEY TABLES:
  royalty_records: Production filings awaiting or past payment
  contracts:       Contract definitions (params stored as JSON)
  audit_records:   Immutable calculation exports

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/royalty.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - royalty/store.go: Interface definitions
  - royalty/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/swazimin/royalty-engine/royalty"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time interface checks.
var (
	_ royalty.RecordStore   = (*Store)(nil)
	_ royalty.ContractStore = (*Store)(nil)
	_ royalty.AuditStore    = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reset clears all tables. Used by scenario loading and tests; the
// audit trail's append-only guarantee applies to the API surface, not
// to a full store reset.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"royalty_records", "contracts", "audit_records"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Royalty records (production filings)
	CREATE TABLE IF NOT EXISTS royalty_records (
		id TEXT PRIMARY KEY,
		entity TEXT NOT NULL,
		mineral TEXT NOT NULL,
		volume TEXT NOT NULL,
		tariff TEXT NOT NULL,
		currency TEXT NOT NULL DEFAULT '',
		due_date TEXT NOT NULL,
		status TEXT NOT NULL,
		method TEXT NOT NULL DEFAULT '',
		contract_id TEXT,
		unit_price TEXT,
		market_value TEXT,
		gross_value TEXT,
		ad_valorem_rate TEXT,
		percentage_rate TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_entity
		ON royalty_records(entity);
	CREATE INDEX IF NOT EXISTS idx_records_status
		ON royalty_records(status);
	CREATE INDEX IF NOT EXISTS idx_records_due_date
		ON royalty_records(due_date);

	-- Contracts (params stored as JSON)
	CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		entity TEXT NOT NULL DEFAULT '',
		mineral TEXT NOT NULL DEFAULT '',
		method TEXT NOT NULL,
		params_json TEXT NOT NULL,
		description TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_contracts_entity
		ON contracts(entity);

	-- Audit records (append-only calculation trail)
	CREATE TABLE IF NOT EXISTS audit_records (
		id TEXT PRIMARY KEY,
		record_id TEXT NOT NULL,
		method TEXT NOT NULL,
		evaluated_at TEXT NOT NULL,
		result_json TEXT NOT NULL,
		applied_rules_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_audit_record
		ON audit_records(record_id);
	CREATE INDEX IF NOT EXISTS idx_audit_evaluated_at
		ON audit_records(evaluated_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECORD STORE (royalty.RecordStore interface)
// =============================================================================

// SaveRecord inserts or replaces a royalty record.
func (s *Store) SaveRecord(ctx context.Context, r royalty.RoyaltyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO royalty_records
		(id, entity, mineral, volume, tariff, currency, due_date, status, method,
		 contract_id, unit_price, market_value, gross_value, ad_valorem_rate,
		 percentage_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entity = excluded.entity,
			mineral = excluded.mineral,
			volume = excluded.volume,
			tariff = excluded.tariff,
			currency = excluded.currency,
			due_date = excluded.due_date,
			status = excluded.status,
			method = excluded.method,
			contract_id = excluded.contract_id,
			unit_price = excluded.unit_price,
			market_value = excluded.market_value,
			gross_value = excluded.gross_value,
			ad_valorem_rate = excluded.ad_valorem_rate,
			percentage_rate = excluded.percentage_rate,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.Entity,
		string(r.Mineral),
		r.Volume.String(),
		r.Tariff.String(),
		string(r.Currency),
		r.DueDate.Format(time.RFC3339),
		string(r.Status),
		string(r.Method),
		nullString(r.ContractID),
		nullDecimal(r.UnitPrice),
		nullDecimal(r.MarketValue),
		nullDecimal(r.GrossValue),
		nullDecimal(r.AdValoremRate),
		nullDecimal(r.PercentageRate),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	return nil
}

// GetRecord returns one royalty record by ID.
func (s *Store) GetRecord(ctx context.Context, id string) (*royalty.RoyaltyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, recordSelect+" WHERE id = ?", id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, royalty.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRecords returns all royalty records ordered by ID.
func (s *Store) ListRecords(ctx context.Context) ([]royalty.RoyaltyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, recordSelect+" ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []royalty.RoyaltyRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

// DeleteRecord removes a royalty record.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM royalty_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return royalty.ErrRecordNotFound
	}
	return nil
}

const recordSelect = `
	SELECT id, entity, mineral, volume, tariff, currency, due_date, status, method,
	       contract_id, unit_price, market_value, gross_value, ad_valorem_rate,
	       percentage_rate
	FROM royalty_records`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*royalty.RoyaltyRecord, error) {
	var (
		rec           royalty.RoyaltyRecord
		mineral       string
		volume        string
		tariff        string
		currency      string
		dueDate       string
		status        string
		method        string
		contractID    sql.NullString
		unitPrice     sql.NullString
		marketValue   sql.NullString
		grossValue    sql.NullString
		adValoremRate sql.NullString
		pctRate       sql.NullString
	)

	err := row.Scan(
		&rec.ID, &rec.Entity, &mineral, &volume, &tariff, &currency,
		&dueDate, &status, &method, &contractID, &unitPrice, &marketValue,
		&grossValue, &adValoremRate, &pctRate,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	rec.Mineral = royalty.Mineral(mineral)
	rec.Volume = royalty.MustParseDecimal(volume)
	rec.Tariff = royalty.MustParseDecimal(tariff)
	rec.Currency = royalty.Currency(currency)
	rec.DueDate, _ = time.Parse(time.RFC3339, dueDate)
	rec.Status = royalty.Status(status)
	rec.Method = royalty.Method(method)
	rec.ContractID = contractID.String
	rec.UnitPrice = scanDecimal(unitPrice)
	rec.MarketValue = scanDecimal(marketValue)
	rec.GrossValue = scanDecimal(grossValue)
	rec.AdValoremRate = scanDecimal(adValoremRate)
	rec.PercentageRate = scanDecimal(pctRate)

	return &rec, nil
}

// =============================================================================
// CONTRACT STORE (royalty.ContractStore interface)
// =============================================================================

// SaveContract inserts or replaces a contract definition.
func (s *Store) SaveContract(ctx context.Context, c royalty.ContractRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	paramsJSON, err := json.Marshal(c.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal contract params: %w", err)
	}

	query := `
		INSERT INTO contracts
		(id, title, entity, mineral, method, params_json, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			entity = excluded.entity,
			mineral = excluded.mineral,
			method = excluded.method,
			params_json = excluded.params_json,
			description = excluded.description,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, query,
		c.ID,
		c.Title,
		c.Entity,
		string(c.Mineral),
		string(c.Method),
		string(paramsJSON),
		nullString(c.Description),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save contract: %w", err)
	}

	return nil
}

// GetContract returns one contract by ID.
func (s *Store) GetContract(ctx context.Context, id string) (*royalty.ContractRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, contractSelect+" WHERE id = ?", id)
	contract, err := scanContract(row)
	if err == sql.ErrNoRows {
		return nil, royalty.ErrContractNotFound
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// ListContracts returns all contracts ordered by ID.
func (s *Store) ListContracts(ctx context.Context) ([]royalty.ContractRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, contractSelect+" ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	var contracts []royalty.ContractRecord
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, *contract)
	}

	return contracts, rows.Err()
}

// DeleteContract removes a contract definition.
func (s *Store) DeleteContract(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM contracts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return royalty.ErrContractNotFound
	}
	return nil
}

const contractSelect = `
	SELECT id, title, entity, mineral, method, params_json, description
	FROM contracts`

func scanContract(row rowScanner) (*royalty.ContractRecord, error) {
	var (
		c           royalty.ContractRecord
		mineral     string
		method      string
		paramsJSON  string
		description sql.NullString
	)

	err := row.Scan(&c.ID, &c.Title, &c.Entity, &mineral, &method, &paramsJSON, &description)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan contract: %w", err)
	}

	c.Mineral = royalty.Mineral(mineral)
	c.Method = royalty.Method(method)
	c.Description = description.String
	if err := json.Unmarshal([]byte(paramsJSON), &c.Params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contract params: %w", err)
	}

	return &c, nil
}

// =============================================================================
// AUDIT STORE (royalty.AuditStore interface)
// =============================================================================

// SaveAudit appends a calculation audit record. Audit rows are never
// updated or deleted.
func (s *Store) SaveAudit(ctx context.Context, a royalty.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal audit result: %w", err)
	}
	rulesJSON, err := json.Marshal(a.AppliedRules)
	if err != nil {
		return fmt.Errorf("failed to marshal audit rules: %w", err)
	}

	query := `
		INSERT INTO audit_records
		(id, record_id, method, evaluated_at, result_json, applied_rules_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		a.ID,
		a.RecordID,
		string(a.Method),
		a.Timestamp.Format(time.RFC3339),
		string(resultJSON),
		string(rulesJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}

	return nil
}

// GetAudit returns one audit record by ID.
func (s *Store) GetAudit(ctx context.Context, id string) (*royalty.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, auditSelect+" WHERE id = ?", id)
	audit, err := scanAudit(row)
	if err == sql.ErrNoRows {
		return nil, royalty.ErrAuditNotFound
	}
	if err != nil {
		return nil, err
	}
	return audit, nil
}

// ListAudits returns audit records for one royalty record, oldest first.
// An empty recordID returns the full trail.
func (s *Store) ListAudits(ctx context.Context, recordID string) ([]royalty.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := auditSelect + " ORDER BY evaluated_at ASC, id ASC"
	args := []any{}
	if recordID != "" {
		query = auditSelect + " WHERE record_id = ? ORDER BY evaluated_at ASC, id ASC"
		args = append(args, recordID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	var audits []royalty.AuditRecord
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		audits = append(audits, *audit)
	}

	return audits, rows.Err()
}

const auditSelect = `
	SELECT id, record_id, method, evaluated_at, result_json, applied_rules_json
	FROM audit_records`

func scanAudit(row rowScanner) (*royalty.AuditRecord, error) {
	var (
		a           royalty.AuditRecord
		method      string
		evaluatedAt string
		resultJSON  string
		rulesJSON   string
	)

	err := row.Scan(&a.ID, &a.RecordID, &method, &evaluatedAt, &resultJSON, &rulesJSON)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit record: %w", err)
	}

	a.Method = royalty.Method(method)
	a.Timestamp, _ = time.Parse(time.RFC3339, evaluatedAt)
	if err := json.Unmarshal([]byte(resultJSON), &a.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit result: %w", err)
	}
	if err := json.Unmarshal([]byte(rulesJSON), &a.AppliedRules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit rules: %w", err)
	}

	return &a, nil
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func scanDecimal(ns sql.NullString) *decimal.Decimal {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	d := royalty.MustParseDecimal(ns.String)
	return &d
}
