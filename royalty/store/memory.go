// Package store provides in-memory implementations of the royalty store
// interfaces for tests and development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/swazimin/royalty-engine/royalty"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements royalty.RecordStore, royalty.ContractStore and
// royalty.AuditStore with map-backed storage.
type Memory struct {
	mu        sync.RWMutex
	records   map[string]royalty.RoyaltyRecord
	contracts map[string]royalty.ContractRecord
	audits    map[string]royalty.AuditRecord
}

func NewMemory() *Memory {
	return &Memory{
		records:   make(map[string]royalty.RoyaltyRecord),
		contracts: make(map[string]royalty.ContractRecord),
		audits:    make(map[string]royalty.AuditRecord),
	}
}

// Compile-time interface checks.
var (
	_ royalty.RecordStore   = (*Memory)(nil)
	_ royalty.ContractStore = (*Memory)(nil)
	_ royalty.AuditStore    = (*Memory)(nil)
)

// Reset discards all stored records, contracts and audits.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]royalty.RoyaltyRecord)
	m.contracts = make(map[string]royalty.ContractRecord)
	m.audits = make(map[string]royalty.AuditRecord)
	return nil
}

// =============================================================================
// RECORDS
// =============================================================================

func (m *Memory) SaveRecord(_ context.Context, r royalty.RoyaltyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.ID] = r
	return nil
}

func (m *Memory) GetRecord(_ context.Context, id string) (*royalty.RoyaltyRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	if !ok {
		return nil, royalty.ErrRecordNotFound
	}
	return &r, nil
}

func (m *Memory) ListRecords(_ context.Context) ([]royalty.RoyaltyRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]royalty.RoyaltyRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteRecord(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return royalty.ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

// =============================================================================
// CONTRACTS
// =============================================================================

func (m *Memory) SaveContract(_ context.Context, c royalty.ContractRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contracts[c.ID] = c
	return nil
}

func (m *Memory) GetContract(_ context.Context, id string) (*royalty.ContractRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.contracts[id]
	if !ok {
		return nil, royalty.ErrContractNotFound
	}
	return &c, nil
}

func (m *Memory) ListContracts(_ context.Context) ([]royalty.ContractRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]royalty.ContractRecord, 0, len(m.contracts))
	for _, c := range m.contracts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteContract(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.contracts[id]; !ok {
		return royalty.ErrContractNotFound
	}
	delete(m.contracts, id)
	return nil
}

// =============================================================================
// AUDITS - Append-only
// =============================================================================

func (m *Memory) SaveAudit(_ context.Context, a royalty.AuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audits[a.ID] = a
	return nil
}

func (m *Memory) GetAudit(_ context.Context, id string) (*royalty.AuditRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.audits[id]
	if !ok {
		return nil, royalty.ErrAuditNotFound
	}
	return &a, nil
}

// ListAudits returns audits for a record, or all audits when recordID is
// empty, ordered by ID for stable output.
func (m *Memory) ListAudits(_ context.Context, recordID string) ([]royalty.AuditRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []royalty.AuditRecord
	for _, a := range m.audits {
		if recordID == "" || a.RecordID == recordID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
