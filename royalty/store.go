/*
store.go - Collaborator store interfaces

PURPOSE:
  The engine itself performs no I/O; these interfaces describe the
  external collaborators it is wired to at the application layer:

  ContractStore: contractId -> ContractParams (contract capture system)
  RecordStore:   royalty record persistence
  AuditStore:    archived audit exports for compliance

  store/sqlite implements all three for the server; royalty/store
  provides the in-memory doubles used in tests.
*/
package royalty

import "context"

// ContractRecord is a stored contract: identity plus calculation params.
type ContractRecord struct {
	ID          string
	Title       string
	Entity      string
	Mineral     Mineral
	Method      Method
	Params      ContractParams
	Description string
}

// ContractStore resolves contracts for the calculation pipeline.
type ContractStore interface {
	SaveContract(ctx context.Context, c ContractRecord) error
	GetContract(ctx context.Context, id string) (*ContractRecord, error)
	ListContracts(ctx context.Context) ([]ContractRecord, error)
	DeleteContract(ctx context.Context, id string) error
}

// RecordStore persists royalty records.
type RecordStore interface {
	SaveRecord(ctx context.Context, r RoyaltyRecord) error
	GetRecord(ctx context.Context, id string) (*RoyaltyRecord, error)
	ListRecords(ctx context.Context) ([]RoyaltyRecord, error)
	DeleteRecord(ctx context.Context, id string) error
}

// AuditStore archives exported audit records. Audits are append-only:
// there is no update or delete.
type AuditStore interface {
	SaveAudit(ctx context.Context, a AuditRecord) error
	GetAudit(ctx context.Context, id string) (*AuditRecord, error)
	ListAudits(ctx context.Context, recordID string) ([]AuditRecord, error)
}
