/*
audit.go - Audit export and presentation summary

PURPOSE:
  Two read-only views over a completed CalculationResult:

  ExportAudit: an immutable compliance record - generated ID, the
  evaluation timestamp, the full nested breakdown, and the flattened
  applied-rules trail in pipeline order. Pure transformation, no
  validation.

  Summarize: the convenience view presentation layers consume without
  re-deriving anything.
*/
package royalty

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// AUDIT RECORD
// =============================================================================

// AuditRecord is the immutable compliance export of one calculation.
type AuditRecord struct {
	ID        string
	Timestamp time.Time // the calculation's evaluation date
	RecordID  string
	Method    Method

	// Full nested breakdown, frozen as computed.
	Result CalculationResult

	// Every stage's rule strings concatenated in pipeline order.
	AppliedRules []string
}

// ExportAudit produces the audit record for a completed result. The ID is
// freshly generated; everything else is copied verbatim from the result.
func ExportAudit(result *CalculationResult) AuditRecord {
	return AuditRecord{
		ID:           "CALC-" + uuid.NewString(),
		Timestamp:    result.EvaluatedAt,
		RecordID:     result.RecordID,
		Method:       result.Method,
		Result:       *result,
		AppliedRules: result.AppliedRules(),
	}
}

// =============================================================================
// CALCULATION SUMMARY
// =============================================================================

// CalculationSummary is the flattened display view of a result.
type CalculationSummary struct {
	Method       Method
	Currency     Currency
	BaseAmount   decimal.Decimal
	Penalties    decimal.Decimal
	Interest     decimal.Decimal
	Total        decimal.Decimal
	Breakdown    TotalsBreakdown
	AppliedRules []string
	Warnings     []Finding
}

// Summarize flattens a result for presentation.
func Summarize(result *CalculationResult) CalculationSummary {
	return CalculationSummary{
		Method:       result.Method,
		Currency:     result.Currency,
		BaseAmount:   result.Base.BaseAmount,
		Penalties:    result.Penalty.Amount,
		Interest:     result.Interest.Amount,
		Total:        result.Total,
		Breakdown:    result.Breakdown,
		AppliedRules: result.AppliedRules(),
		Warnings:     result.Warnings,
	}
}
