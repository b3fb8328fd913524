/*
dto.go - API data transfer objects

PURPOSE:
  Request/response structures for the REST API. Separates the HTTP wire
  contract from domain types so the engine can evolve independently of
  the API. Monetary amounts travel as strings to avoid float rounding on
  the wire.

SEE ALSO:
  - handlers.go: Handler implementations using these DTOs
*/
package api

import (
	"time"

	"github.com/swazimin/royalty-engine/royalty"
)

// =============================================================================
// REQUEST DTOS
// =============================================================================

// CreateRecordRequest creates or replaces a royalty record.
type CreateRecordRequest struct {
	ID         string  `json:"id"`
	Entity     string  `json:"entity"`
	Mineral    string  `json:"mineral"`
	Volume     float64 `json:"volume"`
	Tariff     float64 `json:"tariff"`
	Currency   string  `json:"currency,omitempty"`
	DueDate    string  `json:"due_date"` // YYYY-MM-DD
	Status     string  `json:"status,omitempty"`
	Method     string  `json:"method,omitempty"`
	ContractID string  `json:"contract_id,omitempty"`

	UnitPrice      *float64 `json:"unit_price,omitempty"`
	MarketValue    *float64 `json:"market_value,omitempty"`
	GrossValue     *float64 `json:"gross_value,omitempty"`
	AdValoremRate  *float64 `json:"ad_valorem_rate,omitempty"`
	PercentageRate *float64 `json:"percentage_rate,omitempty"`
}

// CalculateRequest controls one calculation run.
type CalculateRequest struct {
	EvaluationDate  string `json:"evaluation_date,omitempty"` // YYYY-MM-DD, default today
	GracePeriodDays int    `json:"grace_period_days,omitempty"`
	Compound        *bool  `json:"compound,omitempty"`
	SaveAudit       bool   `json:"save_audit,omitempty"`
}

// =============================================================================
// RESPONSE DTOS
// =============================================================================

// RecordDTO is the wire form of a royalty record.
type RecordDTO struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Mineral    string `json:"mineral"`
	Volume     string `json:"volume"`
	Tariff     string `json:"tariff"`
	Currency   string `json:"currency"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status"`
	Method     string `json:"method"`
	ContractID string `json:"contract_id,omitempty"`
}

// ResultDTO is the wire form of a calculation result.
type ResultDTO struct {
	RecordID    string         `json:"record_id"`
	Method      string         `json:"method"`
	Currency    string         `json:"currency"`
	EvaluatedAt string         `json:"evaluated_at"`
	Base        string         `json:"base_amount"`
	Penalties   string         `json:"penalties"`
	Interest    string         `json:"interest"`
	Adjustments string         `json:"adjustments"`
	Total       string         `json:"total"`
	IsValid     bool           `json:"is_valid"`
	Errors      []FindingDTO   `json:"errors,omitempty"`
	Warnings    []FindingDTO   `json:"warnings,omitempty"`
	Lines       []LineDTO      `json:"breakdown"`
	Rules       []string       `json:"applied_rules"`
	Penalty     *PenaltyDTO    `json:"penalty,omitempty"`
	Accrual     *InterestDTO   `json:"interest_detail,omitempty"`
	Adjustment  *AdjustmentDTO `json:"currency_adjustment,omitempty"`
}

// FindingDTO is one validation finding.
type FindingDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LineDTO is one labeled breakdown amount.
type LineDTO struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// PenaltyDTO details the penalty assessment.
type PenaltyDTO struct {
	DaysPastDue int    `json:"days_past_due"`
	Bracket     string `json:"bracket"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
	Compounded  bool   `json:"compounded"`
}

// InterestDTO details the interest accrual.
type InterestDTO struct {
	DaysLate        int    `json:"days_late"`
	GracePeriodDays int    `json:"grace_period_days"`
	InterestDays    int    `json:"interest_days"`
	AnnualRate      string `json:"annual_rate"`
	Amount          string `json:"amount"`
}

// AdjustmentDTO details the currency relabeling.
type AdjustmentDTO struct {
	Currency      string `json:"currency"`
	ExchangeRate  string `json:"exchange_rate"`
	DisplayedOnly bool   `json:"displayed_only"`
}

// AuditDTO is the wire form of an audit record.
type AuditDTO struct {
	ID           string    `json:"id"`
	RecordID     string    `json:"record_id"`
	Method       string    `json:"method"`
	Timestamp    string    `json:"timestamp"`
	Total        string    `json:"total"`
	AppliedRules []string  `json:"applied_rules"`
	Result       ResultDTO `json:"result"`
}

// SuggestionDTO is the advisory method suggestion.
type SuggestionDTO struct {
	Mineral string `json:"mineral"`
	Method  string `json:"method"`
	Reason  string `json:"reason"`
}

// ScenarioDTO describes one demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toRecordDTO(r royalty.RoyaltyRecord) RecordDTO {
	return RecordDTO{
		ID:         r.ID,
		Entity:     r.Entity,
		Mineral:    string(r.Mineral),
		Volume:     r.Volume.String(),
		Tariff:     r.Tariff.String(),
		Currency:   string(r.EffectiveCurrency()),
		DueDate:    r.DueDate.Format("2006-01-02"),
		Status:     string(r.Status),
		Method:     string(r.EffectiveMethod()),
		ContractID: r.ContractID,
	}
}

func toResultDTO(result *royalty.CalculationResult) ResultDTO {
	dto := ResultDTO{
		RecordID:    result.RecordID,
		Method:      string(result.Method),
		Currency:    string(result.Currency),
		EvaluatedAt: result.EvaluatedAt.Format(time.RFC3339),
		Base:        result.Breakdown.Base.StringFixed(2),
		Penalties:   result.Breakdown.Penalties.StringFixed(2),
		Interest:    result.Breakdown.Interest.StringFixed(2),
		Adjustments: result.Breakdown.Adjustments.StringFixed(2),
		Total:       result.Total.StringFixed(2),
		IsValid:     result.IsValid,
		Errors:      toFindingDTOs(result.Errors),
		Warnings:    toFindingDTOs(result.Warnings),
		Rules:       result.AppliedRules(),
		Penalty: &PenaltyDTO{
			DaysPastDue: result.Penalty.DaysPastDue,
			Bracket:     string(result.Penalty.Bracket),
			Rate:        result.Penalty.Rate.String(),
			Amount:      result.Penalty.Amount.StringFixed(2),
			Compounded:  result.Penalty.Compounded,
		},
		Accrual: &InterestDTO{
			DaysLate:        result.Interest.DaysLate,
			GracePeriodDays: result.Interest.GracePeriodDays,
			InterestDays:    result.Interest.InterestPeriodDays,
			AnnualRate:      result.Interest.AnnualRate.String(),
			Amount:          result.Interest.Amount.StringFixed(2),
		},
		Adjustment: &AdjustmentDTO{
			Currency:      string(result.Adjustment.TargetCurrency),
			ExchangeRate:  result.Adjustment.ExchangeRate.String(),
			DisplayedOnly: result.Adjustment.ExchangeRateDisplayedOnly,
		},
	}

	for _, line := range result.Base.Lines {
		dto.Lines = append(dto.Lines, LineDTO{
			Label:  line.Label,
			Amount: line.Amount.StringFixed(2),
		})
	}

	return dto
}

func toFindingDTOs(findings []royalty.Finding) []FindingDTO {
	if len(findings) == 0 {
		return nil
	}
	dtos := make([]FindingDTO, len(findings))
	for i, f := range findings {
		dtos[i] = FindingDTO{Code: f.Code, Message: f.Message}
	}
	return dtos
}

func toAuditDTO(a royalty.AuditRecord) AuditDTO {
	return AuditDTO{
		ID:           a.ID,
		RecordID:     a.RecordID,
		Method:       string(a.Method),
		Timestamp:    a.Timestamp.Format(time.RFC3339),
		Total:        a.Result.Total.StringFixed(2),
		AppliedRules: a.AppliedRules,
		Result:       toResultDTO(&a.Result),
	}
}
