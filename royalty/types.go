/*
Package royalty provides the mineral royalty payment calculation engine.

PURPOSE:
  This package contains the types and algorithms for computing the royalty
  obligation owed on a mineral-production record: base royalty under one of
  six contractual calculation methods, overdue-payment penalties, accrued
  interest, currency normalization, and a fully itemized, auditable result.

KEY CONCEPTS IN THIS FILE (types.go):
  - RoyaltyRecord: A production record submitted for assessment
  - ContractParams: Tier / sliding-scale / hybrid configuration from a contract
  - PriceSnapshot: Current and baseline commodity price for a mineral
  - CalculationResult: The complete itemized outcome of one assessment

DESIGN PRINCIPLES:
  1. Purity: Every stage is a function of (record, params, prices, date)
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Determinism: Evaluation date is an explicit input, never time.Now()
  4. Auditability: Every numeric decision is recorded as a breakdown line
     and a human-readable applied rule

USAGE:
  engine := royalty.NewEngine(royalty.DefaultRateConfig())
  result, err := engine.Calculate(royalty.Input{
      Record:         record,
      Contract:       params,
      EvaluationDate: date,
  })

SEE ALSO:
  - rates.go: Injected rate tables (exchange, interest, penalty, commodity)
  - methods.go: Method dispatcher and the fixed calculator
  - engine.go: The calculation pipeline
*/
package royalty

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS AND ENUMS
// =============================================================================

// Mineral is the key into the commodity, tier, and minimum-payment tables.
type Mineral string

const (
	MineralCoal          Mineral = "Coal"
	MineralIronOre       Mineral = "Iron Ore"
	MineralDiamond       Mineral = "Diamond"
	MineralGold          Mineral = "Gold"
	MineralQuarriedStone Mineral = "Quarried Stone"
	MineralGravel        Mineral = "Gravel"
	MineralSand          Mineral = "Sand"
	MineralLimestone     Mineral = "Limestone"
)

// Currency is an ISO-style currency code. SZL (Emalangeni) is the base.
type Currency string

const (
	CurrencySZL Currency = "SZL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyZAR Currency = "ZAR"
	CurrencyGBP Currency = "GBP"
)

// BaseCurrency is the currency all base calculations are expressed in.
const BaseCurrency = CurrencySZL

// Status is the payment status of a royalty record.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusPaid     Status = "Paid"
	StatusOverdue  Status = "Overdue"
	StatusDisputed Status = "Disputed"
)

// Method identifies one of the six supported calculation methods.
// The set is closed: the dispatcher switches exhaustively over these
// values and anything else is an UnknownMethodError.
type Method string

const (
	MethodFixed        Method = "fixed"
	MethodTiered       Method = "tiered"
	MethodSlidingScale Method = "sliding_scale"
	MethodAdValorem    Method = "ad_valorem"
	MethodPercentage   Method = "percentage"
	MethodHybrid       Method = "hybrid"
)

// Methods lists every supported calculation method.
func Methods() []Method {
	return []Method{
		MethodFixed, MethodTiered, MethodSlidingScale,
		MethodAdValorem, MethodPercentage, MethodHybrid,
	}
}

// =============================================================================
// ROYALTY RECORD - Input owned by the caller
// =============================================================================

// RoyaltyRecord is a single mineral-production record to be assessed.
// Volume and Tariff must be non-negative; the engine does not silently
// correct financial inputs (caller's contract, see totals.go validation).
type RoyaltyRecord struct {
	ID       string
	Entity   string // producing entity, e.g. "Maloma Colliery"
	Mineral  Mineral
	Volume   decimal.Decimal // production volume in the mineral's unit
	Tariff   decimal.Decimal // unit tariff for fixed-rate calculation
	Currency Currency        // reporting currency; empty = SZL
	DueDate  time.Time
	Status   Status

	// Method is the configured calculation method. Empty defaults to fixed.
	Method Method

	// ContractID references the contract whose calculation parameters
	// apply. Resolution is the caller's job; the engine receives the
	// resolved ContractParams struct.
	ContractID string

	// Optional per-record overrides. Nil means "derive from commodity
	// prices" (market/gross value) or "use the default rate".
	UnitPrice      *decimal.Decimal // for gross value; defaults to commodity current price
	MarketValue    *decimal.Decimal // for ad valorem; defaults to volume x current price
	GrossValue     *decimal.Decimal // for percentage; defaults to volume x unit price
	AdValoremRate  *decimal.Decimal // defaults to 5%
	PercentageRate *decimal.Decimal // defaults to 10%
}

// EffectiveMethod returns the configured method, defaulting to fixed.
func (r RoyaltyRecord) EffectiveMethod() Method {
	if r.Method == "" {
		return MethodFixed
	}
	return r.Method
}

// EffectiveCurrency returns the reporting currency, defaulting to SZL.
func (r RoyaltyRecord) EffectiveCurrency() Currency {
	if r.Currency == "" {
		return BaseCurrency
	}
	return r.Currency
}

// =============================================================================
// CONTRACT CALCULATION PARAMETERS
// =============================================================================

// Tier is a contiguous volume range billed at a fixed rate. Tiers must be
// ordered ascending by From, contiguous and non-overlapping. To == nil
// marks the final, unbounded tier.
type Tier struct {
	From decimal.Decimal
	To   *decimal.Decimal
	Rate decimal.Decimal
}

// Capacity returns the volume this tier can absorb, or nil if unbounded.
func (t Tier) Capacity() *decimal.Decimal {
	if t.To == nil {
		return nil
	}
	c := t.To.Sub(t.From)
	return &c
}

// ScaleBand maps a commodity price range to a nominal royalty rate.
// Bands are price-ordered; PriceTo == nil marks an unbounded band.
type ScaleBand struct {
	PriceFrom decimal.Decimal
	PriceTo   *decimal.Decimal
	Rate      decimal.Decimal
}

// Contains reports whether price falls inside [PriceFrom, PriceTo].
// Both bounds are inclusive; at a shared boundary the earlier band in
// list order wins because band selection is first-match.
func (b ScaleBand) Contains(price decimal.Decimal) bool {
	if price.LessThan(b.PriceFrom) {
		return false
	}
	return b.PriceTo == nil || price.LessThanOrEqual(*b.PriceTo)
}

// HybridComponent is one weighted sub-calculation of a hybrid method.
// Weights are NOT normalized: a weighted blend, not a partition of 100%.
type HybridComponent struct {
	Method    Method
	Weight    decimal.Decimal
	Overrides FieldOverrides
}

// FieldOverrides replaces record fields for a single hybrid sub-calculation.
// Nil pointers leave the record's value untouched.
type FieldOverrides struct {
	Volume         *decimal.Decimal
	Tariff         *decimal.Decimal
	UnitPrice      *decimal.Decimal
	MarketValue    *decimal.Decimal
	GrossValue     *decimal.Decimal
	AdValoremRate  *decimal.Decimal
	PercentageRate *decimal.Decimal
	Mineral        *Mineral
}

// Apply returns a copy of the record with the overrides merged on.
func (o FieldOverrides) Apply(r RoyaltyRecord) RoyaltyRecord {
	if o.Volume != nil {
		r.Volume = *o.Volume
	}
	if o.Tariff != nil {
		r.Tariff = *o.Tariff
	}
	if o.UnitPrice != nil {
		r.UnitPrice = o.UnitPrice
	}
	if o.MarketValue != nil {
		r.MarketValue = o.MarketValue
	}
	if o.GrossValue != nil {
		r.GrossValue = o.GrossValue
	}
	if o.AdValoremRate != nil {
		r.AdValoremRate = o.AdValoremRate
	}
	if o.PercentageRate != nil {
		r.PercentageRate = o.PercentageRate
	}
	if o.Mineral != nil {
		r.Mineral = *o.Mineral
	}
	return r
}

// ContractParams carries the calculation configuration resolved from a
// contract. Any section may be empty; the engine falls back to the
// per-mineral defaults in RateConfig.
type ContractParams struct {
	Tiers     []Tier
	Scales    []ScaleBand
	BasePrice *decimal.Decimal // sliding-scale reference price
	Hybrid    []HybridComponent
}

// =============================================================================
// COMMODITY PRICE SNAPSHOT
// =============================================================================

// PriceSnapshot is the market price state for one mineral, supplied by the
// external price collaborator (or the static table in RateConfig).
type PriceSnapshot struct {
	Current  decimal.Decimal
	Baseline decimal.Decimal
	Unit     string // display unit, e.g. "USD/ton"
}

// =============================================================================
// CALCULATION RESULT BLOCKS
// =============================================================================

// BreakdownLine is one labeled amount in an itemized breakdown.
// Lines are ordered so repeated calculations are bit-identical.
type BreakdownLine struct {
	Label  string
	Amount decimal.Decimal
}

// TierConsumption records how much volume one tier absorbed.
type TierConsumption struct {
	Range  string // "0 - 1000" or "5001 - ∞"
	Volume decimal.Decimal
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// ScaleDetail exposes the sliding-scale decision for audit.
type ScaleDetail struct {
	BandRate         decimal.Decimal // nominal rate from the matched band
	CurrentPrice     decimal.Decimal
	BasePrice        decimal.Decimal
	AdjustmentFactor decimal.Decimal // current / base
	AdjustedRate     decimal.Decimal // band rate x factor
	PriceUnit        string
	BandMatched      bool // false = documented first-band fallback
}

// ValuationDetail exposes the value basis of ad-valorem and percentage
// calculations.
type ValuationDetail struct {
	Value   decimal.Decimal // market or gross value
	Rate    decimal.Decimal
	Derived bool // true if the value was derived from commodity prices
}

// HybridContribution is one component's share of a hybrid calculation.
type HybridContribution struct {
	Method      Method
	Weight      decimal.Decimal
	Amount      decimal.Decimal // weighted contribution
	Calculation *BaseCalculation
}

// BaseCalculation is the output of one method calculator.
type BaseCalculation struct {
	Method       Method
	BaseAmount   decimal.Decimal
	Lines        []BreakdownLine
	AppliedRules []string

	// Method-specific detail. Exactly one of these is populated for the
	// non-fixed methods; all nil/empty for fixed.
	Tiers      []TierConsumption
	Scale      *ScaleDetail
	Valuation  *ValuationDetail
	Components []HybridContribution
}

// PenaltyBracket names the overdue bracket a record fell into.
type PenaltyBracket string

const (
	BracketNone     PenaltyBracket = "none"
	BracketEarly    PenaltyBracket = "early"    // 1-30 days
	BracketStandard PenaltyBracket = "standard" // 31-90 days
	BracketSevere   PenaltyBracket = "severe"   // 91+ days
)

// PenaltyAssessment is the overdue-penalty block of a result.
type PenaltyAssessment struct {
	DaysPastDue  int
	Bracket      PenaltyBracket
	Rate         decimal.Decimal
	Amount       decimal.Decimal
	Compounded   bool
	AppliedRules []string
}

// InterestAccrual is the late-payment interest block of a result.
type InterestAccrual struct {
	DaysLate           int
	GracePeriodDays    int
	InterestPeriodDays int
	AnnualRate         decimal.Decimal
	DailyRate          decimal.Decimal
	Amount             decimal.Decimal
	AppliedRules       []string
}

// CurrencyAdjustment is the currency block of a result.
//
// ExchangeRateDisplayedOnly is always true: the engine attaches the rate
// for display but does NOT rescale the amount. This reproduces the source
// system's behavior; a future conversion change flips exactly this flag.
type CurrencyAdjustment struct {
	BaseCurrency              Currency
	TargetCurrency            Currency
	ExchangeRate              decimal.Decimal
	ExchangeRateDisplayedOnly bool
	Amount                    decimal.Decimal // contribution to total, zero under relabeling
	AppliedRules              []string
}

// TotalsBreakdown sums the pipeline components.
type TotalsBreakdown struct {
	Base        decimal.Decimal
	Penalties   decimal.Decimal
	Interest    decimal.Decimal
	Adjustments decimal.Decimal
	Total       decimal.Decimal
}

// Finding is a structured validation error or warning. Findings are data,
// not Go errors: an invalid result still carries its full breakdown.
type Finding struct {
	Code    string
	Message string
}

// Validation finding codes.
const (
	FindingNegativeTotal = "negative_total"
	FindingHighValue     = "high_value"
	FindingBelowMinimum  = "below_minimum"
)

// =============================================================================
// CALCULATION RESULT
// =============================================================================

// CalculationResult is the complete outcome of one assessment. It is
// constructed fresh per call and never mutated afterwards.
type CalculationResult struct {
	RecordID    string
	Method      Method
	Currency    Currency
	EvaluatedAt time.Time

	Base       BaseCalculation
	Penalty    PenaltyAssessment
	Interest   InterestAccrual
	Adjustment CurrencyAdjustment

	Breakdown TotalsBreakdown
	Total     decimal.Decimal

	IsValid  bool
	Errors   []Finding
	Warnings []Finding

	// Inputs frozen for audit replay.
	ExchangeRate   decimal.Decimal
	CommodityPrice PriceSnapshot
}

// AppliedRules flattens every stage's rule strings in pipeline order:
// base, penalties, interest, currency adjustment.
func (r *CalculationResult) AppliedRules() []string {
	rules := make([]string, 0,
		len(r.Base.AppliedRules)+len(r.Penalty.AppliedRules)+
			len(r.Interest.AppliedRules)+len(r.Adjustment.AppliedRules))
	rules = append(rules, r.Base.AppliedRules...)
	rules = append(rules, r.Penalty.AppliedRules...)
	rules = append(rules, r.Interest.AppliedRules...)
	rules = append(rules, r.Adjustment.AppliedRules...)
	return rules
}

// =============================================================================
// DECIMAL HELPERS
// =============================================================================

// Dec builds a decimal from a float at the API edge. Internal math never
// round-trips through float64.
func Dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// DecPtr is Dec for optional fields.
func DecPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// MustParseDecimal parses s, returning zero on malformed input.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
