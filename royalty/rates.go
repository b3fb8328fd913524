/*
rates.go - Injected rate tables

PURPOSE:
  Bundles every static table the engine consults: exchange rates against
  the Emalangeni, annual interest rates, penalty brackets, commodity price
  snapshots, default tier/scale/hybrid templates, and validation
  thresholds. A RateConfig is built once, injected into the Engine, and
  never mutated afterwards - which is what makes concurrent fan-out across
  records safe with no locking.

RATE SOURCES:
  DefaultRateConfig() carries the statutory defaults. Deployments override
  them by constructing their own RateConfig (or merging JSON over the
  defaults via the factory package).

LOOKUP FALLBACKS:
  Unknown minerals resolve to a 50/50 USD/ton price snapshot, the generic
  two-tier template and a 50 SZL minimum payment, matching the published
  schedule's catch-all rows. Unknown currencies are a configuration error,
  not a fallback.

SEE ALSO:
  - engine.go: Consumes RateConfig
  - factory/rates.go: JSON loading with defaults merge
*/
package royalty

import "github.com/shopspring/decimal"

// =============================================================================
// RATE CONFIG
// =============================================================================

// InterestRates are annual rates keyed by payment situation.
type InterestRates struct {
	Default  decimal.Decimal // reference rate, reported but not applied directly
	Overdue  decimal.Decimal // late and undisputed
	Disputed decimal.Decimal // reduced rate while under dispute
}

// PenaltyRates are the overdue-penalty brackets. Compound enables
// monthly compounding once a record is more than 30 days past due.
type PenaltyRates struct {
	Early    decimal.Decimal // 1-30 days past due
	Standard decimal.Decimal // 31-90 days
	Severe   decimal.Decimal // 91+ days
	Compound bool
}

// RateConfig is the complete read-only rate configuration.
type RateConfig struct {
	ExchangeRates   map[Currency]decimal.Decimal // 1 SZL = rate x target
	Interest        InterestRates
	Penalties       PenaltyRates
	CommodityPrices map[Mineral]PriceSnapshot

	// Default calculation templates used when contract params are absent.
	DefaultTiers  map[Mineral][]Tier
	FallbackTiers []Tier
	DefaultScales []ScaleBand
	DefaultHybrid []HybridComponent

	// Validation thresholds.
	MinimumPayments    map[Mineral]decimal.Decimal
	FallbackMinimum    decimal.Decimal
	HighValueThreshold decimal.Decimal

	// Days after the due date before interest starts accruing.
	GracePeriodDays int
}

// =============================================================================
// LOOKUPS
// =============================================================================

// ExchangeRate returns the display rate for the target currency.
func (c RateConfig) ExchangeRate(cur Currency) (decimal.Decimal, bool) {
	rate, ok := c.ExchangeRates[cur]
	return rate, ok
}

// CommodityPrice returns the snapshot for a mineral, falling back to the
// 50/50 catch-all for minerals without a published price.
func (c RateConfig) CommodityPrice(m Mineral) PriceSnapshot {
	if p, ok := c.CommodityPrices[m]; ok {
		return p
	}
	return PriceSnapshot{Current: Dec(50), Baseline: Dec(50), Unit: "USD/ton"}
}

// TiersFor returns the default tier template for a mineral.
func (c RateConfig) TiersFor(m Mineral) []Tier {
	if tiers, ok := c.DefaultTiers[m]; ok {
		return tiers
	}
	return c.FallbackTiers
}

// MinimumPayment returns the minimum-payment threshold for a mineral.
func (c RateConfig) MinimumPayment(m Mineral) decimal.Decimal {
	if min, ok := c.MinimumPayments[m]; ok {
		return min
	}
	return c.FallbackMinimum
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultRateConfig returns the statutory rate tables.
func DefaultRateConfig() RateConfig {
	return RateConfig{
		ExchangeRates: map[Currency]decimal.Decimal{
			CurrencySZL: Dec(1.0),
			CurrencyUSD: Dec(18.75),
			CurrencyEUR: Dec(20.45),
			CurrencyZAR: Dec(1.08),
			CurrencyGBP: Dec(23.8),
		},
		Interest: InterestRates{
			Default:  Dec(0.12),
			Overdue:  Dec(0.15),
			Disputed: Dec(0.08),
		},
		Penalties: PenaltyRates{
			Early:    Dec(0.01),
			Standard: Dec(0.02),
			Severe:   Dec(0.05),
			Compound: true,
		},
		CommodityPrices: map[Mineral]PriceSnapshot{
			MineralCoal:          {Current: Dec(85), Baseline: Dec(75), Unit: "USD/ton"},
			MineralIronOre:       {Current: Dec(120), Baseline: Dec(100), Unit: "USD/ton"},
			MineralDiamond:       {Current: Dec(15000), Baseline: Dec(12000), Unit: "USD/carat"},
			MineralGold:          {Current: Dec(1950), Baseline: Dec(1800), Unit: "USD/oz"},
			MineralQuarriedStone: {Current: Dec(25), Baseline: Dec(22), Unit: "USD/ton"},
			MineralGravel:        {Current: Dec(18), Baseline: Dec(15), Unit: "USD/ton"},
		},
		DefaultTiers: map[Mineral][]Tier{
			MineralCoal: {
				{From: Dec(0), To: DecPtr(1000), Rate: Dec(20)},
				{From: Dec(1001), To: DecPtr(5000), Rate: Dec(25)},
				{From: Dec(5001), To: nil, Rate: Dec(30)},
			},
			MineralIronOre: {
				{From: Dec(0), To: DecPtr(500), Rate: Dec(30)},
				{From: Dec(501), To: DecPtr(2000), Rate: Dec(35)},
				{From: Dec(2001), To: nil, Rate: Dec(40)},
			},
		},
		FallbackTiers: []Tier{
			{From: Dec(0), To: DecPtr(1000), Rate: Dec(15)},
			{From: Dec(1001), To: nil, Rate: Dec(20)},
		},
		DefaultScales: []ScaleBand{
			{PriceFrom: Dec(0), PriceTo: DecPtr(50), Rate: Dec(0.05)},
			{PriceFrom: Dec(51), PriceTo: DecPtr(100), Rate: Dec(0.07)},
			{PriceFrom: Dec(101), PriceTo: nil, Rate: Dec(0.10)},
		},
		DefaultHybrid: []HybridComponent{
			{Method: MethodFixed, Weight: Dec(0.6)},
			{Method: MethodAdValorem, Weight: Dec(0.4)},
		},
		MinimumPayments: map[Mineral]decimal.Decimal{
			MineralDiamond: Dec(1000),
			MineralGold:    Dec(5000),
			MineralCoal:    Dec(100),
			MineralIronOre: Dec(200),
		},
		FallbackMinimum:    Dec(50),
		HighValueThreshold: Dec(1000000),
		GracePeriodDays:    60,
	}
}

// DefaultAdValoremRate and DefaultPercentageRate apply when a record
// carries no per-record rate override.
var (
	DefaultAdValoremRate  = Dec(0.05)
	DefaultPercentageRate = Dec(0.10)
)
