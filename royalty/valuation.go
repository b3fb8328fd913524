/*
valuation.go - Ad-valorem and percentage calculators

PURPOSE:
  Both methods are a rate applied to a value rather than a volume:

  Ad valorem:  baseAmount = marketValue x adValoremRate   (default 5%)
  Percentage:  baseAmount = grossValue  x percentageRate  (default 10%)

  When the record does not carry the value, it is derived:
    marketValue = volume x commodity current price
    grossValue  = volume x unitPrice (unitPrice defaults to current price)
*/
package royalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// calculateAdValorem computes a percentage of assessed market value.
func calculateAdValorem(rec RoyaltyRecord, env calcEnv) BaseCalculation {
	value, derived := marketValue(rec, env)

	rate := DefaultAdValoremRate
	if rec.AdValoremRate != nil {
		rate = *rec.AdValoremRate
	}

	amount := value.Mul(rate)

	return BaseCalculation{
		Method:     MethodAdValorem,
		BaseAmount: amount,
		Valuation:  &ValuationDetail{Value: value, Rate: rate, Derived: derived},
		Lines: []BreakdownLine{
			{Label: "Market Value", Amount: value},
			{Label: "Ad Valorem Rate %", Amount: rate.Mul(Dec(100))},
			{Label: "Base Amount", Amount: amount},
		},
		AppliedRules: []string{
			fmt.Sprintf("Market value: %s", value),
			fmt.Sprintf("Ad valorem rate: %s%%", rate.Mul(Dec(100)).StringFixed(1)),
		},
	}
}

// calculatePercentage computes a percentage of gross production value.
func calculatePercentage(rec RoyaltyRecord, env calcEnv) BaseCalculation {
	value, derived := grossValue(rec, env)

	rate := DefaultPercentageRate
	if rec.PercentageRate != nil {
		rate = *rec.PercentageRate
	}

	amount := value.Mul(rate)

	return BaseCalculation{
		Method:     MethodPercentage,
		BaseAmount: amount,
		Valuation:  &ValuationDetail{Value: value, Rate: rate, Derived: derived},
		Lines: []BreakdownLine{
			{Label: "Gross Value", Amount: value},
			{Label: "Percentage Rate %", Amount: rate.Mul(Dec(100))},
			{Label: "Base Amount", Amount: amount},
		},
		AppliedRules: []string{
			fmt.Sprintf("Gross value: %s", value),
			fmt.Sprintf("Percentage rate: %s%%", rate.Mul(Dec(100)).StringFixed(1)),
		},
	}
}

// marketValue resolves the assessed market value, deriving it from the
// commodity current price when the record carries no override.
func marketValue(rec RoyaltyRecord, env calcEnv) (decimal.Decimal, bool) {
	if rec.MarketValue != nil {
		return *rec.MarketValue, false
	}
	return rec.Volume.Mul(env.priceFor(rec.Mineral).Current), true
}

// grossValue resolves the gross production value. The unit price defaults
// to the commodity current price when absent.
func grossValue(rec RoyaltyRecord, env calcEnv) (decimal.Decimal, bool) {
	if rec.GrossValue != nil {
		return *rec.GrossValue, false
	}
	unitPrice := env.priceFor(rec.Mineral).Current
	if rec.UnitPrice != nil {
		unitPrice = *rec.UnitPrice
	}
	return rec.Volume.Mul(unitPrice), true
}
