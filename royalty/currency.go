/*
currency.go - Reporting-currency adjustment

PURPOSE:
  Attaches the exchange rate for the record's reporting currency to the
  result. The monetary amount is deliberately NOT rescaled: base
  calculations are in SZL and the source system only relabels them. The
  block's ExchangeRateDisplayedOnly flag makes that explicit so a future
  true-conversion change is a single, isolated edit here.

ERRORS:
  A reporting currency with no configured exchange rate is a
  configuration error (UnknownCurrencyError), surfaced before any result
  is produced.
*/
package royalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// adjustCurrency builds the currency block for a record.
func adjustCurrency(rec RoyaltyRecord, baseAmount decimal.Decimal, cfg RateConfig) (CurrencyAdjustment, error) {
	target := rec.EffectiveCurrency()

	if target == BaseCurrency {
		return CurrencyAdjustment{
			BaseCurrency:              BaseCurrency,
			TargetCurrency:            target,
			ExchangeRate:              Dec(1),
			ExchangeRateDisplayedOnly: true,
			Amount:                    decimal.Zero,
			AppliedRules:              []string{"No currency adjustment needed"},
		}, nil
	}

	rate, ok := cfg.ExchangeRate(target)
	if !ok {
		return CurrencyAdjustment{}, &UnknownCurrencyError{Currency: target}
	}

	return CurrencyAdjustment{
		BaseCurrency:              BaseCurrency,
		TargetCurrency:            target,
		ExchangeRate:              rate,
		ExchangeRateDisplayedOnly: true,
		Amount:                    decimal.Zero,
		AppliedRules: []string{
			fmt.Sprintf("Currency: %s", target),
			fmt.Sprintf("Exchange rate: 1 %s = %s %s", BaseCurrency, rate, target),
		},
	}, nil
}
