/*
rates.go - Rate table loading with defaults merge

PURPOSE:
  Loads a partial JSON rate configuration and merges it over the
  statutory defaults from royalty.DefaultRateConfig(). Deployments only
  declare the tables they change; everything else keeps the published
  values.

JSON SCHEMA (all sections optional):
  {
    "exchange_rates": {"USD": 18.75, "EUR": 20.45},
    "interest": {"overdue": 0.15, "disputed": 0.08},
    "penalties": {"early": 0.01, "standard": 0.02, "severe": 0.05, "compound": true},
    "commodity_prices": {
      "Coal": {"current": 85, "baseline": 75, "unit": "USD/ton"}
    },
    "high_value_threshold": 1000000,
    "grace_period_days": 60
  }
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/swazimin/royalty-engine/royalty"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RatesJSON is a partial rate configuration. Absent sections keep their
// default values.
type RatesJSON struct {
	ExchangeRates      map[string]float64   `json:"exchange_rates,omitempty"`
	Interest           *InterestJSON        `json:"interest,omitempty"`
	Penalties          *PenaltiesJSON       `json:"penalties,omitempty"`
	CommodityPrices    map[string]PriceJSON `json:"commodity_prices,omitempty"`
	MinimumPayments    map[string]float64   `json:"minimum_payments,omitempty"`
	HighValueThreshold *float64             `json:"high_value_threshold,omitempty"`
	GracePeriodDays    *int                 `json:"grace_period_days,omitempty"`
}

// InterestJSON overrides the annual interest rates.
type InterestJSON struct {
	Default  *float64 `json:"default,omitempty"`
	Overdue  *float64 `json:"overdue,omitempty"`
	Disputed *float64 `json:"disputed,omitempty"`
}

// PenaltiesJSON overrides the penalty brackets.
type PenaltiesJSON struct {
	Early    *float64 `json:"early,omitempty"`
	Standard *float64 `json:"standard,omitempty"`
	Severe   *float64 `json:"severe,omitempty"`
	Compound *bool    `json:"compound,omitempty"`
}

// PriceJSON is one commodity price snapshot.
type PriceJSON struct {
	Current  float64 `json:"current"`
	Baseline float64 `json:"baseline"`
	Unit     string  `json:"unit,omitempty"`
}

// =============================================================================
// RATES LOADING
// =============================================================================

// ParseRates parses a partial JSON rate config and merges it over the
// statutory defaults.
func ParseRates(jsonStr string) (royalty.RateConfig, error) {
	var rj RatesJSON
	if err := json.Unmarshal([]byte(jsonStr), &rj); err != nil {
		return royalty.RateConfig{}, fmt.Errorf("failed to parse rates JSON: %w", err)
	}
	return MergeRates(rj), nil
}

// MergeRates applies the overrides in rj on top of DefaultRateConfig.
func MergeRates(rj RatesJSON) royalty.RateConfig {
	cfg := royalty.DefaultRateConfig()

	for cur, rate := range rj.ExchangeRates {
		cfg.ExchangeRates[royalty.Currency(cur)] = royalty.Dec(rate)
	}

	if rj.Interest != nil {
		if rj.Interest.Default != nil {
			cfg.Interest.Default = royalty.Dec(*rj.Interest.Default)
		}
		if rj.Interest.Overdue != nil {
			cfg.Interest.Overdue = royalty.Dec(*rj.Interest.Overdue)
		}
		if rj.Interest.Disputed != nil {
			cfg.Interest.Disputed = royalty.Dec(*rj.Interest.Disputed)
		}
	}

	if rj.Penalties != nil {
		if rj.Penalties.Early != nil {
			cfg.Penalties.Early = royalty.Dec(*rj.Penalties.Early)
		}
		if rj.Penalties.Standard != nil {
			cfg.Penalties.Standard = royalty.Dec(*rj.Penalties.Standard)
		}
		if rj.Penalties.Severe != nil {
			cfg.Penalties.Severe = royalty.Dec(*rj.Penalties.Severe)
		}
		if rj.Penalties.Compound != nil {
			cfg.Penalties.Compound = *rj.Penalties.Compound
		}
	}

	for mineral, pj := range rj.CommodityPrices {
		snapshot := royalty.PriceSnapshot{
			Current:  royalty.Dec(pj.Current),
			Baseline: royalty.Dec(pj.Baseline),
			Unit:     pj.Unit,
		}
		if snapshot.Unit == "" {
			snapshot.Unit = "USD/ton"
		}
		cfg.CommodityPrices[royalty.Mineral(mineral)] = snapshot
	}

	for mineral, min := range rj.MinimumPayments {
		cfg.MinimumPayments[royalty.Mineral(mineral)] = royalty.Dec(min)
	}

	if rj.HighValueThreshold != nil {
		cfg.HighValueThreshold = royalty.Dec(*rj.HighValueThreshold)
	}
	if rj.GracePeriodDays != nil {
		cfg.GracePeriodDays = *rj.GracePeriodDays
	}

	return cfg
}
