/*
Package factory provides JSON to Go contract and rate conversion.

PURPOSE:
  Converts JSON contract definitions into royalty.ContractRecord and
  royalty.ContractParams objects. This enables contract configuration
  without code changes - ministry staff can define royalty contracts in
  JSON, and the factory creates the proper Go structs.

WHY JSON?
  - Non-developers can modify contracts
  - Easy integration with admin UI
  - Version control for contract definitions
  - Database storage of contract configs

JSON SCHEMA:
  {
    "id": "ctr-maloma-coal",
    "title": "Maloma Coal Schedule",
    "entity": "Maloma Colliery",
    "mineral": "Coal",
    "method": "tiered",
    "params": {
      "tiers": [
        {"from": 0, "to": 1000, "rate": 20},
        {"from": 1001, "rate": 25}
      ]
    }
  }

  Omitting "to" on a tier (or "price_to" on a band) makes it unbounded.

KEY FEATURES:
  - Validates the method against the closed method set
  - Surfaces params problems via royalty.ValidateParams
  - Round-trips back to JSON for storage and API responses

USAGE:
  factory := NewContractFactory()

  contract, err := factory.ParseContract(jsonString)
  if err != nil { ... }

  result, err := engine.Calculate(royalty.Input{
      Record:   record,
      Contract: &contract.Params,
      ...
  })

SEE ALSO:
  - royalty/types.go: ContractParams definition
  - royalty/advisory.go: params validation
  - factory/rates.go: rate table loading
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/swazimin/royalty-engine/royalty"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ContractJSON is the JSON representation of a royalty contract.
type ContractJSON struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Entity      string      `json:"entity"`
	Mineral     string      `json:"mineral"`
	Method      string      `json:"method"`
	Description string      `json:"description,omitempty"`
	Params      *ParamsJSON `json:"params,omitempty"`
}

// ParamsJSON holds the method-specific calculation parameters.
type ParamsJSON struct {
	Tiers     []TierJSON   `json:"tiers,omitempty"`
	Scales    []ScaleJSON  `json:"scales,omitempty"`
	BasePrice *float64     `json:"base_price,omitempty"`
	Hybrid    []HybridJSON `json:"hybrid,omitempty"`
}

// TierJSON is one volume tier. A missing "to" means unbounded.
type TierJSON struct {
	From float64  `json:"from"`
	To   *float64 `json:"to,omitempty"`
	Rate float64  `json:"rate"`
}

// ScaleJSON is one price band. A missing "price_to" means unbounded.
type ScaleJSON struct {
	PriceFrom float64  `json:"price_from"`
	PriceTo   *float64 `json:"price_to,omitempty"`
	Rate      float64  `json:"rate"`
}

// HybridJSON is one weighted hybrid component.
type HybridJSON struct {
	Method    string         `json:"method"`
	Weight    float64        `json:"weight"`
	Overrides *OverridesJSON `json:"overrides,omitempty"`
}

// OverridesJSON replaces record fields inside one hybrid component.
type OverridesJSON struct {
	Volume         *float64 `json:"volume,omitempty"`
	Tariff         *float64 `json:"tariff,omitempty"`
	UnitPrice      *float64 `json:"unit_price,omitempty"`
	MarketValue    *float64 `json:"market_value,omitempty"`
	GrossValue     *float64 `json:"gross_value,omitempty"`
	AdValoremRate  *float64 `json:"ad_valorem_rate,omitempty"`
	PercentageRate *float64 `json:"percentage_rate,omitempty"`
}

// =============================================================================
// CONTRACT FACTORY
// =============================================================================

// ContractFactory converts JSON contracts to Go structs.
type ContractFactory struct{}

// NewContractFactory creates a new contract factory.
func NewContractFactory() *ContractFactory {
	return &ContractFactory{}
}

// ParseContract parses a JSON string into a ContractRecord.
func (f *ContractFactory) ParseContract(jsonStr string) (*royalty.ContractRecord, error) {
	var cj ContractJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("failed to parse contract JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts ContractJSON to a ContractRecord.
func (f *ContractFactory) FromJSON(cj ContractJSON) (*royalty.ContractRecord, error) {
	method, err := royalty.ParseMethod(cj.Method)
	if err != nil {
		return nil, err
	}

	contract := &royalty.ContractRecord{
		ID:          cj.ID,
		Title:       cj.Title,
		Entity:      cj.Entity,
		Mineral:     royalty.Mineral(cj.Mineral),
		Method:      method,
		Description: cj.Description,
	}

	if cj.Params != nil {
		contract.Params = parseParams(*cj.Params)
	}

	if findings := royalty.ValidateParams(method, &contract.Params); len(findings) > 0 {
		return nil, fmt.Errorf("contract %s params invalid: %s", cj.ID, findings[0].Message)
	}

	return contract, nil
}

// ToJSON converts a ContractRecord back to its JSON representation.
func (f *ContractFactory) ToJSON(contract *royalty.ContractRecord) ContractJSON {
	cj := ContractJSON{
		ID:          contract.ID,
		Title:       contract.Title,
		Entity:      contract.Entity,
		Mineral:     string(contract.Mineral),
		Method:      string(contract.Method),
		Description: contract.Description,
	}

	p := contract.Params
	if len(p.Tiers) == 0 && len(p.Scales) == 0 && p.BasePrice == nil && len(p.Hybrid) == 0 {
		return cj
	}

	pj := &ParamsJSON{}
	for _, tier := range p.Tiers {
		tj := TierJSON{From: toFloat(tier.From), Rate: toFloat(tier.Rate)}
		if tier.To != nil {
			tj.To = floatPtr(*tier.To)
		}
		pj.Tiers = append(pj.Tiers, tj)
	}
	for _, band := range p.Scales {
		sj := ScaleJSON{PriceFrom: toFloat(band.PriceFrom), Rate: toFloat(band.Rate)}
		if band.PriceTo != nil {
			sj.PriceTo = floatPtr(*band.PriceTo)
		}
		pj.Scales = append(pj.Scales, sj)
	}
	if p.BasePrice != nil {
		pj.BasePrice = floatPtr(*p.BasePrice)
	}
	for _, component := range p.Hybrid {
		pj.Hybrid = append(pj.Hybrid, HybridJSON{
			Method:    string(component.Method),
			Weight:    toFloat(component.Weight),
			Overrides: overridesToJSON(component.Overrides),
		})
	}
	cj.Params = pj

	return cj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseParams(pj ParamsJSON) royalty.ContractParams {
	params := royalty.ContractParams{}

	for _, tj := range pj.Tiers {
		tier := royalty.Tier{From: royalty.Dec(tj.From), Rate: royalty.Dec(tj.Rate)}
		if tj.To != nil {
			tier.To = royalty.DecPtr(*tj.To)
		}
		params.Tiers = append(params.Tiers, tier)
	}

	for _, sj := range pj.Scales {
		band := royalty.ScaleBand{PriceFrom: royalty.Dec(sj.PriceFrom), Rate: royalty.Dec(sj.Rate)}
		if sj.PriceTo != nil {
			band.PriceTo = royalty.DecPtr(*sj.PriceTo)
		}
		params.Scales = append(params.Scales, band)
	}

	if pj.BasePrice != nil {
		params.BasePrice = royalty.DecPtr(*pj.BasePrice)
	}

	for _, hj := range pj.Hybrid {
		component := royalty.HybridComponent{
			Method: royalty.Method(hj.Method),
			Weight: royalty.Dec(hj.Weight),
		}
		if hj.Overrides != nil {
			component.Overrides = parseOverrides(*hj.Overrides)
		}
		params.Hybrid = append(params.Hybrid, component)
	}

	return params
}

func parseOverrides(oj OverridesJSON) royalty.FieldOverrides {
	return royalty.FieldOverrides{
		Volume:         decPtrFrom(oj.Volume),
		Tariff:         decPtrFrom(oj.Tariff),
		UnitPrice:      decPtrFrom(oj.UnitPrice),
		MarketValue:    decPtrFrom(oj.MarketValue),
		GrossValue:     decPtrFrom(oj.GrossValue),
		AdValoremRate:  decPtrFrom(oj.AdValoremRate),
		PercentageRate: decPtrFrom(oj.PercentageRate),
	}
}

func overridesToJSON(o royalty.FieldOverrides) *OverridesJSON {
	oj := OverridesJSON{
		Volume:         floatPtrFrom(o.Volume),
		Tariff:         floatPtrFrom(o.Tariff),
		UnitPrice:      floatPtrFrom(o.UnitPrice),
		MarketValue:    floatPtrFrom(o.MarketValue),
		GrossValue:     floatPtrFrom(o.GrossValue),
		AdValoremRate:  floatPtrFrom(o.AdValoremRate),
		PercentageRate: floatPtrFrom(o.PercentageRate),
	}
	if oj == (OverridesJSON{}) {
		return nil
	}
	return &oj
}

func decPtrFrom(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	return royalty.DecPtr(*v)
}

func floatPtrFrom(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	return floatPtr(*d)
}

func toFloat(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func floatPtr(d decimal.Decimal) *float64 {
	v := toFloat(d)
	return &v
}
