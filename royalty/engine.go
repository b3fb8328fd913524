/*
engine.go - The calculation pipeline

PURPOSE:
  Assembles one CalculationResult from the pipeline stages:

    dispatch -> method calculator -> penalties -> interest ->
    currency adjustment -> totals -> validation

  Each stage is a pure function of its inputs and returns a new block;
  the engine folds the blocks into the result. Nothing is read from the
  environment: the evaluation date is an explicit input, so identical
  inputs always produce bit-identical results.

CONCURRENCY:
  An Engine holds only the immutable RateConfig. Distinct records have no
  data dependency on each other, so callers may fan Calculate out across
  goroutines freely (see batch.go for a ready-made worker pool).

ERROR MODEL:
  Configuration errors (unknown method/currency, missing params) abort the
  pipeline with a typed error. Validation findings never abort: they are
  recorded on the result with IsValid=false so the full breakdown remains
  available for review.

SEE ALSO:
  - methods.go: The method dispatcher
  - totals.go: Totals and validation
  - batch.go: Parallel fan-out
*/
package royalty

import (
	"math"
	"time"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine computes royalty obligations against an immutable RateConfig.
// Safe for concurrent use.
type Engine struct {
	cfg RateConfig
}

// NewEngine creates an engine with the given rate configuration.
func NewEngine(cfg RateConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's rate configuration.
func (e *Engine) Config() RateConfig { return e.cfg }

// =============================================================================
// INPUT
// =============================================================================

// Options tune a single calculation.
type Options struct {
	// GracePeriodDays overrides the configured interest grace period.
	// Zero means "use the RateConfig default".
	GracePeriodDays int

	// Compound overrides the configured penalty compounding toggle.
	Compound *bool

	// Hybrid supplies per-call hybrid components, taking precedence over
	// contract params and the default template.
	Hybrid []HybridComponent
}

// Input carries everything one calculation depends on. Contract and
// Prices are the structs resolved by the external collaborators; the
// engine performs no lookups of its own.
type Input struct {
	Record         RoyaltyRecord
	Contract       *ContractParams
	Prices         *PriceSnapshot // snapshot for the record's mineral
	EvaluationDate time.Time
	Options        Options
}

// calcEnv is the resolved context threaded through the calculators.
type calcEnv struct {
	cfg      RateConfig
	contract *ContractParams
	prices   *PriceSnapshot
	mineral  Mineral // mineral the Prices override applies to
	opts     Options
}

// priceFor resolves the commodity snapshot for a mineral. A supplied
// snapshot only covers the record's own mineral; hybrid overrides that
// switch minerals fall back to the static table.
func (env calcEnv) priceFor(m Mineral) PriceSnapshot {
	if env.prices != nil && m == env.mineral {
		return *env.prices
	}
	return env.cfg.CommodityPrice(m)
}

// =============================================================================
// CALCULATE
// =============================================================================

// Calculate runs the full pipeline for one record.
func (e *Engine) Calculate(in Input) (*CalculationResult, error) {
	rec := in.Record
	env := calcEnv{
		cfg:      e.cfg,
		contract: in.Contract,
		prices:   in.Prices,
		mineral:  rec.Mineral,
		opts:     in.Options,
	}

	base, err := dispatch(rec.EffectiveMethod(), rec, env)
	if err != nil {
		return nil, err
	}

	penalty := assessPenalty(rec, base.BaseAmount, in.EvaluationDate, env)
	interest := accrueInterest(rec, base.BaseAmount, in.EvaluationDate, env)

	adjustment, err := adjustCurrency(rec, base.BaseAmount, e.cfg)
	if err != nil {
		return nil, err
	}

	result := &CalculationResult{
		RecordID:       rec.ID,
		Method:         rec.EffectiveMethod(),
		Currency:       rec.EffectiveCurrency(),
		EvaluatedAt:    in.EvaluationDate,
		Base:           base,
		Penalty:        penalty,
		Interest:       interest,
		Adjustment:     adjustment,
		ExchangeRate:   adjustment.ExchangeRate,
		CommodityPrice: env.priceFor(rec.Mineral),
	}

	finalize(result, rec, e.cfg)
	return result, nil
}

// =============================================================================
// DAY ARITHMETIC
// =============================================================================

// daysPast returns ceil((eval - due) / 1 day), clamped at zero. A payment
// due later today is not yet past due; one second into tomorrow counts as
// a full day.
func daysPast(due, eval time.Time) int {
	hours := eval.Sub(due).Hours()
	days := int(math.Ceil(hours / 24))
	if days < 0 {
		return 0
	}
	return days
}
