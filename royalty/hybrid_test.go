package royalty_test

import (
	"errors"
	"testing"
	"time"

	"github.com/swazimin/royalty-engine/royalty"
)

func hybridRecord() royalty.RoyaltyRecord {
	rec := coalRecord(1000, 20, date(2025, time.April, 1))
	rec.Method = royalty.MethodHybrid
	return rec
}

func TestHybrid_WeightedSumProperty(t *testing.T) {
	// GIVEN: The default fixed 60% + ad valorem 40% blend
	// WHEN: Calculating the hybrid and each component independently
	// THEN: The hybrid base equals the weighted sum of the standalone
	//       component bases

	engine := newEngine()
	eval := date(2025, time.March, 1)

	hybrid := calculate(t, engine, royalty.Input{Record: hybridRecord(), EvaluationDate: eval})

	fixedRec := hybridRecord()
	fixedRec.Method = royalty.MethodFixed
	fixed := calculate(t, engine, royalty.Input{Record: fixedRec, EvaluationDate: eval})

	valoremRec := hybridRecord()
	valoremRec.Method = royalty.MethodAdValorem
	valorem := calculate(t, engine, royalty.Input{Record: valoremRec, EvaluationDate: eval})

	want := fixed.Base.BaseAmount.Mul(dec(0.6)).Add(valorem.Base.BaseAmount.Mul(dec(0.4)))
	equalDec(t, want, hybrid.Base.BaseAmount, "weighted sum")

	if len(hybrid.Base.Components) != 2 {
		t.Fatalf("expected 2 contributions, got %d", len(hybrid.Base.Components))
	}
	if hybrid.Base.Components[0].Calculation == nil {
		t.Errorf("contributions must retain the nested calculation")
	}
}

func TestHybrid_WeightsNotNormalized(t *testing.T) {
	// GIVEN: Components whose weights sum to 1.2
	// WHEN: Calculating
	// THEN: The weighted amounts are summed as-is, not rescaled to 1

	contract := &royalty.ContractParams{
		Hybrid: []royalty.HybridComponent{
			{Method: royalty.MethodFixed, Weight: dec(0.6)},
			{Method: royalty.MethodFixed, Weight: dec(0.6)},
		},
	}

	result := calculate(t, newEngine(), royalty.Input{
		Record:         hybridRecord(),
		Contract:       contract,
		EvaluationDate: date(2025, time.March, 1),
	})

	// fixed base = 1000 x 20 = 20000; 0.6x + 0.6x = 1.2x
	equalDec(t, dec(24000), result.Base.BaseAmount, "unnormalized weighted sum")
}

func TestHybrid_ComponentOverrides(t *testing.T) {
	// GIVEN: A component overriding the tariff for its sub-calculation
	// WHEN: Calculating
	// THEN: The override applies only inside that component

	contract := &royalty.ContractParams{
		Hybrid: []royalty.HybridComponent{
			{Method: royalty.MethodFixed, Weight: dec(1)},
			{
				Method:    royalty.MethodFixed,
				Weight:    dec(1),
				Overrides: royalty.FieldOverrides{Tariff: royalty.DecPtr(5)},
			},
		},
	}

	result := calculate(t, newEngine(), royalty.Input{
		Record:         hybridRecord(),
		Contract:       contract,
		EvaluationDate: date(2025, time.March, 1),
	})

	// 1000x20 + 1000x5
	equalDec(t, dec(25000), result.Base.BaseAmount, "override-scoped sum")
}

func TestHybrid_NestedHybrid_Rejected(t *testing.T) {
	// GIVEN: A hybrid component that is itself hybrid
	// WHEN: Calculating
	// THEN: ErrNestedHybrid aborts the pipeline

	contract := &royalty.ContractParams{
		Hybrid: []royalty.HybridComponent{
			{Method: royalty.MethodHybrid, Weight: dec(1)},
		},
	}

	_, err := newEngine().Calculate(royalty.Input{
		Record:         hybridRecord(),
		Contract:       contract,
		EvaluationDate: date(2025, time.March, 1),
	})

	if !errors.Is(err, royalty.ErrNestedHybrid) {
		t.Fatalf("expected ErrNestedHybrid, got %v", err)
	}
}

func TestHybrid_OptionsOverrideContract(t *testing.T) {
	// GIVEN: Hybrid components on both the contract and the call options
	// WHEN: Calculating
	// THEN: The per-call components win

	contract := &royalty.ContractParams{
		Hybrid: []royalty.HybridComponent{
			{Method: royalty.MethodFixed, Weight: dec(0.5)},
		},
	}

	result := calculate(t, newEngine(), royalty.Input{
		Record:   hybridRecord(),
		Contract: contract,
		Options: royalty.Options{
			Hybrid: []royalty.HybridComponent{
				{Method: royalty.MethodFixed, Weight: dec(1)},
			},
		},
		EvaluationDate: date(2025, time.March, 1),
	})

	equalDec(t, dec(20000), result.Base.BaseAmount, "per-call components applied")
}
