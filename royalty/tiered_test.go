package royalty_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/swazimin/royalty-engine/royalty"
)

func tieredRecord(volume float64) royalty.RoyaltyRecord {
	rec := coalRecord(volume, 0, date(2025, time.April, 1))
	rec.Method = royalty.MethodTiered
	return rec
}

func TestTiered_VolumeConservation(t *testing.T) {
	// GIVEN: 1200 tons across a bounded tier and an unbounded tail
	// WHEN: Calculating
	// THEN: Per-tier consumed volumes sum to the record volume and each
	//       tier amount is its consumed volume times its rate

	contract := &royalty.ContractParams{
		Tiers: []royalty.Tier{
			{From: dec(0), To: royalty.DecPtr(1000), Rate: dec(20)},
			{From: dec(1001), To: nil, Rate: dec(25)},
		},
	}

	result := calculate(t, newEngine(), royalty.Input{
		Record:         tieredRecord(1200),
		Contract:       contract,
		EvaluationDate: date(2025, time.March, 1),
	})

	consumed := decimal.Zero
	summed := decimal.Zero
	for _, tier := range result.Base.Tiers {
		consumed = consumed.Add(tier.Volume)
		summed = summed.Add(tier.Amount)
		equalDec(t, tier.Volume.Mul(tier.Rate), tier.Amount, "tier amount")
	}
	equalDec(t, dec(1200), consumed, "consumed volume")
	equalDec(t, result.Base.BaseAmount, summed, "tier amounts sum to base")
	equalDec(t, dec(25000), result.Base.BaseAmount, "base amount")
}

func TestTiered_OverflowPastLastBoundedTier_NeverBilled(t *testing.T) {
	// GIVEN: 500 tons against a schedule whose tiers are all bounded
	//        ([0-100]@10 and [101-200]@20, capacities 100 and 99)
	// WHEN: Calculating
	// THEN: Only 199 tons are billed; the 301-ton excess produces no
	//       charge and no extra tier entry

	contract := &royalty.ContractParams{
		Tiers: []royalty.Tier{
			{From: dec(0), To: royalty.DecPtr(100), Rate: dec(10)},
			{From: dec(101), To: royalty.DecPtr(200), Rate: dec(20)},
		},
	}

	result := calculate(t, newEngine(), royalty.Input{
		Record:         tieredRecord(500),
		Contract:       contract,
		EvaluationDate: date(2025, time.March, 1),
	})

	if len(result.Base.Tiers) != 2 {
		t.Fatalf("expected exactly 2 tier entries, got %d", len(result.Base.Tiers))
	}
	equalDec(t, dec(100), result.Base.Tiers[0].Volume, "first tier volume")
	equalDec(t, dec(99), result.Base.Tiers[1].Volume, "second tier volume")
	// 100x10 + 99x20 = 2980; nothing billed for the remaining 301 tons
	equalDec(t, dec(2980), result.Base.BaseAmount, "base amount")
}

func TestTiered_VolumeInsideFirstTier(t *testing.T) {
	// GIVEN: 600 tons that fit entirely in the first coal default tier
	// WHEN: Calculating with no contract (per-mineral defaults apply)
	// THEN: Only one tier is consumed at the coal rate of 20

	result := calculate(t, newEngine(), royalty.Input{
		Record:         tieredRecord(600),
		EvaluationDate: date(2025, time.March, 1),
	})

	if len(result.Base.Tiers) != 1 {
		t.Fatalf("expected a single tier entry, got %d", len(result.Base.Tiers))
	}
	equalDec(t, dec(12000), result.Base.BaseAmount, "base amount")
}

func TestTiered_FallbackTiers_ForUnscheduledMineral(t *testing.T) {
	// GIVEN: A mineral with no dedicated default schedule
	// WHEN: Calculating without contract tiers
	// THEN: The fallback schedule [0-1000]@15, [1001-∞]@20 applies

	rec := tieredRecord(1500)
	rec.Mineral = royalty.MineralGravel

	result := calculate(t, newEngine(), royalty.Input{
		Record:         rec,
		EvaluationDate: date(2025, time.March, 1),
	})

	// 1000x15 + 500x20 = 25000
	equalDec(t, dec(25000), result.Base.BaseAmount, "base amount")
}

func TestTiered_EmptyContractTiers_UsesDefaults(t *testing.T) {
	// GIVEN: A contract present but with an empty tier list
	// WHEN: Calculating for coal
	// THEN: The coal default schedule applies rather than failing

	result := calculate(t, newEngine(), royalty.Input{
		Record:         tieredRecord(600),
		Contract:       &royalty.ContractParams{},
		EvaluationDate: date(2025, time.March, 1),
	})

	equalDec(t, dec(12000), result.Base.BaseAmount, "base amount")
}

func TestTiered_NoTiersAnywhere_Error(t *testing.T) {
	// GIVEN: A config with no default or fallback tiers and no contract
	// WHEN: Calculating
	// THEN: ErrMissingTiers is returned

	cfg := royalty.DefaultRateConfig()
	cfg.DefaultTiers = nil
	cfg.FallbackTiers = nil

	_, err := royalty.NewEngine(cfg).Calculate(royalty.Input{
		Record:         tieredRecord(100),
		EvaluationDate: date(2025, time.March, 1),
	})

	if !errors.Is(err, royalty.ErrMissingTiers) {
		t.Fatalf("expected ErrMissingTiers, got %v", err)
	}
}
