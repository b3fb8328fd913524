package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swazimin/royalty-engine/royalty"
	"github.com/swazimin/royalty-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(id string) royalty.RoyaltyRecord {
	return royalty.RoyaltyRecord{
		ID:      id,
		Entity:  "Maloma Colliery",
		Mineral: royalty.MineralCoal,
		Volume:  decimal.NewFromInt(1200),
		Tariff:  decimal.NewFromFloat(20.5),
		DueDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		Status:  royalty.StatusPending,
		Method:  royalty.MethodTiered,
	}
}

func TestSQLite_RecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rec := sampleRecord("rec-1")
	rec.AdValoremRate = royalty.DecPtr(0.03)
	require.NoError(t, s.SaveRecord(ctx, rec))

	got, err := s.GetRecord(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Entity, got.Entity)
	assert.Equal(t, rec.Mineral, got.Mineral)
	assert.True(t, rec.Volume.Equal(got.Volume))
	assert.True(t, rec.Tariff.Equal(got.Tariff))
	assert.True(t, rec.DueDate.Equal(got.DueDate))
	require.NotNil(t, got.AdValoremRate)
	assert.True(t, got.AdValoremRate.Equal(decimal.NewFromFloat(0.03)))
	assert.Nil(t, got.MarketValue, "absent overrides stay nil")
}

func TestSQLite_RecordUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveRecord(ctx, sampleRecord("rec-1")))

	updated := sampleRecord("rec-1")
	updated.Status = royalty.StatusPaid
	require.NoError(t, s.SaveRecord(ctx, updated))

	list, err := s.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "saving the same ID replaces, it does not duplicate")
	assert.Equal(t, royalty.StatusPaid, list[0].Status)

	require.NoError(t, s.DeleteRecord(ctx, "rec-1"))
	_, err = s.GetRecord(ctx, "rec-1")
	assert.ErrorIs(t, err, royalty.ErrRecordNotFound)

	err = s.DeleteRecord(ctx, "rec-1")
	assert.ErrorIs(t, err, royalty.ErrRecordNotFound)
}

func TestSQLite_ContractParamsSurviveJSONColumn(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	contract := royalty.ContractRecord{
		ID:      "ctr-1",
		Title:   "Maloma Coal Schedule",
		Entity:  "Maloma Colliery",
		Mineral: royalty.MineralCoal,
		Method:  royalty.MethodTiered,
		Params: royalty.ContractParams{
			Tiers: []royalty.Tier{
				{From: decimal.Zero, To: royalty.DecPtr(1000), Rate: decimal.NewFromInt(20)},
				{From: decimal.NewFromInt(1001), To: nil, Rate: decimal.NewFromInt(25)},
			},
		},
		Description: "Tiered coal royalties",
	}
	require.NoError(t, s.SaveContract(ctx, contract))

	got, err := s.GetContract(ctx, "ctr-1")
	require.NoError(t, err)
	require.Len(t, got.Params.Tiers, 2)
	require.NotNil(t, got.Params.Tiers[0].To)
	assert.True(t, got.Params.Tiers[0].To.Equal(decimal.NewFromInt(1000)))
	assert.Nil(t, got.Params.Tiers[1].To, "unbounded tier survives the JSON column")
	assert.Equal(t, "Tiered coal royalties", got.Description)

	_, err = s.GetContract(ctx, "ctr-2")
	assert.ErrorIs(t, err, royalty.ErrContractNotFound)
}

func TestSQLite_AuditTrail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	engine := royalty.NewEngine(royalty.DefaultRateConfig())
	eval := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"rec-1", "rec-1", "rec-2"} {
		rec := sampleRecord(id)
		rec.Method = royalty.MethodFixed
		result, err := engine.Calculate(royalty.Input{Record: rec, EvaluationDate: eval})
		require.NoError(t, err)
		require.NoError(t, s.SaveAudit(ctx, royalty.ExportAudit(result)))
	}

	all, err := s.ListAudits(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forRec1, err := s.ListAudits(ctx, "rec-1")
	require.NoError(t, err)
	require.Len(t, forRec1, 2)
	assert.True(t, forRec1[0].Timestamp.Equal(eval))
	assert.NotEmpty(t, forRec1[0].AppliedRules)

	got, err := s.GetAudit(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].RecordID, got.RecordID)
	assert.True(t, all[0].Result.Total.Equal(got.Result.Total),
		"the frozen breakdown survives the JSON column")

	_, err = s.GetAudit(ctx, "CALC-missing")
	assert.ErrorIs(t, err, royalty.ErrAuditNotFound)
}

func TestSQLite_ResetClearsAllTables(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rec := sampleRecord("rec-1")
	rec.Method = royalty.MethodFixed
	require.NoError(t, s.SaveRecord(ctx, rec))
	require.NoError(t, s.SaveContract(ctx, royalty.ContractRecord{ID: "ctr-1", Method: royalty.MethodFixed}))

	engine := royalty.NewEngine(royalty.DefaultRateConfig())
	result, err := engine.Calculate(royalty.Input{
		Record:         rec,
		EvaluationDate: time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, s.SaveAudit(ctx, royalty.ExportAudit(result)))

	require.NoError(t, s.Reset(ctx))

	records, err := s.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	contracts, err := s.ListContracts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contracts)

	audits, err := s.ListAudits(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, audits)
}
