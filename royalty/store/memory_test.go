package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swazimin/royalty-engine/royalty"
	"github.com/swazimin/royalty-engine/royalty/store"
)

func testRecord(id, entity string) royalty.RoyaltyRecord {
	return royalty.RoyaltyRecord{
		ID:      id,
		Entity:  entity,
		Mineral: royalty.MineralCoal,
		Volume:  decimal.NewFromInt(1200),
		Tariff:  decimal.NewFromInt(20),
		DueDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		Status:  royalty.StatusPending,
	}
}

func TestMemory_RecordLifecycle(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.SaveRecord(ctx, testRecord("rec-1", "Maloma Colliery")))
	require.NoError(t, m.SaveRecord(ctx, testRecord("rec-2", "Kwalini Quarry")))

	got, err := m.GetRecord(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "Maloma Colliery", got.Entity)

	list, err := m.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "rec-1", list[0].ID, "listing is sorted by ID")

	// Saving the same ID again replaces, it does not duplicate
	updated := testRecord("rec-1", "Ngwenya Mine")
	require.NoError(t, m.SaveRecord(ctx, updated))
	list, err = m.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, m.DeleteRecord(ctx, "rec-1"))
	_, err = m.GetRecord(ctx, "rec-1")
	assert.ErrorIs(t, err, royalty.ErrRecordNotFound)
}

func TestMemory_RecordNotFound(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	_, err := m.GetRecord(ctx, "missing")
	assert.ErrorIs(t, err, royalty.ErrRecordNotFound)
	assert.True(t, royalty.IsNotFound(err))

	err = m.DeleteRecord(ctx, "missing")
	assert.ErrorIs(t, err, royalty.ErrRecordNotFound)
}

func TestMemory_ContractLifecycle(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	contract := royalty.ContractRecord{
		ID:      "ctr-1",
		Title:   "Coal Supply Schedule",
		Entity:  "Maloma Colliery",
		Mineral: royalty.MineralCoal,
		Method:  royalty.MethodTiered,
		Params: royalty.ContractParams{
			Tiers: []royalty.Tier{
				{From: decimal.Zero, To: nil, Rate: decimal.NewFromInt(20)},
			},
		},
	}

	require.NoError(t, m.SaveContract(ctx, contract))

	got, err := m.GetContract(ctx, "ctr-1")
	require.NoError(t, err)
	assert.Equal(t, royalty.MethodTiered, got.Method)
	require.Len(t, got.Params.Tiers, 1)

	_, err = m.GetContract(ctx, "ctr-2")
	assert.ErrorIs(t, err, royalty.ErrContractNotFound)

	require.NoError(t, m.DeleteContract(ctx, "ctr-1"))
	list, err := m.ListContracts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemory_AuditAppendOnlyAndFilter(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	engine := royalty.NewEngine(royalty.DefaultRateConfig())
	eval := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"rec-1", "rec-1", "rec-2"} {
		result, err := engine.Calculate(royalty.Input{
			Record:         testRecord(id, "Maloma Colliery"),
			EvaluationDate: eval,
		})
		require.NoError(t, err)
		require.NoError(t, m.SaveAudit(ctx, royalty.ExportAudit(result)))
	}

	all, err := m.ListAudits(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3, "audits append, they never replace")

	forRec1, err := m.ListAudits(ctx, "rec-1")
	require.NoError(t, err)
	assert.Len(t, forRec1, 2)

	got, err := m.GetAudit(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].RecordID, got.RecordID)

	_, err = m.GetAudit(ctx, "CALC-missing")
	assert.ErrorIs(t, err, royalty.ErrAuditNotFound)
}

func TestMemory_ResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.SaveRecord(ctx, testRecord("rec-1", "Kwalini Quarry")))
	require.NoError(t, m.SaveContract(ctx, royalty.ContractRecord{ID: "ctr-1", Method: royalty.MethodFixed}))

	require.NoError(t, m.Reset(ctx))

	records, err := m.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	contracts, err := m.ListContracts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contracts)
}
