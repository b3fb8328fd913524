/*
scenarios.go - Demo scenario loaders

PURPOSE:
  Seeds the store with recognizable Eswatini mining datasets so the API
  can be demonstrated without manual data entry. Each scenario is a named
  bundle of royalty records and contracts; loading one replaces whatever
  records the previous scenario created.

SCENARIOS:
  mixed-operations: One entity per calculation method, all current
  overdue-quarter:  Filings at each penalty bracket and past grace
  coal-contracts:   Maloma coal under tiered and sliding contracts

These datasets exist for demos and API tests; production deployments
never load scenarios.

SEE ALSO:
  - handlers.go: Scenario HTTP handlers
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/swazimin/royalty-engine/royalty"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ID          string
	Name        string
	Description string
	Load        func(ctx context.Context, h *Handler, now time.Time) error
}

// Resetter is implemented by stores that can clear all stored data.
// Loading a scenario resets the store first so loads never stack.
type Resetter interface {
	Reset(ctx context.Context) error
}

func scenarios() []scenario {
	return []scenario{
		{
			ID:          "mixed-operations",
			Name:        "Mixed Operations",
			Description: "Five Eswatini operations, one per calculation method, all paid up",
			Load:        loadMixedOperations,
		},
		{
			ID:          "overdue-quarter",
			Name:        "Overdue Quarter",
			Description: "Filings at each penalty bracket, one past the interest grace period",
			Load:        loadOverdueQuarter,
		},
		{
			ID:          "coal-contracts",
			Name:        "Coal Contracts",
			Description: "Maloma coal filings under tiered and sliding-scale contracts",
			Load:        loadCoalContracts,
		},
	}
}

func loadMixedOperations(ctx context.Context, h *Handler, now time.Time) error {
	due := now.AddDate(0, 1, 0)

	records := []royalty.RoyaltyRecord{
		{
			ID:      "rec-kwalini-001",
			Entity:  "Kwalini Quarry",
			Mineral: royalty.MineralQuarriedStone,
			Volume:  royalty.Dec(3200),
			Tariff:  royalty.Dec(12.5),
			DueDate: due,
			Status:  royalty.StatusPending,
			Method:  royalty.MethodFixed,
		},
		{
			ID:      "rec-maloma-001",
			Entity:  "Maloma Colliery",
			Mineral: royalty.MineralCoal,
			Volume:  royalty.Dec(4800),
			DueDate: due,
			Status:  royalty.StatusPending,
			Method:  royalty.MethodTiered,
		},
		{
			ID:      "rec-mbabane-001",
			Entity:  "Mbabane Quarry",
			Mineral: royalty.MineralGravel,
			Volume:  royalty.Dec(2100),
			DueDate: due,
			Status:  royalty.StatusPending,
			Method:  royalty.MethodSlidingScale,
		},
		{
			ID:      "rec-ngwenya-001",
			Entity:  "Ngwenya Mine",
			Mineral: royalty.MineralIronOre,
			Volume:  royalty.Dec(950),
			DueDate: due,
			Status:  royalty.StatusPending,
			Method:  royalty.MethodAdValorem,
		},
		{
			ID:        "rec-smallscale-001",
			Entity:    "Small Scale Mining",
			Mineral:   royalty.MineralGold,
			Volume:    royalty.Dec(12),
			UnitPrice: royalty.DecPtr(1900),
			DueDate:   due,
			Status:    royalty.StatusPending,
			Method:    royalty.MethodPercentage,
		},
	}

	return saveRecords(ctx, h, records)
}

func loadOverdueQuarter(ctx context.Context, h *Handler, now time.Time) error {
	records := []royalty.RoyaltyRecord{
		{
			ID:      "rec-overdue-early",
			Entity:  "Kwalini Quarry",
			Mineral: royalty.MineralQuarriedStone,
			Volume:  royalty.Dec(1500),
			Tariff:  royalty.Dec(12.5),
			DueDate: now.AddDate(0, 0, -20),
			Status:  royalty.StatusOverdue,
			Method:  royalty.MethodFixed,
		},
		{
			ID:      "rec-overdue-standard",
			Entity:  "Maloma Colliery",
			Mineral: royalty.MineralCoal,
			Volume:  royalty.Dec(2600),
			DueDate: now.AddDate(0, 0, -45),
			Status:  royalty.StatusOverdue,
			Method:  royalty.MethodTiered,
		},
		{
			ID:      "rec-overdue-severe",
			Entity:  "Ngwenya Mine",
			Mineral: royalty.MineralIronOre,
			Volume:  royalty.Dec(1200),
			DueDate: now.AddDate(0, 0, -120),
			Status:  royalty.StatusOverdue,
			Method:  royalty.MethodAdValorem,
		},
		{
			ID:      "rec-disputed-001",
			Entity:  "Small Scale Mining",
			Mineral: royalty.MineralGold,
			Volume:  royalty.Dec(8),
			DueDate: now.AddDate(0, 0, -90),
			Status:  royalty.StatusDisputed,
			Method:  royalty.MethodPercentage,
		},
	}

	return saveRecords(ctx, h, records)
}

func loadCoalContracts(ctx context.Context, h *Handler, now time.Time) error {
	contracts := []royalty.ContractRecord{
		{
			ID:      "ctr-maloma-tiered",
			Title:   "Maloma Tiered Coal Schedule",
			Entity:  "Maloma Colliery",
			Mineral: royalty.MineralCoal,
			Method:  royalty.MethodTiered,
			Params: royalty.ContractParams{
				Tiers: []royalty.Tier{
					{From: royalty.Dec(0), To: royalty.DecPtr(1000), Rate: royalty.Dec(20)},
					{From: royalty.Dec(1001), To: nil, Rate: royalty.Dec(25)},
				},
			},
			Description: "Negotiated 2024 coal schedule",
		},
		{
			ID:      "ctr-maloma-sliding",
			Title:   "Maloma Market-Indexed Schedule",
			Entity:  "Maloma Colliery",
			Mineral: royalty.MineralCoal,
			Method:  royalty.MethodSlidingScale,
			Params: royalty.ContractParams{
				Scales: []royalty.ScaleBand{
					{PriceFrom: royalty.Dec(0), PriceTo: royalty.DecPtr(80), Rate: royalty.Dec(0.05)},
					{PriceFrom: royalty.Dec(81), PriceTo: nil, Rate: royalty.Dec(0.08)},
				},
				BasePrice: royalty.DecPtr(75),
			},
			Description: "Rate slides with the coal market",
		},
	}

	for _, c := range contracts {
		if err := h.Contracts.SaveContract(ctx, c); err != nil {
			return fmt.Errorf("failed to save contract %s: %w", c.ID, err)
		}
	}

	records := []royalty.RoyaltyRecord{
		{
			ID:         "rec-maloma-q1",
			Entity:     "Maloma Colliery",
			Mineral:    royalty.MineralCoal,
			Volume:     royalty.Dec(1200),
			DueDate:    now.AddDate(0, 0, -45),
			Status:     royalty.StatusPending,
			Method:     royalty.MethodTiered,
			ContractID: "ctr-maloma-tiered",
		},
		{
			ID:         "rec-maloma-q2",
			Entity:     "Maloma Colliery",
			Mineral:    royalty.MineralCoal,
			Volume:     royalty.Dec(1800),
			DueDate:    now.AddDate(0, 1, 0),
			Status:     royalty.StatusPending,
			Method:     royalty.MethodSlidingScale,
			ContractID: "ctr-maloma-sliding",
		},
	}

	return saveRecords(ctx, h, records)
}

func saveRecords(ctx context.Context, h *Handler, records []royalty.RoyaltyRecord) error {
	for _, rec := range records {
		if err := h.Records.SaveRecord(ctx, rec); err != nil {
			return fmt.Errorf("failed to save record %s: %w", rec.ID, err)
		}
	}
	return nil
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	all := scenarios()
	dtos := make([]ScenarioDTO, len(all))
	for i, s := range all {
		dtos[i] = ScenarioDTO{ID: s.ID, Name: s.Name, Description: s.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCurrentScenario returns the most recently loaded scenario ID.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"scenario": h.currentScenario})
}

// LoadScenario seeds the store with a named scenario.
// POST /api/scenarios/load?id=mixed-operations
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id query parameter is required", nil)
		return
	}

	for _, s := range scenarios() {
		if s.ID != id {
			continue
		}
		if rs, ok := h.Records.(Resetter); ok {
			if err := rs.Reset(r.Context()); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
				return
			}
		}
		if err := s.Load(r.Context(), h, time.Now().UTC()); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
			return
		}
		h.currentScenario = s.ID
		writeJSON(w, http.StatusOK, map[string]string{"loaded": s.ID})
		return
	}

	writeError(w, http.StatusNotFound, "Unknown scenario", nil)
}
