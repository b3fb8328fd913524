/*
handlers.go - HTTP API handlers for the royalty calculation service

PURPOSE:
  Exposes the royalty engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Records:
    GET    /api/records                  List all royalty records
    POST   /api/records                  Create/replace a record
    GET    /api/records/{id}             Get record details
    DELETE /api/records/{id}             Delete a record
    POST   /api/records/{id}/calculate   Run the calculation pipeline
    GET    /api/records/{id}/audits      Calculation audit trail

  Contracts:
    GET    /api/contracts                List contract definitions
    POST   /api/contracts                Create contract from JSON
    GET    /api/contracts/{id}           Get contract details
    DELETE /api/contracts/{id}           Delete a contract

  Methods:
    GET    /api/methods                  Closed method set
    GET    /api/methods/suggest          Advisory method for a mineral

  Scenarios:
    GET    /api/scenarios                List demo scenarios
    POST   /api/scenarios/load           Load a demo scenario

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Records/Contracts/Audits: Storage interfaces
  - Engine: The calculation pipeline with its injected rate config
  - ContractFactory: JSON to ContractRecord conversion

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (engine, advisory, factory)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/swazimin/royalty-engine/factory"
	"github.com/swazimin/royalty-engine/royalty"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Records   royalty.RecordStore
	Contracts royalty.ContractStore
	Audits    royalty.AuditStore

	Engine          *royalty.Engine
	ContractFactory *factory.ContractFactory

	// Track currently loaded scenario
	currentScenario string
}

// Stores bundles the three storage interfaces a Handler needs. A single
// implementation (sqlite.Store, store.Memory) usually provides all three.
type Stores interface {
	royalty.RecordStore
	royalty.ContractStore
	royalty.AuditStore
}

// NewHandler creates a new handler with the given store and engine.
func NewHandler(stores Stores, engine *royalty.Engine) *Handler {
	return &Handler{
		Records:         stores,
		Contracts:       stores,
		Audits:          stores,
		Engine:          engine,
		ContractFactory: factory.NewContractFactory(),
	}
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// ListRecords returns all royalty records.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.Records.ListRecords(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	dtos := make([]RecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toRecordDTO(rec)
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetRecord returns a single royalty record.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Records.GetRecord(r.Context(), id)
	if royalty.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Record not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get record", err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordDTO(*rec))
}

// CreateRecord creates or replaces a royalty record.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Entity == "" || req.Mineral == "" {
		writeError(w, http.StatusBadRequest, "id, entity and mineral are required", nil)
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid due_date format (use YYYY-MM-DD)", err)
		return
	}

	if _, err := royalty.ParseMethod(req.Method); err != nil {
		writeError(w, http.StatusBadRequest, "Unknown calculation method", err)
		return
	}

	rec := royalty.RoyaltyRecord{
		ID:             req.ID,
		Entity:         req.Entity,
		Mineral:        royalty.Mineral(req.Mineral),
		Volume:         royalty.Dec(req.Volume),
		Tariff:         royalty.Dec(req.Tariff),
		Currency:       royalty.Currency(req.Currency),
		DueDate:        dueDate,
		Status:         parseStatus(req.Status),
		Method:         royalty.Method(req.Method),
		ContractID:     req.ContractID,
		UnitPrice:      decPtr(req.UnitPrice),
		MarketValue:    decPtr(req.MarketValue),
		GrossValue:     decPtr(req.GrossValue),
		AdValoremRate:  decPtr(req.AdValoremRate),
		PercentageRate: decPtr(req.PercentageRate),
	}

	if err := h.Records.SaveRecord(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save record", err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordDTO(rec))
}

// DeleteRecord removes a royalty record.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Records.DeleteRecord(r.Context(), id)
	if royalty.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Record not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete record", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// CalculateRecord runs the full pipeline for one record.
func (h *Handler) CalculateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	rec, err := h.Records.GetRecord(ctx, id)
	if royalty.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Record not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get record", err)
		return
	}

	var req CalculateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	eval := time.Now().UTC()
	if req.EvaluationDate != "" {
		eval, err = time.Parse("2006-01-02", req.EvaluationDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid evaluation_date format (use YYYY-MM-DD)", err)
			return
		}
	}

	in := royalty.Input{
		Record:         *rec,
		EvaluationDate: eval,
		Options: royalty.Options{
			GracePeriodDays: req.GracePeriodDays,
			Compound:        req.Compound,
		},
	}

	if rec.ContractID != "" {
		contract, err := h.Contracts.GetContract(ctx, rec.ContractID)
		if err != nil && !royalty.IsNotFound(err) {
			writeError(w, http.StatusInternalServerError, "Failed to load contract", err)
			return
		}
		if contract != nil {
			in.Contract = &contract.Params
		}
	}

	result, err := h.Engine.Calculate(in)
	if royalty.IsConfigError(err) {
		writeError(w, http.StatusBadRequest, "Calculation rejected", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Calculation failed", err)
		return
	}

	if req.SaveAudit {
		if err := h.Audits.SaveAudit(ctx, royalty.ExportAudit(result)); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save audit record", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, toResultDTO(result))
}

// ListAudits returns the calculation audit trail for one record.
func (h *Handler) ListAudits(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	audits, err := h.Audits.ListAudits(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list audit records", err)
		return
	}

	dtos := make([]AuditDTO, len(audits))
	for i, a := range audits {
		dtos[i] = toAuditDTO(a)
	}

	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// CONTRACT HANDLERS
// =============================================================================

// ListContracts returns all contract definitions.
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Contracts.ListContracts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list contracts", err)
		return
	}

	dtos := make([]factory.ContractJSON, len(contracts))
	for i, c := range contracts {
		contract := c
		dtos[i] = h.ContractFactory.ToJSON(&contract)
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetContract returns a single contract.
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	contract, err := h.Contracts.GetContract(r.Context(), id)
	if royalty.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Contract not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get contract", err)
		return
	}

	writeJSON(w, http.StatusOK, h.ContractFactory.ToJSON(contract))
}

// CreateContract creates a contract from its JSON definition. The factory
// validates the method and params before anything is stored.
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var cj factory.ContractJSON
	if err := json.NewDecoder(r.Body).Decode(&cj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if cj.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", nil)
		return
	}

	contract, err := h.ContractFactory.FromJSON(cj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid contract definition", err)
		return
	}

	if err := h.Contracts.SaveContract(r.Context(), *contract); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save contract", err)
		return
	}

	writeJSON(w, http.StatusCreated, h.ContractFactory.ToJSON(contract))
}

// DeleteContract removes a contract definition.
func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Contracts.DeleteContract(r.Context(), id)
	if royalty.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Contract not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete contract", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// METHOD HANDLERS
// =============================================================================

// ListMethods returns the closed calculation method set.
func (h *Handler) ListMethods(w http.ResponseWriter, r *http.Request) {
	methods := royalty.Methods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	writeJSON(w, http.StatusOK, names)
}

// SuggestMethod returns the advisory method for a mineral.
// GET /api/methods/suggest?mineral=Coal
func (h *Handler) SuggestMethod(w http.ResponseWriter, r *http.Request) {
	mineral := r.URL.Query().Get("mineral")
	if mineral == "" {
		writeError(w, http.StatusBadRequest, "mineral query parameter is required", nil)
		return
	}

	suggestion := royalty.SuggestMethod(royalty.Mineral(mineral))
	writeJSON(w, http.StatusOK, SuggestionDTO{
		Mineral: mineral,
		Method:  string(suggestion.Method),
		Reason:  suggestion.Reason,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func parseStatus(s string) royalty.Status {
	if s == "" {
		return royalty.StatusPending
	}
	return royalty.Status(s)
}

func decPtr(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	return royalty.DecPtr(*v)
}
