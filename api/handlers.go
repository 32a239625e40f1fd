/*
handlers.go - HTTP API handlers for the earnings analysis engine

PURPOSE:
  Exposes the earnings engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Profile:
    GET    /api/users/{userID}/profile           Get profile
    PUT    /api/users/{userID}/profile           Upsert profile

  Positions:
    GET    /api/users/{userID}/positions         List positions
    POST   /api/users/{userID}/positions         Create position
    GET    /api/positions/{id}                   Get position
    PUT    /api/positions/{id}                   Update position
    DELETE /api/positions/{id}                   Delete position (records cascade)

  Records:
    GET    /api/positions/{id}/records           List records for a position
    POST   /api/positions/{id}/records           Add record (kind-discriminated)
    DELETE /api/records/{id}                     Delete record

  Analysis:
    GET    /api/users/{userID}/analysis          Full earnings analysis
    GET    /api/users/{userID}/weekly-projection Weekly timesheet projection
    GET    /api/users/{userID}/reality-check     Rate comparison card
    GET    /api/users/{userID}/resume            Resume export

  Market:
    GET    /api/market/median                    Industry median lookup
    GET    /api/market/tax-estimate              Bracket tax estimate

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (normalize, aggregate, analyze)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Position or record not found
  - 500: Internal errors
  Absence of data is NOT an error: analysis endpoints return 200 with
  state "no_data" so clients can render an onboarding view.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/paylens/earnings-engine/engine"
	"github.com/paylens/earnings-engine/market"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Repo     engine.Repository
	Analyzer *engine.Analyzer

	// Clock returns the analysis "now"; overridable in tests.
	Clock func() time.Time
}

// NewHandler creates a new handler over the given repository with the static
// market reference wired in.
func NewHandler(repo engine.Repository) *Handler {
	return &Handler{
		Repo: repo,
		Analyzer: &engine.Analyzer{
			Market: market.Reference{},
		},
		Clock: time.Now,
	}
}

func (h *Handler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}

// =============================================================================
// PROFILE HANDLERS
// =============================================================================

// GetProfile returns the user's profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "userID"))

	profile, err := h.Repo.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get profile", err)
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toProfileDTO(*profile))
}

// SaveProfile upserts the user's profile.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "userID"))

	var req ProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	profile := req.toDomain(userID)
	if err := h.Repo.SaveProfile(r.Context(), profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save profile", err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileDTO(profile))
}

// =============================================================================
// POSITION HANDLERS
// =============================================================================

// ListPositions returns all positions for a user, ordered by start date.
func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "userID"))

	positions, err := h.Repo.ListPositions(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list positions", err)
		return
	}

	dtos := make([]PositionDTO, len(positions))
	for i, p := range positions {
		dtos[i] = toPositionDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePosition creates a position for a user.
func (h *Handler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "userID"))

	var req PositionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	position, err := req.toDomain(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid position", err)
		return
	}
	if err := engine.ValidatePosition(position); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid position", err)
		return
	}

	if err := h.Repo.SavePosition(r.Context(), position); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save position", err)
		return
	}

	writeJSON(w, http.StatusCreated, toPositionDTO(position))
}

// GetPosition returns a single position.
func (h *Handler) GetPosition(w http.ResponseWriter, r *http.Request) {
	id := engine.PositionID(chi.URLParam(r, "id"))

	position, err := h.Repo.GetPosition(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "Failed to get position", err)
		return
	}
	writeJSON(w, http.StatusOK, toPositionDTO(*position))
}

// UpdatePosition replaces a position. The position keeps its owner.
func (h *Handler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id := engine.PositionID(chi.URLParam(r, "id"))

	existing, err := h.Repo.GetPosition(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "Failed to get position", err)
		return
	}

	var req PositionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.ID = string(id)

	position, err := req.toDomain(existing.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid position", err)
		return
	}
	if err := engine.ValidatePosition(position); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid position", err)
		return
	}

	if err := h.Repo.SavePosition(r.Context(), position); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save position", err)
		return
	}
	writeJSON(w, http.StatusOK, toPositionDTO(position))
}

// DeletePosition deletes a position and all its compensation records.
func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	id := engine.PositionID(chi.URLParam(r, "id"))

	if err := h.Repo.DeletePosition(r.Context(), id); err != nil {
		h.writeDomainError(w, "Failed to delete position", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// ListRecords returns all compensation records for a position.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	id := engine.PositionID(chi.URLParam(r, "id"))

	if _, err := h.Repo.GetPosition(r.Context(), id); err != nil {
		h.writeDomainError(w, "Failed to get position", err)
		return
	}

	records, err := h.Repo.ListRecordsByPosition(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// CreateRecord adds a compensation record to a position. The record payload
// is polymorphic, discriminated by the kind field.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	id := engine.PositionID(chi.URLParam(r, "id"))

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record, err := req.toDomain(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid record", err)
		return
	}

	// Normalize up front so a record the engine would reject never lands
	// in the store.
	result := h.Analyzer.Normalizer.NormalizeAll([]engine.CompensationRecord{record})
	if len(result.Rejected) > 0 {
		rej := result.Rejected[0]
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Record failed validation",
			Details: rej.Error(),
		})
		return
	}

	if err := h.Repo.SaveRecord(r.Context(), record); err != nil {
		h.writeDomainError(w, "Failed to save record", err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// DeleteRecord removes a single compensation record.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := engine.RecordID(chi.URLParam(r, "id"))

	if err := h.Repo.DeleteRecord(r.Context(), id); err != nil {
		h.writeDomainError(w, "Failed to delete record", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// ANALYSIS HANDLERS
// =============================================================================

// GetAnalysis runs the full earnings analysis for a user.
// Query params:
//
//	baseline  growth baseline: role_level (default), industry_average, cpi_adjusted
//	as_of     analysis date, YYYY-MM-DD (default: today)
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "userID"))

	asOf := h.now()
	if s := r.URL.Query().Get("as_of"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", err)
			return
		}
		asOf = t
	}

	in, err := h.loadAnalysisInput(r, userID, asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load data", err)
		return
	}
	in.Baseline = engine.GrowthBaseline(r.URL.Query().Get("baseline"))

	analysis, err := h.Analyzer.Analyze(in)
	if errors.Is(err, engine.ErrNoData) {
		writeJSON(w, http.StatusOK, AnalysisDTO{State: "no_data"})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Analysis failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toAnalysisDTO(analysis))
}

// GetWeeklyProjection projects annual income from the user's weekly
// timesheet records.
func (h *Handler) GetWeeklyProjection(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "userID"))

	records, err := h.Repo.ListRecordsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load records", err)
		return
	}

	var weekly []engine.WeeklyRecord
	for _, rec := range records {
		if wr, ok := rec.(engine.WeeklyRecord); ok {
			weekly = append(weekly, wr)
		}
	}
	// Most recent first, matching the trend classifier's expectation.
	sortWeeklyDesc(weekly)

	projection, err := engine.ProjectFromWeekly(weekly)
	if errors.Is(err, engine.ErrInsufficientData) {
		writeJSON(w, http.StatusOK, WeeklyProjectionDTO{State: "no_data"})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Projection failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toWeeklyProjectionDTO(projection))
}

// GetRealityCheck compares the user's real hourly rate against standard hours
// and the industry market rate.
func (h *Handler) GetRealityCheck(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "userID"))
	asOf := h.now()

	in, err := h.loadAnalysisInput(r, userID, asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load data", err)
		return
	}

	norm := h.Analyzer.Normalizer.NormalizeAll(in.Records)
	latest := latestNormalizedEntry(norm.Annual, asOf)
	if latest == nil {
		writeError(w, http.StatusNotFound, "No compensation data", nil)
		return
	}

	standardHours := decimal.NewFromInt(38)
	if in.Profile != nil {
		standardHours = in.Profile.EffectiveStandardHours()
	}
	actualHours := latest.ActualWeeklyHours
	if !actualHours.IsPositive() {
		actualHours = standardHours
	}

	marketRate := decimal.Zero
	if in.Profile != nil {
		if median, err := (market.Reference{}).IndustryMedian(in.Profile.Industry); err == nil {
			marketRate = engine.RealHourlyRate(median, standardHours)
		}
	}

	position := currentPositionOf(in.Positions, asOf)
	check := engine.CheckReality(
		latest.TotalAnnual(), actualHours, standardHours, marketRate, position, asOf)
	writeJSON(w, http.StatusOK, toRealityCheckDTO(check))
}

// GetResume flattens the user's positions, profile, and analysis into an
// export-ready resume. Works with positions alone; compensation figures are
// zero until records exist.
func (h *Handler) GetResume(w http.ResponseWriter, r *http.Request) {
	userID := engine.UserID(chi.URLParam(r, "userID"))
	asOf := h.now()

	in, err := h.loadAnalysisInput(r, userID, asOf)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load data", err)
		return
	}

	var analysis *engine.EarningsAnalysis
	switch a, err := h.Analyzer.Analyze(in); {
	case err == nil:
		analysis = a
	case errors.Is(err, engine.ErrNoData):
		// fine, export the positions without compensation figures
	default:
		writeError(w, http.StatusInternalServerError, "Analysis failed", err)
		return
	}

	resume := engine.BuildResume(in.Profile, in.Positions, analysis, asOf)
	writeJSON(w, http.StatusOK, toResumeDTO(resume))
}

// loadAnalysisInput gathers everything Analyze needs for a user.
func (h *Handler) loadAnalysisInput(r *http.Request, userID engine.UserID, asOf time.Time) (engine.AnalysisInput, error) {
	ctx := r.Context()

	profile, err := h.Repo.GetProfile(ctx, userID)
	if err != nil {
		return engine.AnalysisInput{}, err
	}
	positions, err := h.Repo.ListPositions(ctx, userID)
	if err != nil {
		return engine.AnalysisInput{}, err
	}
	records, err := h.Repo.ListRecordsByUser(ctx, userID)
	if err != nil {
		return engine.AnalysisInput{}, err
	}

	return engine.AnalysisInput{
		AsOf:      asOf,
		Profile:   profile,
		Positions: positions,
		Records:   records,
	}, nil
}

// =============================================================================
// MARKET HANDLERS
// =============================================================================

// GetMarketMedian looks up the industry median salary.
// GET /api/market/median?industry=technology
func (h *Handler) GetMarketMedian(w http.ResponseWriter, r *http.Request) {
	industry := r.URL.Query().Get("industry")

	median, err := (market.Reference{}).IndustryMedian(industry)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Industry required", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"industry": industry,
		"median":   f(median),
	})
}

// GetTaxEstimate estimates annual tax from gross income using the resident
// brackets.
// GET /api/market/tax-estimate?gross=120000
func (h *Handler) GetTaxEstimate(w http.ResponseWriter, r *http.Request) {
	gross, err := decimal.NewFromString(r.URL.Query().Get("gross"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid gross amount", err)
		return
	}

	tax := market.EstimateAnnualTax(gross)
	writeJSON(w, http.StatusOK, map[string]any{
		"gross":          f(gross),
		"estimated_tax":  f(tax),
		"effective_rate": f(market.EffectiveTaxRate(gross)),
	})
}

// =============================================================================
// HELPERS
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

// writeDomainError maps sentinel errors onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, engine.ErrPositionNotFound), errors.Is(err, engine.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, engine.ErrInvalidInput), errors.Is(err, engine.ErrInconsistentData):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func sortWeeklyDesc(entries []engine.WeeklyRecord) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].WeekEnding.After(entries[j].WeekEnding)
	})
}

func latestNormalizedEntry(entries []engine.NormalizedAnnual, asOf time.Time) *engine.NormalizedAnnual {
	var latest *engine.NormalizedAnnual
	for i := range entries {
		e := &entries[i]
		if e.EffectiveDate.After(asOf) {
			continue
		}
		if latest == nil || e.EffectiveDate.After(latest.EffectiveDate) {
			latest = e
		}
	}
	return latest
}

func currentPositionOf(positions []engine.Position, asOf time.Time) engine.Position {
	var current engine.Position
	for _, p := range positions {
		if p.IsCurrent(asOf) && (current.StartDate.IsZero() || p.StartDate.After(current.StartDate)) {
			current = p
		}
	}
	return current
}
