package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fincast/fincast/internal/adapter/http/dto"
	"github.com/fincast/fincast/internal/engine"
)

// Granularity values accepted by the simulations endpoint.
const (
	granularityDays   = "days"
	granularityMonths = "months"
	granularityYears  = "years"
)

// SimulationHandler handles trajectory simulation requests.
type SimulationHandler struct {
	engine         *engine.Engine
	defaultHorizon int
}

// NewSimulationHandler creates a new SimulationHandler. Plans without a
// horizon fall back to defaultHorizonDays.
func NewSimulationHandler(eng *engine.Engine, defaultHorizonDays int) *SimulationHandler {
	return &SimulationHandler{engine: eng, defaultHorizon: defaultHorizonDays}
}

// Simulate runs a full trajectory simulation. The granularity query
// parameter selects the aggregation level of the response; days is the
// default.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	granularity := r.URL.Query().Get("granularity")
	if granularity == "" {
		granularity = granularityDays
	}
	if granularity != granularityDays && granularity != granularityMonths && granularity != granularityYears {
		writeError(w, http.StatusBadRequest, "invalid granularity", "must be one of days, months, years")
		return
	}

	cfg, err := req.ToSimulationConfig()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan", err.Error())
		return
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = h.defaultHorizon
	}

	result, err := h.engine.SimulateTrajectory(cfg)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "simulation failed", err.Error())
		return
	}

	resp := dto.SimulationResponse{
		Warnings: dto.WarningsFromDomain(result.Warnings),
	}

	switch granularity {
	case granularityDays:
		resp.Days = dto.DaysFromDomain(result.Days)
	case granularityMonths:
		months := h.engine.AggregateMonths(result.Days, cfg.Accounts, cfg.Modifications)
		resp.Months = dto.MonthsFromDomain(months)
	case granularityYears:
		months := h.engine.AggregateMonths(result.Days, cfg.Accounts, cfg.Modifications)
		years := h.engine.AggregateYears(months, cfg.Accounts, cfg.Modifications)
		resp.Years = dto.YearsFromDomain(years)
	}

	writeJSON(w, http.StatusOK, resp)
}
