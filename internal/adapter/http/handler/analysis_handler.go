package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fincast/fincast/internal/adapter/http/dto"
	"github.com/fincast/fincast/internal/engine"
)

// AnalysisHandler handles anomaly-analysis requests.
type AnalysisHandler struct {
	engine         *engine.Engine
	defaultHorizon int
}

// NewAnalysisHandler creates a new AnalysisHandler. Plans without a horizon
// fall back to defaultHorizonDays.
func NewAnalysisHandler(eng *engine.Engine, defaultHorizonDays int) *AnalysisHandler {
	return &AnalysisHandler{engine: eng, defaultHorizon: defaultHorizonDays}
}

// Analyze simulates the plan, scans the trajectory for anomalies, derives
// recommendations, and returns the cumulative modification chain that
// would apply them.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
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

	months := h.engine.AggregateMonths(result.Days, cfg.Accounts, cfg.Modifications)
	years := h.engine.AggregateYears(months, cfg.Accounts, cfg.Modifications)

	report := h.engine.AnalyzeAndRecommend(cfg.Accounts, result.Days, years, cfg.IncomeItems, cfg.ExpenseItems)
	chain := h.engine.BuildModificationChain(cfg.Accounts, report.Recommendations, cfg.IncomeItems, cfg.ExpenseItems)

	writeJSON(w, http.StatusOK, dto.AnalysisFromDomain(report, chain, result.Warnings))
}
