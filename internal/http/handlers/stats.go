package handlers

import (
	"net/http"

	"talenthub/internal/app"
	"talenthub/internal/http/response"
)

type StatsHandler struct {
	stats *app.StatsService
	jobs  *app.JobService
	authz *app.Authorizer
}

func NewStatsHandler(stats *app.StatsService, jobs *app.JobService, authz *app.Authorizer) *StatsHandler {
	return &StatsHandler{stats: stats, jobs: jobs, authz: authz}
}

func (h *StatsHandler) JobStats(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.stats.JobStats(r.Context(), actor, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// Dashboard bundles the employer aggregates with the employer's job
// list so the landing view needs a single round trip.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	aggregates, err := h.stats.EmployerStats(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobs, err := h.jobs.ListByEmployer(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"stats": aggregates,
		"jobs":  jobs,
	})
}
