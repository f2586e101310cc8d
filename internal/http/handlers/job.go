package handlers

import (
	"context"
	"net/http"
	"strconv"

	"talenthub/internal/app"
	"talenthub/internal/common"
	"talenthub/internal/domain/job"
	"talenthub/internal/http/response"
)

type JobHandler struct {
	jobs  *app.JobService
	authz *app.Authorizer
}

func NewJobHandler(jobs *app.JobService, authz *app.Authorizer) *JobHandler {
	return &JobHandler{jobs: jobs, authz: authz}
}

type jobRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	Category        string   `json:"category"`
	EmploymentType  string   `json:"employment_type"`
	ExperienceLevel int      `json:"experience_level"`
	SalaryMin       *int64   `json:"salary_min"`
	SalaryMax       *int64   `json:"salary_max"`
	Location        string   `json:"location"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), actor, app.JobInput{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Category:        req.Category,
		EmploymentType:  req.EmploymentType,
		ExperienceLevel: req.ExperienceLevel,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Location:        req.Location,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := job.SearchFilter{
		Category: query.Get("category"),
		Location: query.Get("location"),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.Error(w, common.NewValidationError("invalid query", map[string]string{"limit": "limit must be a non-negative integer"}))
			return
		}
		filter.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			response.Error(w, common.NewValidationError("invalid query", map[string]string{"offset": "offset must be a non-negative integer"}))
			return
		}
		filter.Offset = offset
	}
	items, err := h.jobs.Search(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	item, err := h.jobs.Get(r.Context(), actor, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *JobHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.jobs.Approve)
}

func (h *JobHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.jobs.Reject)
}

func (h *JobHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.jobs.Close)
}

func (h *JobHandler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, app.Actor, common.UUID) (*job.Job, error)) {
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
	updated, err := fn(r.Context(), actor, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.jobs.ListByEmployer(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
