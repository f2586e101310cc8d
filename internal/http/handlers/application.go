package handlers

import (
	"net/http"
	"time"

	"talenthub/internal/app"
	"talenthub/internal/common"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/principal"
	"talenthub/internal/http/middleware"
	"talenthub/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	authz        *app.Authorizer
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, authz *app.Authorizer, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, authz: authz, limiter: limiter}
}

type applyRequest struct {
	JobID string `json:"job_id"`
	Notes string `json:"notes"`
}

type applicationStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid application", map[string]string{"job_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil && !h.limiter.Allow("apply:"+actor.PrincipalID.String(), 30, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "application rate limit exceeded", nil))
		return
	}
	result, err := h.applications.Apply(r.Context(), actor, jobID, req.Notes)
	if err != nil {
		response.Error(w, err)
		return
	}
	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	response.JSON(w, status, result)
}

// List dispatches on the caller's role: candidates get their own
// applications, employers and recruiters get every application across
// the employer's jobs.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	var items []application.Application
	if actor.Role == principal.RoleCandidate {
		items, err = h.applications.ListByCandidate(r.Context(), actor)
	} else {
		items, err = h.applications.ListByEmployer(r.Context(), actor)
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), actor, applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applicationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), actor, applicationID, application.Status(req.Status), req.Notes)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
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
	items, err := h.applications.ListByJob(r.Context(), actor, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
