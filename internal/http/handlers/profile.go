package handlers

import (
	"io"
	"net/http"

	"talenthub/internal/app"
	"talenthub/internal/common"
	"talenthub/internal/domain/profile"
	"talenthub/internal/http/middleware"
	"talenthub/internal/http/response"
)

type ProfileHandler struct {
	registry *app.RegistryService
	profiles *app.ProfileService
	authz    *app.Authorizer
}

func NewProfileHandler(registry *app.RegistryService, profiles *app.ProfileService, authz *app.Authorizer) *ProfileHandler {
	return &ProfileHandler{registry: registry, profiles: profiles, authz: authz}
}

type candidateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	About    string `json:"about"`
}

type employerProfileRequest struct {
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Industry    string `json:"industry"`
	CompanySize string `json:"company_size"`
	Website     string `json:"website"`
}

type recruiterProfileRequest struct {
	EmployerID  string              `json:"employer_id"`
	FullName    string              `json:"full_name"`
	Title       string              `json:"title"`
	Permissions profile.Permissions `json:"permissions"`
}

type recruiterInviteRequest struct {
	Email       string              `json:"email"`
	FullName    string              `json:"full_name"`
	Title       string              `json:"title"`
	Permissions profile.Permissions `json:"permissions"`
}

func (h *ProfileHandler) ProvisionCandidate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req candidateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.registry.ProvisionCandidate(r.Context(), userID, app.CandidateInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Location: req.Location,
		About:    req.About,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ProfileHandler) ProvisionEmployer(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req employerProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.registry.ProvisionEmployer(r.Context(), userID, app.EmployerInput{
		CompanyName: req.CompanyName,
		Description: req.Description,
		Location:    req.Location,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		Website:     req.Website,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ProfileHandler) ProvisionRecruiter(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req recruiterProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	employerID, err := common.ParseUUID(req.EmployerID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid profile", map[string]string{"employer_id": "invalid uuid"}))
		return
	}
	created, err := h.registry.ProvisionRecruiter(r.Context(), userID, app.RecruiterInput{
		EmployerID:  employerID,
		FullName:    req.FullName,
		Title:       req.Title,
		Permissions: req.Permissions,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ProfileHandler) InviteRecruiter(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req recruiterInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.registry.InviteRecruiter(r.Context(), actor, req.Email, req.FullName, req.Title, req.Permissions)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	view, err := h.profiles.Me(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

func (h *ProfileHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req candidateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.profiles.UpdateCandidate(r.Context(), actor, app.CandidateInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Location: req.Location,
		About:    req.About,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ProfileHandler) UpdateEmployer(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req employerProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.profiles.UpdateEmployer(r.Context(), actor, app.EmployerInput{
		CompanyName: req.CompanyName,
		Description: req.Description,
		Location:    req.Location,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
		Website:     req.Website,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ProfileHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, common.NewValidationError("invalid resume", map[string]string{"file": "multipart file field is required"}))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "failed to read file", err))
		return
	}
	url, err := h.profiles.UploadResume(r.Context(), actor, header.Filename, data, header.Header.Get("Content-Type"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"resume_url": url})
}

func (h *ProfileHandler) ListRecruiters(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.authz)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.profiles.ListRecruiters(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
