package orghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ems/internal/auth"
	"ems/internal/config"
	"ems/internal/domain/org"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Handler struct {
	Org *org.Service
	Cfg config.Config
}

func NewHandler(orgService *org.Service, cfg config.Config) *Handler {
	return &Handler{Org: orgService, Cfg: cfg}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	manage := middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)

	r.Route("/departments", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleListDepartments)
		r.Get("/{departmentID}", h.handleGetDepartment)
		r.With(manage).Post("/", h.handleCreateDepartment)
		r.With(manage).Put("/{departmentID}", h.handleUpdateDepartment)
		r.With(manage).Delete("/{departmentID}", h.handleDeleteDepartment)
	})
	r.Route("/roles", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleListRoles)
		r.Get("/{roleID}", h.handleGetRole)
		r.With(manage).Post("/", h.handleCreateRole)
		r.With(manage).Put("/{roleID}", h.handleUpdateRole)
		r.With(manage).Delete("/{roleID}", h.handleDeleteRole)
	})
}

type departmentPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type rolePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	departments, err := h.Org.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", serverMessage(h.Cfg, err, "failed to list departments"), reqID)
		return
	}
	api.SuccessWithCount(w, departments, len(departments), reqID)
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	dept, err := h.Org.GetDepartment(r.Context(), chi.URLParam(r, "departmentID"))
	if err != nil {
		h.failDepartment(w, err, reqID)
		return
	}
	api.Success(w, dept, reqID)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	payload, ok := decodeDepartment(w, r, reqID)
	if !ok {
		return
	}

	dept, err := h.Org.CreateDepartment(r.Context(), org.DepartmentInput{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		h.failDepartment(w, err, reqID)
		return
	}
	api.Created(w, dept, reqID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	payload, ok := decodeDepartment(w, r, reqID)
	if !ok {
		return
	}

	dept, err := h.Org.UpdateDepartment(r.Context(), chi.URLParam(r, "departmentID"), org.DepartmentInput{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		h.failDepartment(w, err, reqID)
		return
	}
	api.Success(w, dept, reqID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Org.DeleteDepartment(r.Context(), chi.URLParam(r, "departmentID")); err != nil {
		h.failDepartment(w, err, reqID)
		return
	}
	api.SuccessWithMessage(w, "department deleted", nil, reqID)
}

func (h *Handler) handleListRoles(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	roles, err := h.Org.ListJobRoles(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "role_list_failed", serverMessage(h.Cfg, err, "failed to list roles"), reqID)
		return
	}
	api.SuccessWithCount(w, roles, len(roles), reqID)
}

func (h *Handler) handleGetRole(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	role, err := h.Org.GetJobRole(r.Context(), chi.URLParam(r, "roleID"))
	if err != nil {
		h.failRole(w, err, reqID)
		return
	}
	api.Success(w, role, reqID)
}

func (h *Handler) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	payload, ok := decodeRole(w, r, reqID)
	if !ok {
		return
	}

	role, err := h.Org.CreateJobRole(r.Context(), org.JobRoleInput{
		Title:       payload.Title,
		Description: payload.Description,
	})
	if err != nil {
		h.failRole(w, err, reqID)
		return
	}
	api.Created(w, role, reqID)
}

func (h *Handler) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	payload, ok := decodeRole(w, r, reqID)
	if !ok {
		return
	}

	role, err := h.Org.UpdateJobRole(r.Context(), chi.URLParam(r, "roleID"), org.JobRoleInput{
		Title:       payload.Title,
		Description: payload.Description,
	})
	if err != nil {
		h.failRole(w, err, reqID)
		return
	}
	api.Success(w, role, reqID)
}

func (h *Handler) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.Org.DeleteJobRole(r.Context(), chi.URLParam(r, "roleID")); err != nil {
		h.failRole(w, err, reqID)
		return
	}
	api.SuccessWithMessage(w, "role deleted", nil, reqID)
}

func decodeDepartment(w http.ResponseWriter, r *http.Request, reqID string) (departmentPayload, bool) {
	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return payload, false
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.MinLen("name", payload.Name, 2, "name must be at least 2 characters")
	if v.Reject(w, reqID) {
		return payload, false
	}
	return payload, true
}

func decodeRole(w http.ResponseWriter, r *http.Request, reqID string) (rolePayload, bool) {
	var payload rolePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return payload, false
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	v.MinLen("title", payload.Title, 2, "title must be at least 2 characters")
	if v.Reject(w, reqID) {
		return payload, false
	}
	return payload, true
}

func (h *Handler) failDepartment(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, org.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "department_not_found", "department not found", reqID)
	case errors.Is(err, org.ErrDuplicateName):
		api.Fail(w, http.StatusBadRequest, "department_name_taken", "a department with this name already exists", reqID)
	case errors.Is(err, org.ErrHasEmployees):
		api.Fail(w, http.StatusBadRequest, "department_in_use", "department still has employees assigned", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "department_write_failed", serverMessage(h.Cfg, err, "failed to save department"), reqID)
	}
}

func (h *Handler) failRole(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, org.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "role_not_found", "role not found", reqID)
	case errors.Is(err, org.ErrDuplicateTitle):
		api.Fail(w, http.StatusBadRequest, "role_title_taken", "a role with this title already exists", reqID)
	case errors.Is(err, org.ErrHasEmployees):
		api.Fail(w, http.StatusBadRequest, "role_in_use", "role still has employees assigned", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "role_write_failed", serverMessage(h.Cfg, err, "failed to save role"), reqID)
	}
}

func serverMessage(cfg config.Config, err error, fallback string) string {
	if cfg.Production() {
		return fallback
	}
	return err.Error()
}
