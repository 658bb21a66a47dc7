package reportshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ems/internal/auth"
	"ems/internal/config"
	"ems/internal/domain/reports"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
)

type Handler struct {
	Reports *reports.Service
	Cfg     config.Config
}

func NewHandler(reportsService *reports.Service, cfg config.Config) *Handler {
	return &Handler{Reports: reportsService, Cfg: cfg}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR))
		r.Get("/departments", h.handleDepartmentReport)
		r.Get("/departments/pdf", h.handleDepartmentReportPDF)
		r.Get("/salary", h.handleSalaryReport)
		r.Get("/salary/pdf", h.handleSalaryReportPDF)
	})
}

func (h *Handler) handleDepartmentReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	report, err := h.Reports.DepartmentReport(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", serverMessage(h.Cfg, err, "failed to build department report"), reqID)
		return
	}
	api.SuccessWithCount(w, report, len(report), reqID)
}

func (h *Handler) handleSalaryReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	report, err := h.Reports.SalaryReport(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", serverMessage(h.Cfg, err, "failed to build salary report"), reqID)
		return
	}
	api.Success(w, report, reqID)
}

func (h *Handler) handleDepartmentReportPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	doc, err := h.Reports.DepartmentReportPDF(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", serverMessage(h.Cfg, err, "failed to render department report"), reqID)
		return
	}
	writePDF(w, "department-report.pdf", doc)
}

func (h *Handler) handleSalaryReportPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	doc, err := h.Reports.SalaryReportPDF(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", serverMessage(h.Cfg, err, "failed to render salary report"), reqID)
		return
	}
	writePDF(w, "salary-report.pdf", doc)
}

func writePDF(w http.ResponseWriter, filename string, doc []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func serverMessage(cfg config.Config, err error, fallback string) string {
	if cfg.Production() {
		return fallback
	}
	return err.Error()
}
