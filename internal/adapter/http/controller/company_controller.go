package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerline/company-transfer-service/internal/adapter/http/models"
	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/ledgerline/company-transfer-service/internal/logger"
	"github.com/ledgerline/company-transfer-service/internal/usecase/service_interfaces"
)

type CompanyController struct {
	enrollment service_interfaces.EnrollmentService
	queries    service_interfaces.CompanyQueryService
}

func NewCompanyController(enrollment service_interfaces.EnrollmentService, queries service_interfaces.CompanyQueryService) *CompanyController {
	return &CompanyController{
		enrollment: enrollment,
		queries:    queries,
	}
}

func (c *CompanyController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	root := http.Handler(http.HandlerFunc(c.handleCompanies))
	sub := http.Handler(http.HandlerFunc(c.handleCompanySubpaths))
	if authMiddleware != nil {
		root = authMiddleware(root)
		sub = authMiddleware(sub)
	}
	mux.Handle("/companies", root)
	mux.Handle("/companies/", sub)
}

func (c *CompanyController) handleCompanies(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.enrollCompany(w, r)
	case http.MethodGet:
		c.listCompanies(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CompanyResponse]("method not allowed"))
	}
}

func (c *CompanyController) handleCompanySubpaths(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CompanyResponse]("method not allowed"))
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/companies/")
	switch rest {
	case "reports/enrolled-last-month":
		c.listEnrolledLastMonth(w, r)
	case "reports/transfers-last-month":
		c.listWithTransfersLastMonth(w, r)
	default:
		if rest == "" || strings.Contains(rest, "/") {
			writeJSON(w, http.StatusNotFound, commons.ErrorResponse[models.CompanyResponse]("not found"))
			return
		}
		c.getCompanyByCode(w, r, rest)
	}
}

func (c *CompanyController) enrollCompany(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.EnrollCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CompanyResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CompanyResponse]("validation failed", err.Error()))
		return
	}

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idempotencyKey == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CompanyResponse]("validation failed", "Idempotency-Key header is required"))
		return
	}

	candidate, err := req.ToDomain()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CompanyResponse]("validation failed", err.Error()))
		return
	}

	company, err := c.enrollment.Enroll(r.Context(), candidate, idempotencyKey, serializeCompanyResponse)
	if err != nil {
		var duplicate *domain.DuplicateRequestError
		if errors.As(err, &duplicate) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotency-Hit", "true")
			w.WriteHeader(duplicate.ResponseStatus)
			_, _ = w.Write(duplicate.ResponseBody)
			logResponse(r, duplicate.ResponseStatus, start)
			return
		}

		status := enrollmentErrorStatus(err)
		logError(r, err, logger.Fields{"idempotencyKey": idempotencyKey})
		writeJSON(w, status, commons.ErrorResponse[models.CompanyResponse](enrollmentErrorMessage(err)))
		return
	}

	// Serialize with the same function whose output was captured, so the
	// first response and every replay are byte-identical.
	body, err := serializeCompanyResponse(company)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusInternalServerError, commons.ErrorResponse[models.CompanyResponse]("failed to enroll company"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
	logResponse(r, http.StatusCreated, start)
}

func (c *CompanyController) getCompanyByCode(w http.ResponseWriter, r *http.Request, code string) {
	start := time.Now()
	logRequest(r, nil)

	company, err := c.queries.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			writeJSON(w, http.StatusNotFound, commons.ErrorResponse[models.CompanyResponse]("Company not found"))
			return
		}
		logError(r, err, logger.Fields{"code": code})
		writeJSON(w, http.StatusInternalServerError, commons.ErrorResponse[models.CompanyResponse]("failed to get company"))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("company fetched successfully", models.NewCompanyResponse(company)))
	logResponse(r, http.StatusOK, start)
}

func (c *CompanyController) listCompanies(w http.ResponseWriter, r *http.Request) {
	c.writeCompanyPage(w, r, c.queries.ListAll)
}

func (c *CompanyController) listEnrolledLastMonth(w http.ResponseWriter, r *http.Request) {
	c.writeCompanyPage(w, r, c.queries.ListEnrolledLastMonth)
}

func (c *CompanyController) listWithTransfersLastMonth(w http.ResponseWriter, r *http.Request) {
	c.writeCompanyPage(w, r, c.queries.ListWithTransfersLastMonth)
}

func (c *CompanyController) writeCompanyPage(w http.ResponseWriter, r *http.Request, query func(ctx context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error)) {
	start := time.Now()
	logRequest(r, nil)

	pageable := parsePageable(r)
	page, err := query(r.Context(), pageable)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusInternalServerError, commons.ErrorResponse[commons.Page[models.CompanyResponse]]("failed to list companies"))
		return
	}

	items := make([]models.CompanyResponse, 0, len(page.Items))
	for _, company := range page.Items {
		items = append(items, models.NewCompanyResponse(company))
	}
	response := commons.Page[models.CompanyResponse]{
		Items: items,
		Page:  page.Page,
		Size:  page.Size,
		Total: page.Total,
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("companies fetched successfully", response))
	logResponse(r, http.StatusOK, start)
}

func parsePageable(r *http.Request) commons.Pageable {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return commons.Pageable{Page: page, Size: size}.Normalize()
}

func enrollmentErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrDuplicateTaxID):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidEnrollmentDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func enrollmentErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateTaxID):
		return domain.ErrDuplicateTaxID.Error()
	case errors.Is(err, domain.ErrInvalidEnrollmentDate):
		return domain.ErrInvalidEnrollmentDate.Error()
	default:
		return "failed to enroll company"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
