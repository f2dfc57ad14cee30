package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ledgerline/company-transfer-service/internal/adapter/http/controller"
	"github.com/ledgerline/company-transfer-service/internal/adapter/http/router"
	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/shopspring/decimal"
)

// fakeEnrollmentService behaves like the real one for idempotency: the
// first call per key succeeds and captures the serializer output, later
// calls replay it.
type fakeEnrollmentService struct {
	captured map[string]*domain.DuplicateRequestError
	enrolled int
}

func newFakeEnrollmentService() *fakeEnrollmentService {
	return &fakeEnrollmentService{captured: make(map[string]*domain.DuplicateRequestError)}
}

func (s *fakeEnrollmentService) Enroll(_ context.Context, candidate domain.Company, idempotencyKey string, serializer domain.ResponseSerializer) (domain.Company, error) {
	if replay, ok := s.captured[idempotencyKey]; ok {
		return domain.Company{}, replay
	}

	candidate.ID = "id-1"
	candidate.Code = "EMPA0001"
	candidate.AccountNumber = "AAAAAAAAAAAAAAA"
	s.enrolled++

	body, err := serializer(candidate)
	if err != nil {
		return domain.Company{}, err
	}
	s.captured[idempotencyKey] = &domain.DuplicateRequestError{
		Key:            idempotencyKey,
		ResponseBody:   body,
		ResponseStatus: http.StatusCreated,
	}

	return candidate, nil
}

type fakeQueryService struct {
	companies map[string]domain.Company
}

func (s *fakeQueryService) GetByCode(_ context.Context, code string) (domain.Company, error) {
	company, ok := s.companies[code]
	if !ok {
		return domain.Company{}, domain.ErrCompanyNotFound
	}
	return company, nil
}

func (s *fakeQueryService) ListAll(_ context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	items := make([]domain.Company, 0, len(s.companies))
	for _, company := range s.companies {
		items = append(items, company)
	}
	return commons.Page[domain.Company]{Items: items, Page: pageable.Page, Size: pageable.Size, Total: int64(len(items))}, nil
}

func (s *fakeQueryService) ListEnrolledLastMonth(ctx context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	return s.ListAll(ctx, pageable)
}

func (s *fakeQueryService) ListWithTransfersLastMonth(ctx context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	return s.ListAll(ctx, pageable)
}

func newCompanyMux(enrollment *fakeEnrollmentService, queries *fakeQueryService) *http.ServeMux {
	if queries == nil {
		queries = &fakeQueryService{companies: map[string]domain.Company{}}
	}
	companyController := controller.NewCompanyController(enrollment, queries)
	return router.New(companyController, nil, nil)
}

func enrollRequest(idempotencyKey string) *http.Request {
	body := `{"taxId":"30112233445","legalName":"Acme Logistics SA","enrollmentDate":"2025-06-15","balance":"10000.00"}`
	req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(body))
	req.Header.Set("Idempotency-Key", idempotencyKey)
	return req
}

func TestEnrollCompanyReturnsCreated(t *testing.T) {
	mux := newCompanyMux(newFakeEnrollmentService(), nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, enrollRequest("key-1"))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"EMPA0001"`) {
		t.Fatalf("response does not contain the company code: %s", rr.Body.String())
	}
}

func TestEnrollCompanyReplayIsByteIdentical(t *testing.T) {
	svc := newFakeEnrollmentService()
	mux := newCompanyMux(svc, nil)

	first := httptest.NewRecorder()
	mux.ServeHTTP(first, enrollRequest("key-1"))
	if first.Code != http.StatusCreated {
		t.Fatalf("first request failed: %d %s", first.Code, first.Body.String())
	}

	replay := httptest.NewRecorder()
	mux.ServeHTTP(replay, enrollRequest("key-1"))

	if replay.Code != http.StatusCreated {
		t.Fatalf("replay status %d differs from captured 201", replay.Code)
	}
	if replay.Header().Get("X-Idempotency-Hit") != "true" {
		t.Fatal("replay must carry the X-Idempotency-Hit header")
	}
	if !bytes.Equal(first.Body.Bytes(), replay.Body.Bytes()) {
		t.Fatalf("replay body differs from first response:\nfirst:  %s\nreplay: %s", first.Body.String(), replay.Body.String())
	}
	if svc.enrolled != 1 {
		t.Fatalf("replay must not enroll again, got %d enrollments", svc.enrolled)
	}
}

func TestEnrollCompanyRequiresIdempotencyKey(t *testing.T) {
	mux := newCompanyMux(newFakeEnrollmentService(), nil)

	req := enrollRequest("")
	req.Header.Del("Idempotency-Key")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestEnrollCompanyRejectsInvalidBody(t *testing.T) {
	mux := newCompanyMux(newFakeEnrollmentService(), nil)

	req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(`{"taxId":"123"}`))
	req.Header.Set("Idempotency-Key", "key-1")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestGetCompanyByCode(t *testing.T) {
	queries := &fakeQueryService{companies: map[string]domain.Company{
		"EMPA0001": {
			ID:             "id-1",
			Code:           "EMPA0001",
			LegalName:      "Acme Logistics SA",
			EnrollmentDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			Balance:        decimal.RequireFromString("10000.00"),
			AccountNumber:  "AAAAAAAAAAAAAAA",
		},
	}}
	mux := newCompanyMux(newFakeEnrollmentService(), queries)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/companies/EMPA0001", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	missing := httptest.NewRecorder()
	mux.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/companies/UNKNOWN1", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, missing.Code)
	}
}

func TestListCompaniesReturnsPage(t *testing.T) {
	queries := &fakeQueryService{companies: map[string]domain.Company{
		"EMPA0001": {Code: "EMPA0001", LegalName: "Acme Logistics SA"},
	}}
	mux := newCompanyMux(newFakeEnrollmentService(), queries)

	for _, path := range []string{
		"/companies?page=0&size=10",
		"/companies/reports/enrolled-last-month",
		"/companies/reports/transfers-last-month",
	} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, rr.Code)
		}

		var envelope struct {
			Success bool `json:"success"`
			Data    *struct {
				Items []json.RawMessage `json:"items"`
				Total int64             `json:"total"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("%s: invalid response: %v", path, err)
		}
		if !envelope.Success || envelope.Data == nil || len(envelope.Data.Items) != 1 {
			t.Fatalf("%s: unexpected page payload: %s", path, rr.Body.String())
		}
	}
}
