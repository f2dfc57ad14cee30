package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
)

type fakeCompanyRepo struct {
	companies map[string]domain.Company // keyed by id
	saveErr   error
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]domain.Company)}
}

func (r *fakeCompanyRepo) Save(_ context.Context, company domain.Company) (domain.Company, error) {
	if r.saveErr != nil {
		return domain.Company{}, r.saveErr
	}
	if company.CreatedAt.IsZero() {
		company.CreatedAt = time.Now()
	}
	company.UpdatedAt = time.Now()
	r.companies[company.ID] = company
	return company, nil
}

func (r *fakeCompanyRepo) FindByCode(_ context.Context, code string) (domain.Company, error) {
	for _, company := range r.companies {
		if company.Code == code {
			return company, nil
		}
	}
	return domain.Company{}, commons.ErrRecordNotFound
}

func (r *fakeCompanyRepo) FindByTaxID(_ context.Context, taxID domain.TaxID) (domain.Company, error) {
	for _, company := range r.companies {
		if company.TaxID.Normalized() == taxID.Normalized() {
			return company, nil
		}
	}
	return domain.Company{}, commons.ErrRecordNotFound
}

func (r *fakeCompanyRepo) FindByAccountNumber(_ context.Context, accountNumber string) (domain.Company, error) {
	for _, company := range r.companies {
		if company.AccountNumber == accountNumber {
			return company, nil
		}
	}
	return domain.Company{}, commons.ErrRecordNotFound
}

func (r *fakeCompanyRepo) FindAll(_ context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	items := make([]domain.Company, 0, len(r.companies))
	for _, company := range r.companies {
		items = append(items, company)
	}
	return commons.Page[domain.Company]{Items: items, Page: pageable.Page, Size: pageable.Size, Total: int64(len(items))}, nil
}

func (r *fakeCompanyRepo) FindEnrolledSince(_ context.Context, since time.Time, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	items := make([]domain.Company, 0)
	for _, company := range r.companies {
		if !company.EnrollmentDate.Before(since) {
			items = append(items, company)
		}
	}
	return commons.Page[domain.Company]{Items: items, Page: pageable.Page, Size: pageable.Size, Total: int64(len(items))}, nil
}

func (r *fakeCompanyRepo) FindWithTransfersSince(_ context.Context, _ time.Time, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	return commons.Page[domain.Company]{Page: pageable.Page, Size: pageable.Size}, nil
}

// fakeTransferRepo mirrors the real repository's contract: balances and
// the transfer record land together, or nothing lands.
type fakeTransferRepo struct {
	companies *fakeCompanyRepo
	transfers []domain.Transfer
	createErr error
}

func (r *fakeTransferRepo) Create(_ context.Context, transfer domain.Transfer, debit domain.Company, credit domain.Company) (domain.Transfer, error) {
	if r.createErr != nil {
		return domain.Transfer{}, r.createErr
	}
	if r.companies != nil {
		r.companies.companies[debit.ID] = debit
		r.companies.companies[credit.ID] = credit
	}
	transfer.CreatedAt = time.Now()
	r.transfers = append(r.transfers, transfer)
	return transfer, nil
}

type failingIdempotencyRepo struct{}

func (failingIdempotencyRepo) FindByKey(context.Context, string) (domain.IdempotencyRecord, error) {
	return domain.IdempotencyRecord{}, commons.ErrRecordNotFound
}

func (failingIdempotencyRepo) Save(context.Context, domain.IdempotencyRecord) error {
	return errors.New("idempotency store unavailable")
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func mustTaxID(value string) domain.TaxID {
	taxID, err := domain.NewTaxID(value)
	if err != nil {
		panic(err)
	}
	return taxID
}
