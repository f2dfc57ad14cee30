package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/ledgerline/company-transfer-service/internal/logger"
	"github.com/lib/pq"
)

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, code, tax_id, legal_name, enrollment_date, balance, account_number, created_at, updated_at`

// Save inserts or updates a company. The unique indexes on tax_id, code
// and account_number are the backstop against racing enrollments; a
// violation on tax_id surfaces as domain.ErrDuplicateTaxID.
func (r *CompanyRepository) Save(ctx context.Context, company domain.Company) (domain.Company, error) {
	logger.Info("company repository save", logger.Fields{
		"companyId":     company.ID,
		"code":          company.Code,
		"accountNumber": company.AccountNumber,
	})

	const query = `
INSERT INTO companies (
	id,
	code,
	tax_id,
	legal_name,
	enrollment_date,
	balance,
	account_number
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE
SET balance = EXCLUDED.balance,
    legal_name = EXCLUDED.legal_name,
    updated_at = NOW()
RETURNING created_at, updated_at`

	var createdAt time.Time
	var updatedAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		company.ID,
		company.Code,
		company.TaxID.Normalized(),
		company.LegalName,
		company.EnrollmentDate,
		company.Balance,
		company.AccountNumber,
	).Scan(&createdAt, &updatedAt); err != nil {
		logger.Error("company repository save failed", err, logger.Fields{
			"companyId": company.ID,
		})
		return domain.Company{}, mapSaveError(err)
	}

	company.CreatedAt = createdAt
	company.UpdatedAt = updatedAt

	return company, nil
}

func (r *CompanyRepository) FindByCode(ctx context.Context, code string) (domain.Company, error) {
	const query = `
SELECT ` + companyColumns + `
FROM companies
WHERE code = $1`

	return r.findOne(ctx, query, code)
}

func (r *CompanyRepository) FindByTaxID(ctx context.Context, taxID domain.TaxID) (domain.Company, error) {
	const query = `
SELECT ` + companyColumns + `
FROM companies
WHERE tax_id = $1`

	return r.findOne(ctx, query, taxID.Normalized())
}

func (r *CompanyRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (domain.Company, error) {
	const query = `
SELECT ` + companyColumns + `
FROM companies
WHERE account_number = $1`

	return r.findOne(ctx, query, accountNumber)
}

func (r *CompanyRepository) FindAll(ctx context.Context, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	const query = `
SELECT ` + companyColumns + `
FROM companies
ORDER BY legal_name ASC
LIMIT $1 OFFSET $2`
	const countQuery = `SELECT COUNT(1) FROM companies`

	return r.findPage(ctx, pageable, query, countQuery, nil)
}

func (r *CompanyRepository) FindEnrolledSince(ctx context.Context, since time.Time, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	const query = `
SELECT ` + companyColumns + `
FROM companies
WHERE enrollment_date >= $3
ORDER BY enrollment_date DESC
LIMIT $1 OFFSET $2`
	const countQuery = `SELECT COUNT(1) FROM companies WHERE enrollment_date >= $1`

	return r.findPage(ctx, pageable, query, countQuery, []any{since})
}

func (r *CompanyRepository) FindWithTransfersSince(ctx context.Context, since time.Time, pageable commons.Pageable) (commons.Page[domain.Company], error) {
	const query = `
SELECT DISTINCT c.id, c.code, c.tax_id, c.legal_name, c.enrollment_date, c.balance, c.account_number, c.created_at, c.updated_at
FROM companies c
JOIN transfers t ON t.company_id = c.id
WHERE t.transfer_date >= $3
ORDER BY c.legal_name ASC
LIMIT $1 OFFSET $2`
	const countQuery = `
SELECT COUNT(DISTINCT c.id)
FROM companies c
JOIN transfers t ON t.company_id = c.id
WHERE t.transfer_date >= $1`

	return r.findPage(ctx, pageable, query, countQuery, []any{since})
}

func (r *CompanyRepository) findOne(ctx context.Context, query string, arg any) (domain.Company, error) {
	company, err := scanCompany(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Company{}, commons.ErrRecordNotFound
		}
		return domain.Company{}, fmt.Errorf("get company: %w", err)
	}

	return company, nil
}

func (r *CompanyRepository) findPage(ctx context.Context, pageable commons.Pageable, query, countQuery string, extraArgs []any) (commons.Page[domain.Company], error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, extraArgs...).Scan(&total); err != nil {
		logger.Error("company repository count failed", err, nil)
		return commons.Page[domain.Company]{}, fmt.Errorf("count companies: %w", err)
	}

	args := append([]any{pageable.Size, pageable.Offset()}, extraArgs...)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("company repository page query failed", err, nil)
		return commons.Page[domain.Company]{}, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Company, 0, pageable.Size)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return commons.Page[domain.Company]{}, fmt.Errorf("scan company row: %w", err)
		}
		items = append(items, company)
	}
	if err := rows.Err(); err != nil {
		return commons.Page[domain.Company]{}, fmt.Errorf("iterate company rows: %w", err)
	}

	return commons.Page[domain.Company]{
		Items: items,
		Page:  pageable.Page,
		Size:  pageable.Size,
		Total: total,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (domain.Company, error) {
	var company domain.Company
	var taxID string

	if err := row.Scan(
		&company.ID,
		&company.Code,
		&taxID,
		&company.LegalName,
		&company.EnrollmentDate,
		&company.Balance,
		&company.AccountNumber,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return domain.Company{}, err
	}

	parsed, err := domain.NewTaxID(taxID)
	if err != nil {
		return domain.Company{}, fmt.Errorf("stored tax id is malformed: %w", err)
	}
	company.TaxID = parsed

	return company, nil
}

// mapSaveError translates unique violations into domain errors. A
// collision on a generated code or account number must stay
// distinguishable from a duplicate tax id.
func mapSaveError(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return fmt.Errorf("save company: %w", err)
	}

	switch constraint {
	case "companies_tax_id_key":
		return domain.ErrDuplicateTaxID
	case "companies_code_key", "companies_account_number_key":
		return fmt.Errorf("%w: %s", domain.ErrIdentifierCollision, constraint)
	}

	return fmt.Errorf("save company: %w", err)
}

func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == "23505" {
		return pqErr.Constraint, true
	}
	return "", false
}
