package models

import (
	"errors"
	"strings"
	"time"

	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/shopspring/decimal"
)

const enrollmentDateLayout = "2006-01-02"

type EnrollCompanyRequest struct {
	TaxID          string `json:"taxId"`
	LegalName      string `json:"legalName"`
	EnrollmentDate string `json:"enrollmentDate"`
	Balance        string `json:"balance"`
}

func (r EnrollCompanyRequest) Validate() error {
	var errs []string

	if _, err := domain.NewTaxID(r.TaxID); err != nil {
		errs = append(errs, err.Error())
	}

	if strings.TrimSpace(r.LegalName) == "" {
		errs = append(errs, "legalName is required")
	}

	if strings.TrimSpace(r.EnrollmentDate) == "" {
		errs = append(errs, "enrollmentDate is required")
	} else if _, err := time.Parse(enrollmentDateLayout, strings.TrimSpace(r.EnrollmentDate)); err != nil {
		errs = append(errs, "enrollmentDate must be formatted as yyyy-mm-dd")
	}

	balance := strings.TrimSpace(r.Balance)
	if balance == "" {
		errs = append(errs, "balance is required")
	} else {
		parsed, err := decimal.NewFromString(balance)
		if err != nil {
			errs = append(errs, "balance must be numeric")
		} else if parsed.LessThan(decimal.Zero) {
			errs = append(errs, "balance cannot be negative")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

// ToDomain builds the candidate company. Validate must have passed.
func (r EnrollCompanyRequest) ToDomain() (domain.Company, error) {
	taxID, err := domain.NewTaxID(r.TaxID)
	if err != nil {
		return domain.Company{}, err
	}

	enrollmentDate, err := time.Parse(enrollmentDateLayout, strings.TrimSpace(r.EnrollmentDate))
	if err != nil {
		return domain.Company{}, err
	}

	balance, err := decimal.NewFromString(strings.TrimSpace(r.Balance))
	if err != nil {
		return domain.Company{}, err
	}

	return domain.Company{
		TaxID:          taxID,
		LegalName:      strings.TrimSpace(r.LegalName),
		EnrollmentDate: enrollmentDate,
		Balance:        balance,
	}, nil
}

type CompanyResponse struct {
	Code           string `json:"code"`
	LegalName      string `json:"legalName"`
	TaxID          string `json:"taxId"`
	EnrollmentDate string `json:"enrollmentDate"`
	Balance        string `json:"balance"`
	AccountNumber  string `json:"accountNumber"`
}

func NewCompanyResponse(company domain.Company) CompanyResponse {
	return CompanyResponse{
		Code:           company.Code,
		LegalName:      company.LegalName,
		TaxID:          company.TaxID.Normalized(),
		EnrollmentDate: company.EnrollmentDate.Format(enrollmentDateLayout),
		Balance:        company.Balance.String(),
		AccountNumber:  company.AccountNumber,
	}
}
