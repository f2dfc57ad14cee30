package domain_test

import (
	"errors"
	"testing"

	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/shopspring/decimal"
)

func TestCompanyDebitSubtractsAmount(t *testing.T) {
	company := domain.Company{Balance: decimal.RequireFromString("1000.00")}

	if err := company.Debit(decimal.RequireFromString("200.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !company.Balance.Equal(decimal.RequireFromString("800.00")) {
		t.Fatalf("expected balance 800.00, got %s", company.Balance)
	}
}

func TestCompanyDebitRejectsNonPositiveAmount(t *testing.T) {
	company := domain.Company{Balance: decimal.RequireFromString("100.00")}

	for _, amount := range []string{"0", "-5"} {
		if err := company.Debit(decimal.RequireFromString(amount)); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("amount %s: expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	if !company.Balance.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("balance mutated on rejected debit: %s", company.Balance)
	}
}

func TestCompanyDebitRejectsInsufficientFunds(t *testing.T) {
	company := domain.Company{Balance: decimal.RequireFromString("100.00")}

	if err := company.Debit(decimal.RequireFromString("2000.00")); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if !company.Balance.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("balance mutated on rejected debit: %s", company.Balance)
	}
}

func TestCompanyCreditTreatsUnsetBalanceAsZero(t *testing.T) {
	var company domain.Company

	if err := company.Credit(decimal.RequireFromString("50.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !company.Balance.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("expected balance 50.00, got %s", company.Balance)
	}
}

func TestCompanyCreditRejectsNonPositiveAmount(t *testing.T) {
	company := domain.Company{Balance: decimal.RequireFromString("10.00")}

	if err := company.Credit(decimal.Zero); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestNewTaxIDNormalizesDashes(t *testing.T) {
	taxID, err := domain.NewTaxID("30-11223344-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if taxID.Normalized() != "30112233445" {
		t.Fatalf("expected normalized 30112233445, got %s", taxID.Normalized())
	}
}

func TestNewTaxIDRejectsMalformedValues(t *testing.T) {
	for _, value := range []string{"", "1234", "3011223344X", "301122334455"} {
		if _, err := domain.NewTaxID(value); err == nil {
			t.Fatalf("expected error for tax id %q", value)
		}
	}
}
