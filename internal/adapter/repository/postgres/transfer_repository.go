package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/ledgerline/company-transfer-service/internal/logger"
)

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// Create applies both balance updates and inserts the transfer record in
// a single transaction. A failure after the debit update rolls everything
// back; money never leaves one company without arriving at the other.
func (r *TransferRepository) Create(ctx context.Context, transfer domain.Transfer, debit domain.Company, credit domain.Company) (domain.Transfer, error) {
	logger.Info("transfer repository create", logger.Fields{
		"transferId":          transfer.ID,
		"debitAccountNumber":  transfer.DebitAccountNumber,
		"creditAccountNumber": transfer.CreditAccountNumber,
		"amount":              transfer.Amount.String(),
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("begin transfer tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const updateBalance = `
UPDATE companies
SET balance = $1, updated_at = NOW()
WHERE id = $2`

	for _, company := range []domain.Company{debit, credit} {
		result, err := tx.ExecContext(ctx, updateBalance, company.Balance, company.ID)
		if err != nil {
			logger.Error("transfer repository balance update failed", err, logger.Fields{
				"transferId": transfer.ID,
				"companyId":  company.ID,
			})
			return domain.Transfer{}, fmt.Errorf("update company balance: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return domain.Transfer{}, fmt.Errorf("update company balance: %w", err)
		}
		if affected != 1 {
			return domain.Transfer{}, fmt.Errorf("company %s missing during transfer", company.ID)
		}
	}

	const insert = `
INSERT INTO transfers (
	id,
	amount,
	debit_account_number,
	credit_account_number,
	company_id,
	transfer_date
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at`

	var createdAt time.Time

	if err := tx.QueryRowContext(
		ctx,
		insert,
		transfer.ID,
		transfer.Amount,
		transfer.DebitAccountNumber,
		transfer.CreditAccountNumber,
		transfer.CompanyID,
		transfer.Date,
	).Scan(&createdAt); err != nil {
		logger.Error("transfer repository create failed", err, logger.Fields{
			"transferId": transfer.ID,
		})
		return domain.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Transfer{}, fmt.Errorf("commit transfer tx: %w", err)
	}

	transfer.CreatedAt = createdAt

	return transfer, nil
}
