package repo_interfaces

import (
	"context"

	"github.com/ledgerline/company-transfer-service/internal/domain"
)

// TransferRepository persists a completed transfer. Create writes both
// updated balances and the transfer record as one atomic unit.
type TransferRepository interface {
	Create(ctx context.Context, transfer domain.Transfer, debit domain.Company, credit domain.Company) (domain.Transfer, error)
}
