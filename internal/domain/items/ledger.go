package items

import (
	"context"
	"strings"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/types"
)

// Ledger holds the authoritative quantity-on-hand and average cost per item.
// It is the only writer of those two columns.
type Ledger struct {
	store LedgerStore
}

// NewLedger creates a ledger over the given store.
func NewLedger(store LedgerStore) *Ledger {
	return &Ledger{store: store}
}

// Get returns the current ledger state of an item.
func (l *Ledger) Get(ctx context.Context, code string) (*Item, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperror.NewValidation("item code is required").WithDetail("field", "itemcode")
	}
	return l.store.GetByCode(ctx, code)
}

// GetForUpdate returns the item and locks it for the rest of the transaction.
// Must be called inside tx.Manager.RunInTransaction.
func (l *Ledger) GetForUpdate(ctx context.Context, code string) (*Item, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperror.NewValidation("item code is required").WithDetail("field", "itemcode")
	}
	return l.store.GetByCodeForUpdate(ctx, code)
}

// SetQuantityAndCost overwrites quantity and average cost.
// Negative quantity is allowed; negative average cost is not.
func (l *Ledger) SetQuantityAndCost(ctx context.Context, code string, qty int64, avgCost types.Money) error {
	if strings.TrimSpace(code) == "" {
		return apperror.NewValidation("item code is required").WithDetail("field", "itemcode")
	}
	if avgCost.IsNegative() {
		return apperror.NewIntegrity("average cost must not be negative").
			WithDetail("itemcode", code).
			WithDetail("avgcost", avgCost.String())
	}
	return l.store.UpdateStock(ctx, code, qty, types.RoundCost(avgCost))
}
