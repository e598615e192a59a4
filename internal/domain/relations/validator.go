// Package relations checks the references of a proposed stock movement
// before any ledger mutation happens.
package relations

import (
	"context"
	"fmt"
	"strings"

	"robotpacc/internal/core/apperror"
)

// ItemLookup confirms that an item code exists.
type ItemLookup interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// CounterpartyLookup confirms that a supplier or customer phone exists.
type CounterpartyLookup interface {
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}

// MovementLookup confirms whether a movement key is already used.
type MovementLookup interface {
	ExistsByUUID(ctx context.Context, uuid string) (bool, error)
}

// Validator checks item, counterparty and movement key in that order and
// stops at the first violation. It never mutates anything.
type Validator struct {
	items     ItemLookup
	suppliers CounterpartyLookup
	inwards   MovementLookup
	outwards  MovementLookup
}

// NewValidator creates a relationship validator.
func NewValidator(items ItemLookup, suppliers CounterpartyLookup, inwards, outwards MovementLookup) *Validator {
	return &Validator{
		items:     items,
		suppliers: suppliers,
		inwards:   inwards,
		outwards:  outwards,
	}
}

// CheckInward validates the references of a receipt.
func (v *Validator) CheckInward(ctx context.Context, itemCode, supplierPhone, uuid string) error {
	if err := v.checkItem(ctx, itemCode); err != nil {
		return err
	}

	ok, err := v.suppliers.ExistsByPhone(ctx, supplierPhone)
	if err != nil {
		return fmt.Errorf("check supplier: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("supplier", supplierPhone)
	}

	return checkUnused(ctx, v.inwards, "inward movement", uuid)
}

// CheckOutward validates the references of an issue.
// The customer phone is a weak reference and is not checked.
func (v *Validator) CheckOutward(ctx context.Context, itemCode, uuid string) error {
	if err := v.checkItem(ctx, itemCode); err != nil {
		return err
	}
	return checkUnused(ctx, v.outwards, "outward movement", uuid)
}

func (v *Validator) checkItem(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return apperror.NewValidation("item code is required").WithDetail("field", "itemcode")
	}
	ok, err := v.items.ExistsByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("item", code)
	}
	return nil
}

func checkUnused(ctx context.Context, lookup MovementLookup, entity, uuid string) error {
	used, err := lookup.ExistsByUUID(ctx, uuid)
	if err != nil {
		return fmt.Errorf("check %s uuid: %w", entity, err)
	}
	if used {
		return apperror.NewConflict(entity + " uuid already used").
			WithDetail("uuid", uuid)
	}
	return nil
}
