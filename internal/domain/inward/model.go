// Package inward records stock receipts from suppliers and keeps the item's
// weighted-average cost current.
package inward

import (
	"context"
	"strings"
	"time"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/id"
	"robotpacc/internal/core/types"
	"robotpacc/internal/domain"
)

// Year of manufacture bounds. Zero means unknown.
const (
	MinManufactureYear   = 1900
	ManufactureYearAhead = 5
)

// Receipt is an immutable inward movement record.
type Receipt struct {
	UUID              string      `db:"uuid" json:"uuid"`
	ItemCode          string      `db:"item_code" json:"itemCode"`
	SupplierPhone     string      `db:"supplier_phone" json:"supplierPhone"`
	BuildQty          int64       `db:"build_qty" json:"buildQty"`
	ReceivedQty       int64       `db:"received_qty" json:"receivedQty"`
	AcceptedQty       int64       `db:"accepted_qty" json:"acceptedQty"`
	RejectedQty       int64       `db:"rejected_qty" json:"rejectedQty"`
	YearOfManufacture int         `db:"year_of_manufacture" json:"yearOfManufacture"`
	UnitPrice         types.Money `db:"unit_price" json:"unitPrice"`
	CreatedAt         time.Time   `db:"created_at" json:"createdAt"`
}

// Input is a receipt request. Pointer fields distinguish absent from zero.
type Input struct {
	ItemCode          string
	SupplierPhone     string
	UUID              string
	BuildQty          *int64
	ReceivedQty       *int64
	AcceptedQty       *int64
	RejectedQty       *int64
	YearOfManufacture int
	UnitPrice         *types.Money
}

// Validate checks presence and ranges. It runs before any storage access.
func (in *Input) Validate(now time.Time) error {
	in.ItemCode = strings.TrimSpace(in.ItemCode)
	in.SupplierPhone = strings.TrimSpace(in.SupplierPhone)
	in.UUID = id.NormalizeKey(in.UUID)

	if in.ItemCode == "" {
		return apperror.NewValidation("item code is required").WithDetail("field", "itemcode")
	}
	if in.SupplierPhone == "" {
		return apperror.NewValidation("supplier phone is required").WithDetail("field", "phone")
	}

	nonNegative := []struct {
		field string
		value *int64
	}{
		{"buildqty", in.BuildQty},
		{"reciveqty", in.ReceivedQty},
		{"acceptqty", in.AcceptedQty},
	}
	for _, q := range nonNegative {
		if q.value == nil {
			return apperror.NewValidation("quantity is required").WithDetail("field", q.field)
		}
		if *q.value < 0 {
			return apperror.NewValidation("quantity must not be negative").
				WithDetail("field", q.field).
				WithDetail("value", *q.value)
		}
	}
	// Rejected quantity is a correction delta and may be negative.
	if in.RejectedQty == nil {
		return apperror.NewValidation("quantity is required").WithDetail("field", "rejectqty")
	}

	if in.UnitPrice == nil {
		return apperror.NewValidation("unit purchase price is required").WithDetail("field", "additionalprice")
	}
	if in.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit purchase price must not be negative").
			WithDetail("field", "additionalprice").
			WithDetail("value", in.UnitPrice.String())
	}

	if err := validateYear(in.YearOfManufacture, now); err != nil {
		return err
	}
	return nil
}

func validateYear(year int, now time.Time) error {
	if year == 0 {
		return nil
	}
	maxYear := now.Year() + ManufactureYearAhead
	if year < MinManufactureYear || year > maxYear {
		return apperror.NewValidation("year of manufacture out of range").
			WithDetail("field", "yearmanufactor").
			WithDetail("value", year).
			WithDetail("min", MinManufactureYear).
			WithDetail("max", maxYear)
	}
	return nil
}

// toReceipt builds the record from a validated input.
func (in *Input) toReceipt(createdAt time.Time) *Receipt {
	key := in.UUID
	if key == "" {
		key = id.NewKey()
	}
	return &Receipt{
		UUID:              key,
		ItemCode:          in.ItemCode,
		SupplierPhone:     in.SupplierPhone,
		BuildQty:          *in.BuildQty,
		ReceivedQty:       *in.ReceivedQty,
		AcceptedQty:       *in.AcceptedQty,
		RejectedQty:       *in.RejectedQty,
		YearOfManufacture: in.YearOfManufacture,
		UnitPrice:         *in.UnitPrice,
		CreatedAt:         createdAt,
	}
}

// Patch lists the receipt fields an administrator may correct.
// Accepted quantity and price feed the ledger and cannot be patched.
type Patch struct {
	BuildQty          *int64
	ReceivedQty       *int64
	RejectedQty       *int64
	YearOfManufacture *int
}

// Result is the outcome of a processed receipt.
type Result struct {
	Receipt         *Receipt    `json:"receipt"`
	PreviousQty     int64       `json:"previousQty"`
	PreviousAvgCost types.Money `json:"previousAvgCost"`
	UpdatedQty      int64       `json:"updatedQty"`
	AvgCost         types.Money `json:"avgCost"`
}

// Repository defines persistence for receipts.
type Repository interface {
	// Create inserts a receipt; a used UUID yields a conflict error.
	Create(ctx context.Context, r *Receipt) error
	GetByUUID(ctx context.Context, uuid string) (*Receipt, error)
	ExistsByUUID(ctx context.Context, uuid string) (bool, error)
	Update(ctx context.Context, r *Receipt) error
	Delete(ctx context.Context, uuid string) error
	// List filters by ItemCode and Counterparty (supplier phone).
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Receipt], error)
}
