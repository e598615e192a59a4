// Package outward records stock issues to customers and the profit they realise.
package outward

import (
	"context"
	"strings"
	"time"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/id"
	"robotpacc/internal/core/types"
	"robotpacc/internal/domain"
)

// Issue is an immutable outward movement record. Profit fields are computed
// once, when the issue is recorded.
type Issue struct {
	UUID             string      `db:"uuid" json:"uuid"`
	ItemCode         string      `db:"item_code" json:"itemCode"`
	CustomerPhone    string      `db:"customer_phone" json:"customerPhone"`
	Reference        string      `db:"reference" json:"reference"`
	IssueQty         int64       `db:"issue_qty" json:"issueQty"`
	SaleValue        types.Money `db:"sale_value" json:"saleValue"`
	PartsAvgTotal    types.Money `db:"parts_avg_total" json:"partsAvgTotal"`
	UnitPrice        types.Money `db:"unit_price" json:"unitPrice"`
	Profit           types.Money `db:"profit" json:"profit"`
	ProfitPercentage types.Money `db:"profit_percentage" json:"profitPercentage"`
	CreatedAt        time.Time   `db:"created_at" json:"createdAt"`
}

// Input is an issue request. Pointer fields distinguish absent from zero.
type Input struct {
	ItemCode      string
	CustomerPhone string
	UUID          string
	Reference     string
	IssueQty      *int64
	SaleValue     *types.Money
	UnitPrice     *types.Money
	PartsAvgTotal types.Money
}

// Validate checks presence and strict positivity of the numeric inputs.
func (in *Input) Validate() error {
	in.ItemCode = strings.TrimSpace(in.ItemCode)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.UUID = id.NormalizeKey(in.UUID)

	if in.ItemCode == "" {
		return apperror.NewValidation("item code is required").WithDetail("field", "itemcode")
	}

	if in.IssueQty == nil {
		return apperror.NewValidation("issue quantity is required").WithDetail("field", "issueqty")
	}
	if *in.IssueQty <= 0 {
		return apperror.NewValidation("issue quantity must be positive").
			WithDetail("field", "issueqty").
			WithDetail("value", *in.IssueQty)
	}

	money := []struct {
		field string
		value *types.Money
	}{
		{"salevalue", in.SaleValue},
		{"unitprice", in.UnitPrice},
	}
	for _, m := range money {
		if m.value == nil {
			return apperror.NewValidation("missing required field").WithDetail("field", m.field)
		}
		if !m.value.IsPositive() {
			return apperror.NewValidation("value must be positive").
				WithDetail("field", m.field).
				WithDetail("value", m.value.String())
		}
	}
	return nil
}

func (in *Input) toIssue(createdAt time.Time) *Issue {
	key := in.UUID
	if key == "" {
		key = id.NewKey()
	}
	return &Issue{
		UUID:          key,
		ItemCode:      in.ItemCode,
		CustomerPhone: in.CustomerPhone,
		Reference:     in.Reference,
		IssueQty:      *in.IssueQty,
		SaleValue:     *in.SaleValue,
		PartsAvgTotal: in.PartsAvgTotal,
		UnitPrice:     *in.UnitPrice,
		CreatedAt:     createdAt,
	}
}

// Patch lists the issue fields an administrator may correct.
type Patch struct {
	Reference     *string
	PartsAvgTotal *types.Money
}

// Result is the outcome of a processed issue.
type Result struct {
	Issue            *Issue      `json:"issue"`
	Profit           types.Money `json:"profit"`
	ProfitPercentage types.Money `json:"profitPercentage"`
	PreviousQty      int64       `json:"previousQty"`
	UpdatedQty       int64       `json:"updatedQty"`
}

// Repository defines persistence for issues.
type Repository interface {
	// Create inserts an issue; a used UUID yields a conflict error.
	Create(ctx context.Context, i *Issue) error
	GetByUUID(ctx context.Context, uuid string) (*Issue, error)
	ExistsByUUID(ctx context.Context, uuid string) (bool, error)
	Update(ctx context.Context, i *Issue) error
	Delete(ctx context.Context, uuid string) error
	// List filters by ItemCode and Counterparty (customer phone).
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Issue], error)
}
