package dto

import (
	"time"

	"robotpacc/internal/core/types"
	"robotpacc/internal/domain/audit"
	"robotpacc/internal/domain/items"
)

// CreateItemRequest is the request body for registering an item.
type CreateItemRequest struct {
	ItemCode     string       `json:"itemcode" binding:"required"`
	ItemName     string       `json:"itemname" binding:"required"`
	ItemDesc     string       `json:"itemdesc"`
	ItemUsed     string       `json:"itemused"`
	Qty          *int64       `json:"qty" binding:"required,min=0"`
	PurchaseDate string       `json:"dtpur" binding:"required"`
	Expiry       string       `json:"expiry" binding:"required"`
	AvgCost      *types.Money `json:"avgcost" binding:"required"`
	MinStock     int64        `json:"minstock" binding:"min=0"`
	MaxStock     int64        `json:"maxstock" binding:"min=0"`
	LatestPrice  types.Money  `json:"latestprice"`
	Lowest       types.Money  `json:"lowest"`
	Highest      types.Money  `json:"highest"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateItemRequest) ToEntity() *items.Item {
	return &items.Item{
		Code:         r.ItemCode,
		Name:         r.ItemName,
		Description:  r.ItemDesc,
		UsedFor:      r.ItemUsed,
		Quantity:     *r.Qty,
		PurchaseDate: r.PurchaseDate,
		Expiry:       r.Expiry,
		AvgCost:      *r.AvgCost,
		MinStock:     r.MinStock,
		MaxStock:     r.MaxStock,
		LatestPrice:  r.LatestPrice,
		LowestPrice:  r.Lowest,
		HighestPrice: r.Highest,
	}
}

// UpdateItemRequest patches descriptive item fields. Absent fields are kept.
type UpdateItemRequest struct {
	ItemName     *string      `json:"itemname"`
	ItemDesc     *string      `json:"itemdesc"`
	ItemUsed     *string      `json:"itemused"`
	PurchaseDate *string      `json:"dtpur"`
	Expiry       *string      `json:"expiry"`
	MinStock     *int64       `json:"minstock" binding:"omitempty,min=0"`
	MaxStock     *int64       `json:"maxstock" binding:"omitempty,min=0"`
	LatestPrice  *types.Money `json:"latestprice"`
	Lowest       *types.Money `json:"lowest"`
	Highest      *types.Money `json:"highest"`
}

// Apply copies the present fields onto item.
func (r *UpdateItemRequest) Apply(item *items.Item) {
	if r.ItemName != nil {
		item.Name = *r.ItemName
	}
	if r.ItemDesc != nil {
		item.Description = *r.ItemDesc
	}
	if r.ItemUsed != nil {
		item.UsedFor = *r.ItemUsed
	}
	if r.PurchaseDate != nil {
		item.PurchaseDate = *r.PurchaseDate
	}
	if r.Expiry != nil {
		item.Expiry = *r.Expiry
	}
	if r.MinStock != nil {
		item.MinStock = *r.MinStock
	}
	if r.MaxStock != nil {
		item.MaxStock = *r.MaxStock
	}
	if r.LatestPrice != nil {
		item.LatestPrice = *r.LatestPrice
	}
	if r.Lowest != nil {
		item.LowestPrice = *r.Lowest
	}
	if r.Highest != nil {
		item.HighestPrice = *r.Highest
	}
}

// OverwriteStockRequest sets quantity and average cost directly.
type OverwriteStockRequest struct {
	Qty     *int64       `json:"qty" binding:"required"`
	AvgCost *types.Money `json:"avgcost" binding:"required"`
}

// ItemResponse is the wire form of an item.
type ItemResponse struct {
	ItemCode     string      `json:"itemcode"`
	ItemName     string      `json:"itemname"`
	ItemDesc     string      `json:"itemdesc"`
	ItemUsed     string      `json:"itemused"`
	Qty          int64       `json:"qty"`
	PurchaseDate string      `json:"dtpur"`
	Expiry       string      `json:"expiry"`
	AvgCost      types.Money `json:"avgcost"`
	MinStock     int64       `json:"minstock"`
	MaxStock     int64       `json:"maxstock"`
	LatestPrice  types.Money `json:"latestprice"`
	Lowest       types.Money `json:"lowest"`
	Highest      types.Money `json:"highest"`
	LowStock     bool        `json:"lowStock"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// FromItem converts domain entity to DTO.
func FromItem(i *items.Item) ItemResponse {
	return ItemResponse{
		ItemCode:     i.Code,
		ItemName:     i.Name,
		ItemDesc:     i.Description,
		ItemUsed:     i.UsedFor,
		Qty:          i.Quantity,
		PurchaseDate: i.PurchaseDate,
		Expiry:       i.Expiry,
		AvgCost:      i.AvgCost,
		MinStock:     i.MinStock,
		MaxStock:     i.MaxStock,
		LatestPrice:  i.LatestPrice,
		Lowest:       i.LowestPrice,
		Highest:      i.HighestPrice,
		LowStock:     i.IsLowStock(),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// FromItems converts a slice of items.
func FromItems(list []*items.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(list))
	for _, i := range list {
		out = append(out, FromItem(i))
	}
	return out
}

// HistoryResponse is the audit trail of one item.
type HistoryResponse struct {
	ItemCode string        `json:"itemcode"`
	Entries  []audit.Entry `json:"entries"`
}
