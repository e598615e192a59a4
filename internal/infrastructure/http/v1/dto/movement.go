package dto

import (
	"time"

	"robotpacc/internal/core/types"
	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/outward"
)

// --- Inward ---

// CreateInwardRequest is a stock receipt. Quantities are pointers so that an
// explicit zero is distinguishable from a missing field.
type CreateInwardRequest struct {
	ItemCode          string       `json:"itemcode" binding:"required"`
	Phone             string       `json:"phone" binding:"required"`
	UUID              string       `json:"uuidin"`
	BuildQty          *int64       `json:"buildqty" binding:"required"`
	ReceivedQty       *int64       `json:"reciveqty" binding:"required"`
	AcceptedQty       *int64       `json:"acceptqty" binding:"required"`
	RejectedQty       *int64       `json:"rejectqty" binding:"required"`
	YearOfManufacture int          `json:"yearmanufactor"`
	AdditionalPrice   *types.Money `json:"additionalprice" binding:"required"`
}

// ToInput converts DTO to processor input.
func (r *CreateInwardRequest) ToInput() inward.Input {
	return inward.Input{
		ItemCode:          r.ItemCode,
		SupplierPhone:     r.Phone,
		UUID:              r.UUID,
		BuildQty:          r.BuildQty,
		ReceivedQty:       r.ReceivedQty,
		AcceptedQty:       r.AcceptedQty,
		RejectedQty:       r.RejectedQty,
		YearOfManufacture: r.YearOfManufacture,
		UnitPrice:         r.AdditionalPrice,
	}
}

// UpdateInwardRequest corrects descriptive receipt fields.
type UpdateInwardRequest struct {
	BuildQty          *int64 `json:"buildqty" binding:"omitempty,min=0"`
	ReceivedQty       *int64 `json:"reciveqty" binding:"omitempty,min=0"`
	RejectedQty       *int64 `json:"rejectqty"`
	YearOfManufacture *int   `json:"yearmanufactor"`
}

// ToPatch converts DTO to a receipt patch.
func (r *UpdateInwardRequest) ToPatch() inward.Patch {
	return inward.Patch{
		BuildQty:          r.BuildQty,
		ReceivedQty:       r.ReceivedQty,
		RejectedQty:       r.RejectedQty,
		YearOfManufacture: r.YearOfManufacture,
	}
}

// InwardResponse is the wire form of a receipt.
type InwardResponse struct {
	UUID              string      `json:"uuidin"`
	ItemCode          string      `json:"itemcode"`
	Phone             string      `json:"phone"`
	BuildQty          int64       `json:"buildqty"`
	ReceivedQty       int64       `json:"reciveqty"`
	AcceptedQty       int64       `json:"acceptqty"`
	RejectedQty       int64       `json:"rejectqty"`
	YearOfManufacture int         `json:"yearmanufactor"`
	AdditionalPrice   types.Money `json:"additionalprice"`
	CreatedAt         time.Time   `json:"createdAt"`
}

// FromReceipt converts domain entity to DTO.
func FromReceipt(r *inward.Receipt) InwardResponse {
	return InwardResponse{
		UUID:              r.UUID,
		ItemCode:          r.ItemCode,
		Phone:             r.SupplierPhone,
		BuildQty:          r.BuildQty,
		ReceivedQty:       r.ReceivedQty,
		AcceptedQty:       r.AcceptedQty,
		RejectedQty:       r.RejectedQty,
		YearOfManufacture: r.YearOfManufacture,
		AdditionalPrice:   r.UnitPrice,
		CreatedAt:         r.CreatedAt,
	}
}

// InwardResultResponse is returned when a receipt is recorded.
type InwardResultResponse struct {
	Message    string      `json:"message"`
	UUID       string      `json:"uuid"`
	UpdatedQty int64       `json:"updatedQty"`
	AvgCost    types.Money `json:"avgCost"`
}

// FromInwardResult converts a processor result to DTO.
func FromInwardResult(res *inward.Result) InwardResultResponse {
	return InwardResultResponse{
		Message:    "Stock received successfully",
		UUID:       res.Receipt.UUID,
		UpdatedQty: res.UpdatedQty,
		AvgCost:    res.AvgCost,
	}
}

// --- Outward ---

// CreateOutwardRequest is a stock issue.
type CreateOutwardRequest struct {
	ItemCode    string       `json:"itemcode" binding:"required"`
	Phone       string       `json:"phone"`
	UUID        string       `json:"uuidout"`
	Reference   string       `json:"reference"`
	Referece    string       `json:"referece"`
	IssueQty    *int64       `json:"issueqty" binding:"required"`
	SaleValue   *types.Money `json:"salevalue" binding:"required"`
	PartsAvgTot types.Money  `json:"partsavgtot"`
	UnitPrice   *types.Money `json:"unitprice" binding:"required"`
}

// ToInput converts DTO to processor input. The legacy "referece" spelling is
// accepted when "reference" is absent.
func (r *CreateOutwardRequest) ToInput() outward.Input {
	ref := r.Reference
	if ref == "" {
		ref = r.Referece
	}
	return outward.Input{
		ItemCode:      r.ItemCode,
		CustomerPhone: r.Phone,
		UUID:          r.UUID,
		Reference:     ref,
		IssueQty:      r.IssueQty,
		SaleValue:     r.SaleValue,
		UnitPrice:     r.UnitPrice,
		PartsAvgTotal: r.PartsAvgTot,
	}
}

// UpdateOutwardRequest corrects descriptive issue fields.
type UpdateOutwardRequest struct {
	Reference   *string      `json:"reference"`
	PartsAvgTot *types.Money `json:"partsavgtot"`
}

// ToPatch converts DTO to an issue patch.
func (r *UpdateOutwardRequest) ToPatch() outward.Patch {
	return outward.Patch{Reference: r.Reference, PartsAvgTotal: r.PartsAvgTot}
}

// OutwardResponse is the wire form of an issue.
type OutwardResponse struct {
	UUID             string      `json:"uuidout"`
	ItemCode         string      `json:"itemcode"`
	Phone            string      `json:"phone"`
	Reference        string      `json:"reference"`
	IssueQty         int64       `json:"issueqty"`
	SaleValue        types.Money `json:"salevalue"`
	PartsAvgTot      types.Money `json:"partsavgtot"`
	UnitPrice        types.Money `json:"unitprice"`
	Profits          types.Money `json:"profits"`
	ProfitPercentage types.Money `json:"profitpercentage"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// FromIssue converts domain entity to DTO.
func FromIssue(i *outward.Issue) OutwardResponse {
	return OutwardResponse{
		UUID:             i.UUID,
		ItemCode:         i.ItemCode,
		Phone:            i.CustomerPhone,
		Reference:        i.Reference,
		IssueQty:         i.IssueQty,
		SaleValue:        i.SaleValue,
		PartsAvgTot:      i.PartsAvgTotal,
		UnitPrice:        i.UnitPrice,
		Profits:          i.Profit,
		ProfitPercentage: i.ProfitPercentage,
		CreatedAt:        i.CreatedAt,
	}
}

// OutwardResultResponse is returned when an issue is recorded.
type OutwardResultResponse struct {
	Message          string      `json:"message"`
	UUID             string      `json:"uuid"`
	Profit           types.Money `json:"profit"`
	ProfitPercentage types.Money `json:"profitpercentage"`
	UpdatedQty       int64       `json:"updatedQty"`
}

// FromOutwardResult converts a processor result to DTO.
func FromOutwardResult(res *outward.Result) OutwardResultResponse {
	return OutwardResultResponse{
		Message:          "Stock issued successfully",
		UUID:             res.Issue.UUID,
		Profit:           res.Profit,
		ProfitPercentage: res.ProfitPercentage,
		UpdatedQty:       res.UpdatedQty,
	}
}
