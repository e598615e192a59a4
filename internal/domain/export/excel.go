// Package export renders movement history as spreadsheets.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"robotpacc/internal/domain"
	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/outward"
	"robotpacc/internal/domain/reports"
)

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InwardHeaders is the fixed column order of the receipts sheet.
var InwardHeaders = []string{
	"UUID", "Item Code", "Supplier Phone", "Build Qty", "Received Qty",
	"Accepted Qty", "Rejected Qty", "Year of Manufacture", "Unit Price", "Created At",
}

// OutwardHeaders is the fixed column order of the issues sheet.
var OutwardHeaders = []string{
	"UUID", "Item Code", "Customer Phone", "Reference", "Issue Qty", "Sale Value",
	"Parts Avg Total", "Unit Price", "Profit", "Profit %", "Created At",
}

const timeLayout = "2006-01-02 15:04:05"

func inwardRow(r *inward.Receipt) []any {
	return []any{
		r.UUID, r.ItemCode, r.SupplierPhone, r.BuildQty, r.ReceivedQty,
		r.AcceptedQty, r.RejectedQty, r.YearOfManufacture, r.UnitPrice.InexactFloat64(),
		r.CreatedAt.UTC().Format(timeLayout),
	}
}

func outwardRow(i *outward.Issue) []any {
	return []any{
		i.UUID, i.ItemCode, i.CustomerPhone, i.Reference, i.IssueQty, i.SaleValue.InexactFloat64(),
		i.PartsAvgTotal.InexactFloat64(), i.UnitPrice.InexactFloat64(), i.Profit.InexactFloat64(),
		i.ProfitPercentage.InexactFloat64(), i.CreatedAt.UTC().Format(timeLayout),
	}
}

// WriteInward writes receipts as an xlsx workbook.
func WriteInward(w io.Writer, rows []*inward.Receipt) error {
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, inwardRow(r))
	}
	return writeSheet(w, "Inward", InwardHeaders, data)
}

// WriteOutward writes issues as an xlsx workbook.
func WriteOutward(w io.Writer, rows []*outward.Issue) error {
	data := make([][]any, 0, len(rows))
	for _, i := range rows {
		data = append(data, outwardRow(i))
	}
	return writeSheet(w, "Outward", OutwardHeaders, data)
}

func writeSheet(w io.Writer, sheet string, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, toAny(headers)); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("set row %d: %w", rowNo, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// Service pages through the full movement history of one kind and writes it.
type Service struct {
	inwards  reports.InwardLister
	outwards reports.OutwardLister
}

// NewService creates a new export service.
func NewService(inwards reports.InwardLister, outwards reports.OutwardLister) *Service {
	return &Service{inwards: inwards, outwards: outwards}
}

// Export writes every movement of kind matching filter (ItemCode, Counterparty).
func (s *Service) Export(ctx context.Context, kind reports.MovementKind, filter domain.ListFilter, w io.Writer) error {
	filter.Limit = domain.MaxLimit
	filter.Offset = 0
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}

	switch kind {
	case reports.KindInward:
		var all []*inward.Receipt
		for {
			page, err := s.inwards.List(ctx, filter)
			if err != nil {
				return fmt.Errorf("list inward page: %w", err)
			}
			all = append(all, page.Items...)
			if len(page.Items) < filter.Limit {
				break
			}
			filter.Offset += filter.Limit
		}
		return WriteInward(w, all)
	case reports.KindOutward:
		var all []*outward.Issue
		for {
			page, err := s.outwards.List(ctx, filter)
			if err != nil {
				return fmt.Errorf("list outward page: %w", err)
			}
			all = append(all, page.Items...)
			if len(page.Items) < filter.Limit {
				break
			}
			filter.Offset += filter.Limit
		}
		return WriteOutward(w, all)
	}
	_, err := reports.ParseMovementKind(string(kind))
	return err
}
