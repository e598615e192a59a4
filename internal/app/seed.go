package app

import (
	"context"
	"fmt"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/types"
	"robotpacc/internal/domain/customers"
	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/items"
	"robotpacc/internal/domain/outward"
	"robotpacc/internal/domain/suppliers"
	"robotpacc/pkg/logger"
)

// SeedReport counts what a seed run created and what already existed.
type SeedReport struct {
	Created int
	Skipped int
}

func (r *SeedReport) track(ctx context.Context, what string, err error) error {
	switch {
	case err == nil:
		r.Created++
		return nil
	case apperror.IsConflict(err):
		r.Skipped++
		logger.Debug(ctx, "seed entry already present", "entry", what)
		return nil
	default:
		return fmt.Errorf("seed %s: %w", what, err)
	}
}

func qty(v int64) *int64 { return &v }

func money(s string) *types.Money {
	m := types.MustMoney(s)
	return &m
}

// Seed loads a small demo data set through the services so that every
// movement goes through the ledger. Re-running it skips existing entries.
func Seed(ctx context.Context, s *Services) (SeedReport, error) {
	var rep SeedReport

	demoItems := []*items.Item{
		{Code: "ITEM001", Name: "Servo motor", Description: "12V digital servo", UsedFor: "arm joints",
			PurchaseDate: "01-10-2024", Expiry: "12-31-2030", AvgCost: types.Zero(),
			MinStock: 5, MaxStock: 200, LatestPrice: types.MustMoney("10"), LowestPrice: types.MustMoney("9"), HighestPrice: types.MustMoney("12")},
		{Code: "ITEM002", Name: "Lidar module", Description: "360 degree scanner", UsedFor: "navigation",
			PurchaseDate: "02-01-2024", Expiry: "06-30-2029", AvgCost: types.Zero(),
			MinStock: 2, MaxStock: 20, LatestPrice: types.MustMoney("95"), LowestPrice: types.MustMoney("90"), HighestPrice: types.MustMoney("110")},
		{Code: "ITEM003", Name: "Li-ion cell", Description: "18650 3000mAh", UsedFor: "battery packs",
			PurchaseDate: "03-15-2023", Expiry: "03-15-2024", AvgCost: types.Zero(),
			MinStock: 50, MaxStock: 1000, LatestPrice: types.MustMoney("3.5"), LowestPrice: types.MustMoney("3.2"), HighestPrice: types.MustMoney("4")},
	}
	for _, it := range demoItems {
		if err := rep.track(ctx, "item "+it.Code, s.Items.Create(ctx, it)); err != nil {
			return rep, err
		}
	}

	demoSuppliers := []*suppliers.Supplier{
		{Phone: "123-456-7890", ItemCode: "ITEM001", Name: "Supplier Co.", ContactPerson: "Dana Reyes",
			Email: "sales@supplier.example", Address: "123 Main St"},
		{Phone: "123-456-7891", ItemCode: "ITEM002", Name: "Optics Ltd.", ContactPerson: "Sam Okafor",
			Email: "orders@optics.example", Address: "9 Harbour Rd"},
		{Phone: "123-456-7892", ItemCode: "ITEM003", Name: "Cell Works", ContactPerson: "Lee Park",
			Email: "hello@cells.example", Address: "77 Foundry Ln"},
	}
	for _, sup := range demoSuppliers {
		if err := rep.track(ctx, "supplier "+sup.Phone, s.Suppliers.Create(ctx, sup)); err != nil {
			return rep, err
		}
	}

	if err := rep.track(ctx, "customer 987-654-3210",
		s.Customers.Create(ctx, &customers.Customer{Phone: "987-654-3210", Name: "Customer Inc."})); err != nil {
		return rep, err
	}

	receipts := []inward.Input{
		{ItemCode: "ITEM001", SupplierPhone: "123-456-7890", UUID: "SEED-IN-001", BuildQty: qty(100), ReceivedQty: qty(100),
			AcceptedQty: qty(90), RejectedQty: qty(10), YearOfManufacture: 2024, UnitPrice: money("5")},
		{ItemCode: "ITEM001", SupplierPhone: "123-456-7890", UUID: "SEED-IN-002", BuildQty: qty(30), ReceivedQty: qty(30),
			AcceptedQty: qty(30), RejectedQty: qty(0), YearOfManufacture: 2024, UnitPrice: money("7")},
		{ItemCode: "ITEM002", SupplierPhone: "123-456-7891", UUID: "SEED-IN-003", BuildQty: qty(4), ReceivedQty: qty(4),
			AcceptedQty: qty(4), RejectedQty: qty(0), YearOfManufacture: 2023, UnitPrice: money("90")},
	}
	for _, in := range receipts {
		_, err := s.Inward.Process(ctx, in)
		if err := rep.track(ctx, "inward "+in.UUID, err); err != nil {
			return rep, err
		}
	}

	// Historical invoices keep their numbers; the reference sequence is
	// advanced past them.
	issues := []outward.Input{
		{ItemCode: "ITEM001", CustomerPhone: "987-654-3210", UUID: "SEED-OUT-001", Reference: "OUT-2024-00001",
			IssueQty: qty(50), SaleValue: money("50"), UnitPrice: money("10")},
		{ItemCode: "ITEM002", CustomerPhone: "987-654-3210", UUID: "SEED-OUT-002", Reference: "OUT-2024-00002",
			IssueQty: qty(3), SaleValue: money("3"), UnitPrice: money("120")},
	}
	for _, out := range issues {
		_, err := s.Outward.Process(ctx, out)
		if err := rep.track(ctx, "outward "+out.UUID, err); err != nil {
			return rep, err
		}
	}

	logger.Info(ctx, "seed finished", "created", rep.Created, "skipped", rep.Skipped)
	return rep, nil
}
