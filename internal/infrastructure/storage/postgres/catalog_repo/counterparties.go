package catalog_repo

import (
	"context"

	"robotpacc/internal/domain"
	"robotpacc/internal/domain/customers"
	"robotpacc/internal/domain/suppliers"
	"robotpacc/internal/infrastructure/storage/postgres"
)

var (
	_ suppliers.Repository = (*SupplierRepo)(nil)
	_ customers.Repository = (*CustomerRepo)(nil)
)

// SupplierRepo implements suppliers.Repository.
type SupplierRepo struct {
	*postgres.KeyedRepo[*suppliers.Supplier]
}

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		KeyedRepo: postgres.NewKeyedRepo(txm, postgres.TableSpec{
			Table:         "suppliers",
			KeyColumn:     "phone",
			Entity:        "supplier",
			SearchColumns: []string{"phone", "name", "contact_person"},
			ItemColumn:    "item_code",
			DefaultOrder:  "name ASC",
		}, postgres.ExtractDBColumns[suppliers.Supplier](), func() *suppliers.Supplier { return &suppliers.Supplier{} }),
	}
}

func (r *SupplierRepo) Create(ctx context.Context, s *suppliers.Supplier) error {
	return r.Insert(ctx, s)
}

func (r *SupplierRepo) GetByPhone(ctx context.Context, phone string) (*suppliers.Supplier, error) {
	return r.GetByKey(ctx, phone)
}

func (r *SupplierRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.ExistsByKey(ctx, phone)
}

func (r *SupplierRepo) Delete(ctx context.Context, phone string) error {
	return r.DeleteByKey(ctx, phone)
}

func (r *SupplierRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*suppliers.Supplier], error) {
	return r.KeyedRepo.List(ctx, filter)
}

// CustomerRepo implements customers.Repository.
type CustomerRepo struct {
	*postgres.KeyedRepo[*customers.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		KeyedRepo: postgres.NewKeyedRepo(txm, postgres.TableSpec{
			Table:         "customers",
			KeyColumn:     "phone",
			Entity:        "customer",
			SearchColumns: []string{"phone", "name"},
			DefaultOrder:  "name ASC",
		}, postgres.ExtractDBColumns[customers.Customer](), func() *customers.Customer { return &customers.Customer{} }),
	}
}

func (r *CustomerRepo) Create(ctx context.Context, c *customers.Customer) error {
	return r.Insert(ctx, c)
}

func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (*customers.Customer, error) {
	return r.GetByKey(ctx, phone)
}

func (r *CustomerRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.ExistsByKey(ctx, phone)
}

func (r *CustomerRepo) Delete(ctx context.Context, phone string) error {
	return r.DeleteByKey(ctx, phone)
}

func (r *CustomerRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*customers.Customer], error) {
	return r.KeyedRepo.List(ctx, filter)
}
