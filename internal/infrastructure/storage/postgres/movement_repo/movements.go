// Package movement_repo provides PostgreSQL repositories for inward and
// outward movement records.
package movement_repo

import (
	"context"

	"robotpacc/internal/domain"
	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/outward"
	"robotpacc/internal/infrastructure/storage/postgres"
)

var (
	_ inward.Repository  = (*InwardRepo)(nil)
	_ outward.Repository = (*OutwardRepo)(nil)
)

// movementImmutable are never rewritten by administrative updates.
var movementImmutable = []string{"uuid", "item_code", "created_at"}

// InwardRepo implements inward.Repository.
type InwardRepo struct {
	*postgres.KeyedRepo[*inward.Receipt]
}

// NewInwardRepo creates a new receipt repository.
func NewInwardRepo(txm *postgres.TxManager) *InwardRepo {
	return &InwardRepo{
		KeyedRepo: postgres.NewKeyedRepo(txm, postgres.TableSpec{
			Table:              "inward_movements",
			KeyColumn:          "uuid",
			Entity:             "inward movement",
			SearchColumns:      []string{"uuid", "item_code"},
			ItemColumn:         "item_code",
			CounterpartyColumn: "supplier_phone",
			DefaultOrder:       "created_at DESC",
		}, postgres.ExtractDBColumns[inward.Receipt](), func() *inward.Receipt { return &inward.Receipt{} }),
	}
}

// Create implements inward.Repository. A used UUID yields a Duplicate error.
func (r *InwardRepo) Create(ctx context.Context, rec *inward.Receipt) error {
	return r.Insert(ctx, rec)
}

func (r *InwardRepo) GetByUUID(ctx context.Context, uuid string) (*inward.Receipt, error) {
	return r.GetByKey(ctx, uuid)
}

func (r *InwardRepo) ExistsByUUID(ctx context.Context, uuid string) (bool, error) {
	return r.ExistsByKey(ctx, uuid)
}

func (r *InwardRepo) Update(ctx context.Context, rec *inward.Receipt) error {
	set := postgres.Pick(postgres.StructToMap(rec), r.Columns(), movementImmutable...)
	return r.UpdateColumns(ctx, rec.UUID, set)
}

func (r *InwardRepo) Delete(ctx context.Context, uuid string) error {
	return r.DeleteByKey(ctx, uuid)
}

func (r *InwardRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*inward.Receipt], error) {
	return r.KeyedRepo.List(ctx, filter)
}

// OutwardRepo implements outward.Repository.
type OutwardRepo struct {
	*postgres.KeyedRepo[*outward.Issue]
}

// NewOutwardRepo creates a new issue repository.
func NewOutwardRepo(txm *postgres.TxManager) *OutwardRepo {
	return &OutwardRepo{
		KeyedRepo: postgres.NewKeyedRepo(txm, postgres.TableSpec{
			Table:              "outward_movements",
			KeyColumn:          "uuid",
			Entity:             "outward movement",
			SearchColumns:      []string{"uuid", "item_code", "reference"},
			ItemColumn:         "item_code",
			CounterpartyColumn: "customer_phone",
			DefaultOrder:       "created_at DESC",
		}, postgres.ExtractDBColumns[outward.Issue](), func() *outward.Issue { return &outward.Issue{} }),
	}
}

// Create implements outward.Repository. A used UUID yields a Duplicate error.
func (r *OutwardRepo) Create(ctx context.Context, i *outward.Issue) error {
	return r.Insert(ctx, i)
}

func (r *OutwardRepo) GetByUUID(ctx context.Context, uuid string) (*outward.Issue, error) {
	return r.GetByKey(ctx, uuid)
}

func (r *OutwardRepo) ExistsByUUID(ctx context.Context, uuid string) (bool, error) {
	return r.ExistsByKey(ctx, uuid)
}

func (r *OutwardRepo) Update(ctx context.Context, i *outward.Issue) error {
	set := postgres.Pick(postgres.StructToMap(i), r.Columns(), movementImmutable...)
	return r.UpdateColumns(ctx, i.UUID, set)
}

func (r *OutwardRepo) Delete(ctx context.Context, uuid string) error {
	return r.DeleteByKey(ctx, uuid)
}

func (r *OutwardRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*outward.Issue], error) {
	return r.KeyedRepo.List(ctx, filter)
}
