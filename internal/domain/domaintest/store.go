// Package domaintest provides in-memory repositories and a transaction
// manager for service tests.
package domaintest

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/core/id"
	"robotpacc/internal/core/types"
	"robotpacc/internal/domain"
	"robotpacc/internal/domain/audit"
	"robotpacc/internal/domain/customers"
	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/items"
	"robotpacc/internal/domain/outward"
	"robotpacc/internal/domain/suppliers"
)

// Store holds every table in memory. Transactions snapshot the whole store
// and restore it on error.
type Store struct {
	txMu sync.Mutex // serialises transactions, standing in for row locks
	mu   sync.Mutex

	items     map[string]items.Item
	suppliers map[string]suppliers.Supplier
	customers map[string]customers.Customer
	inward    map[string]inward.Receipt
	outward   map[string]outward.Issue
	audit     []audit.Entry

	failures    map[string]error
	readOnlyTxs atomic.Int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		items:     make(map[string]items.Item),
		suppliers: make(map[string]suppliers.Supplier),
		customers: make(map[string]customers.Customer),
		inward:    make(map[string]inward.Receipt),
		outward:   make(map[string]outward.Issue),
		failures:  make(map[string]error),
	}
}

// FailOn makes the named operation (for example "items.UpdateStock") return err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	return s.failures[op]
}

type snapshot struct {
	items     map[string]items.Item
	suppliers map[string]suppliers.Supplier
	customers map[string]customers.Customer
	inward    map[string]inward.Receipt
	outward   map[string]outward.Issue
	audit     []audit.Entry
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		items:     copyMap(s.items),
		suppliers: copyMap(s.suppliers),
		customers: copyMap(s.customers),
		inward:    copyMap(s.inward),
		outward:   copyMap(s.outward),
		audit:     append([]audit.Entry(nil), s.audit...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snap.items
	s.suppliers = snap.suppliers
	s.customers = snap.customers
	s.inward = snap.inward
	s.outward = snap.outward
	s.audit = snap.audit
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type txKey struct{}

// RunInTransaction implements tx.Manager.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// ReadOnly implements tx.ReadOnlyManager. Reads need no snapshot, so it only
// marks ctx and counts the call.
func (s *Store) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.readOnlyTxs.Add(1)
	return fn(context.WithValue(ctx, txKey{}, true))
}

// ReadOnlyTxs is the number of read-only transactions opened so far.
func (s *Store) ReadOnlyTxs() int64 {
	return s.readOnlyTxs.Load()
}

// Record implements audit.Recorder.
func (s *Store) Record(ctx context.Context, change audit.Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("audit.Record"); err != nil {
		return err
	}
	raw, err := json.Marshal(change.Changes)
	if err != nil {
		return err
	}
	s.audit = append(s.audit, audit.Entry{
		ID:         id.NewKey(),
		EntityType: change.EntityType,
		EntityKey:  change.EntityKey,
		Action:     change.Action,
		Changes:    raw,
		CreatedAt:  time.Now().UTC(),
	})
	return nil
}

// History implements audit.Reader.
func (s *Store) History(ctx context.Context, entityType, entityKey string, limit int) ([]audit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]audit.Entry, 0)
	for i := len(s.audit) - 1; i >= 0 && len(out) < limit; i-- {
		e := s.audit[i]
		if e.EntityType == entityType && e.EntityKey == entityKey {
			out = append(out, e)
		}
	}
	return out, nil
}

// AuditEntries returns every recorded entry in insertion order.
func (s *Store) AuditEntries() []audit.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Entry(nil), s.audit...)
}

// Items returns the item repository view.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Suppliers returns the supplier repository view.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }

// Customers returns the customer repository view.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// Inward returns the receipt repository view.
func (s *Store) Inward() *InwardRepo { return &InwardRepo{s: s} }

// Outward returns the issue repository view.
func (s *Store) Outward() *OutwardRepo { return &OutwardRepo{s: s} }

// Reports returns the aggregate query view.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{s: s} }

// ItemRepo implements items.Repository.
type ItemRepo struct{ s *Store }

var _ items.Repository = (*ItemRepo)(nil)

func (r *ItemRepo) Create(ctx context.Context, it *items.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("items.Create"); err != nil {
		return err
	}
	if _, ok := r.s.items[it.Code]; ok {
		return apperror.NewDuplicate("item", "item_code", it.Code)
	}
	r.s.items[it.Code] = *it
	return nil
}

func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*items.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[code]
	if !ok {
		return nil, apperror.NewNotFound("item", code)
	}
	return &it, nil
}

func (r *ItemRepo) GetByCodeForUpdate(ctx context.Context, code string) (*items.Item, error) {
	return r.GetByCode(ctx, code)
}

func (r *ItemRepo) UpdateStock(ctx context.Context, code string, qty int64, avgCost types.Money) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("items.UpdateStock"); err != nil {
		return err
	}
	it, ok := r.s.items[code]
	if !ok {
		return apperror.NewNotFound("item", code)
	}
	it.Quantity = qty
	it.AvgCost = avgCost
	r.s.items[code] = it
	return nil
}

func (r *ItemRepo) Update(ctx context.Context, it *items.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[it.Code]
	if !ok {
		return apperror.NewNotFound("item", it.Code)
	}
	next := *it
	next.Quantity = cur.Quantity
	next.AvgCost = cur.AvgCost
	next.CreatedAt = cur.CreatedAt
	r.s.items[it.Code] = next
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[code]; !ok {
		return apperror.NewNotFound("item", code)
	}
	delete(r.s.items, code)
	return nil
}

func (r *ItemRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.items[code]
	return ok, nil
}

func (r *ItemRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*items.Item], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*items.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		it := it
		if matches(filter.Search, it.Code, it.Name) {
			all = append(all, &it)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, filter), nil
}

// Put stores an item directly, bypassing validation.
func (r *ItemRepo) Put(it items.Item) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[it.Code] = it
}

// SupplierRepo implements suppliers.Repository.
type SupplierRepo struct{ s *Store }

var _ suppliers.Repository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(ctx context.Context, sup *suppliers.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[sup.Phone]; ok {
		return apperror.NewDuplicate("supplier", "phone", sup.Phone)
	}
	r.s.suppliers[sup.Phone] = *sup
	return nil
}

func (r *SupplierRepo) GetByPhone(ctx context.Context, phone string) (*suppliers.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sup, ok := r.s.suppliers[phone]
	if !ok {
		return nil, apperror.NewNotFound("supplier", phone)
	}
	return &sup, nil
}

func (r *SupplierRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.suppliers[phone]
	return ok, nil
}

func (r *SupplierRepo) Delete(ctx context.Context, phone string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[phone]; !ok {
		return apperror.NewNotFound("supplier", phone)
	}
	delete(r.s.suppliers, phone)
	return nil
}

func (r *SupplierRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*suppliers.Supplier], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*suppliers.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		sup := sup
		if matches(filter.Search, sup.Phone, sup.Name) && (filter.ItemCode == "" || sup.ItemCode == filter.ItemCode) {
			all = append(all, &sup)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, filter), nil
}

// CustomerRepo implements customers.Repository.
type CustomerRepo struct{ s *Store }

var _ customers.Repository = (*CustomerRepo)(nil)

func (r *CustomerRepo) Create(ctx context.Context, c *customers.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.Phone]; ok {
		return apperror.NewDuplicate("customer", "phone", c.Phone)
	}
	r.s.customers[c.Phone] = *c
	return nil
}

func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (*customers.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[phone]
	if !ok {
		return nil, apperror.NewNotFound("customer", phone)
	}
	return &c, nil
}

func (r *CustomerRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.customers[phone]
	return ok, nil
}

func (r *CustomerRepo) Delete(ctx context.Context, phone string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[phone]; !ok {
		return apperror.NewNotFound("customer", phone)
	}
	delete(r.s.customers, phone)
	return nil
}

func (r *CustomerRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*customers.Customer], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*customers.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		c := c
		if matches(filter.Search, c.Phone, c.Name) {
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, filter), nil
}

// InwardRepo implements inward.Repository.
type InwardRepo struct{ s *Store }

var _ inward.Repository = (*InwardRepo)(nil)

func (r *InwardRepo) Create(ctx context.Context, rec *inward.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("inward.Create"); err != nil {
		return err
	}
	if _, ok := r.s.inward[rec.UUID]; ok {
		return apperror.NewDuplicate("inward movement", "uuid", rec.UUID)
	}
	r.s.inward[rec.UUID] = *rec
	return nil
}

func (r *InwardRepo) GetByUUID(ctx context.Context, uuid string) (*inward.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.inward[uuid]
	if !ok {
		return nil, apperror.NewNotFound("inward movement", uuid)
	}
	return &rec, nil
}

func (r *InwardRepo) ExistsByUUID(ctx context.Context, uuid string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.inward[uuid]
	return ok, nil
}

func (r *InwardRepo) Update(ctx context.Context, rec *inward.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.inward[rec.UUID]; !ok {
		return apperror.NewNotFound("inward movement", rec.UUID)
	}
	r.s.inward[rec.UUID] = *rec
	return nil
}

func (r *InwardRepo) Delete(ctx context.Context, uuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.inward[uuid]; !ok {
		return apperror.NewNotFound("inward movement", uuid)
	}
	delete(r.s.inward, uuid)
	return nil
}

func (r *InwardRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*inward.Receipt], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*inward.Receipt, 0, len(r.s.inward))
	for _, rec := range r.s.inward {
		rec := rec
		if filter.ItemCode != "" && rec.ItemCode != filter.ItemCode {
			continue
		}
		if filter.Counterparty != "" && rec.SupplierPhone != filter.Counterparty {
			continue
		}
		all = append(all, &rec)
	}
	sort.Slice(all, func(i, j int) bool { return newer(all[i].CreatedAt, all[j].CreatedAt, all[i].UUID, all[j].UUID) })
	return page(all, filter), nil
}

// OutwardRepo implements outward.Repository.
type OutwardRepo struct{ s *Store }

var _ outward.Repository = (*OutwardRepo)(nil)

func (r *OutwardRepo) Create(ctx context.Context, i *outward.Issue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("outward.Create"); err != nil {
		return err
	}
	if _, ok := r.s.outward[i.UUID]; ok {
		return apperror.NewDuplicate("outward movement", "uuid", i.UUID)
	}
	r.s.outward[i.UUID] = *i
	return nil
}

func (r *OutwardRepo) GetByUUID(ctx context.Context, uuid string) (*outward.Issue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.outward[uuid]
	if !ok {
		return nil, apperror.NewNotFound("outward movement", uuid)
	}
	return &i, nil
}

func (r *OutwardRepo) ExistsByUUID(ctx context.Context, uuid string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.outward[uuid]
	return ok, nil
}

func (r *OutwardRepo) Update(ctx context.Context, i *outward.Issue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.outward[i.UUID]; !ok {
		return apperror.NewNotFound("outward movement", i.UUID)
	}
	r.s.outward[i.UUID] = *i
	return nil
}

func (r *OutwardRepo) Delete(ctx context.Context, uuid string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.outward[uuid]; !ok {
		return apperror.NewNotFound("outward movement", uuid)
	}
	delete(r.s.outward, uuid)
	return nil
}

func (r *OutwardRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*outward.Issue], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*outward.Issue, 0, len(r.s.outward))
	for _, i := range r.s.outward {
		i := i
		if filter.ItemCode != "" && i.ItemCode != filter.ItemCode {
			continue
		}
		if filter.Counterparty != "" && i.CustomerPhone != filter.Counterparty {
			continue
		}
		all = append(all, &i)
	}
	sort.Slice(all, func(a, b int) bool { return newer(all[a].CreatedAt, all[b].CreatedAt, all[a].UUID, all[b].UUID) })
	return page(all, filter), nil
}

func newer(a, b time.Time, ka, kb string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return ka > kb
}

func matches(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func page[T any](all []T, filter domain.ListFilter) domain.ListResult[T] {
	filter = filter.Normalize()
	res := domain.ListResult[T]{
		Items:      make([]T, 0),
		TotalCount: int64(len(all)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if filter.Offset >= len(all) {
		return res
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	res.Items = append(res.Items, all[filter.Offset:end]...)
	return res
}
