// Package suppliers provides the supplier catalog.
// Suppliers are keyed by phone number and reference one item by code.
package suppliers

import (
	"context"
	"strings"
	"time"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/domain"
)

// Supplier is a vendor of one stock item.
type Supplier struct {
	Phone         string    `db:"phone" json:"phone"`
	ItemCode      string    `db:"item_code" json:"itemCode"`
	Name          string    `db:"name" json:"name"`
	ContactPerson string    `db:"contact_person" json:"contactPerson"`
	Email         string    `db:"email" json:"email"`
	Address       string    `db:"address" json:"address"`
	Notes         string    `db:"notes" json:"notes"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks required fields.
func (s *Supplier) Validate() error {
	s.Phone = strings.TrimSpace(s.Phone)
	s.ItemCode = strings.TrimSpace(s.ItemCode)

	required := []struct {
		field string
		value string
	}{
		{"phone", s.Phone},
		{"supname", s.Name},
		{"contactperson", s.ContactPerson},
		{"email", s.Email},
		{"address", s.Address},
		{"itemcode", s.ItemCode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apperror.NewValidation("missing required field").WithDetail("field", r.field)
		}
	}
	if !strings.Contains(s.Email, "@") {
		return apperror.NewValidation("email is not valid").WithDetail("field", "email")
	}
	return nil
}

// Repository defines persistence for suppliers.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByPhone(ctx context.Context, phone string) (*Supplier, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Delete(ctx context.Context, phone string) error
	// List searches phone and name.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Supplier], error)
}

// ItemChecker confirms that an item code exists.
type ItemChecker interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
