package dto

import (
	"time"

	"robotpacc/internal/domain/customers"
	"robotpacc/internal/domain/suppliers"
)

// CreateSupplierRequest is the request body for registering a supplier.
type CreateSupplierRequest struct {
	Phone         string `json:"phone" binding:"required"`
	ItemCode      string `json:"itemcode" binding:"required"`
	SupName       string `json:"supname" binding:"required"`
	ContactPerson string `json:"contactperson" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Address       string `json:"address" binding:"required"`
	Notes         string `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSupplierRequest) ToEntity() *suppliers.Supplier {
	return &suppliers.Supplier{
		Phone:         r.Phone,
		ItemCode:      r.ItemCode,
		Name:          r.SupName,
		ContactPerson: r.ContactPerson,
		Email:         r.Email,
		Address:       r.Address,
		Notes:         r.Notes,
	}
}

// SupplierResponse is the wire form of a supplier.
type SupplierResponse struct {
	Phone         string    `json:"phone"`
	ItemCode      string    `json:"itemcode"`
	SupName       string    `json:"supname"`
	ContactPerson string    `json:"contactperson"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromSupplier converts domain entity to DTO.
func FromSupplier(s *suppliers.Supplier) SupplierResponse {
	return SupplierResponse{
		Phone:         s.Phone,
		ItemCode:      s.ItemCode,
		SupName:       s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Address:       s.Address,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
}

// CreateCustomerRequest is the request body for registering a customer.
type CreateCustomerRequest struct {
	Phone string `json:"phone" binding:"required"`
	CName string `json:"cname" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customers.Customer {
	return &customers.Customer{Phone: r.Phone, Name: r.CName}
}

// CustomerResponse is the wire form of a customer.
type CustomerResponse struct {
	Phone     string    `json:"phone"`
	CName     string    `json:"cname"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromCustomer converts domain entity to DTO.
func FromCustomer(c *customers.Customer) CustomerResponse {
	return CustomerResponse{Phone: c.Phone, CName: c.Name, CreatedAt: c.CreatedAt}
}
