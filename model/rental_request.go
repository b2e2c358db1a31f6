package model

import (
	"time"
)

// RentalRequest statuses
const (
	RequestPending          = "pending"
	RequestApprovedAwaiting = "approved_awaiting_payment"
	RequestPaidAwaiting     = "paid_awaiting_admin"
	RequestCompleted        = "completed"
	RequestRejected         = "rejected"
)

// RentalRequest is a tenant's ask to rent a product for a date range.
// Approval freezes the financial totals and links the created contract;
// they are never recomputed afterwards.
type RentalRequest struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	ProductID     string    `json:"product_id" gorm:"index;not null"`
	ProductTitle  string    `json:"product_title"`
	LandlordEmail string    `json:"landlord_email" gorm:"index"`
	TenantName    string    `json:"tenant_name"`
	TenantID      string    `json:"tenant_id"`
	TenantEmail   string    `json:"tenant_email" gorm:"index"`
	TenantPhone   string    `json:"tenant_phone"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Message       string    `json:"message,omitempty"`
	Status        string    `json:"status" gorm:"index"`

	// Frozen on approval
	TotalAmount      int64  `json:"total_amount,omitempty"`
	CommissionAmount int64  `json:"commission_amount,omitempty"`
	LandlordAmount   int64  `json:"landlord_amount,omitempty"`
	ContractID       string `json:"contract_id,omitempty" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
