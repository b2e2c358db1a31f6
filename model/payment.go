package model

import (
	"time"
)

// Payment statuses and methods
const (
	TenantPaymentAwaiting = "awaiting_payment"
	TenantPaymentPaid     = "paid"

	LandlordReceivedAwaiting = "awaiting_approval"
	LandlordReceivedApproved = "approved"

	PaymentMethodBit  = "bit"
	PaymentMethodBank = "bank"
)

// Payment tracks the manual money flow of one contract: the tenant's
// transfer to the platform and the admin's confirmation that releases
// the landlord payout. One row per contract.
type Payment struct {
	ID            string `json:"id" gorm:"primaryKey"`
	ContractID    string `json:"contract_id" gorm:"uniqueIndex;not null"`
	TenantEmail   string `json:"tenant_email" gorm:"index"`
	LandlordEmail string `json:"landlord_email" gorm:"index"`

	TotalAmount      int64 `json:"total_amount"`
	CommissionAmount int64 `json:"commission_amount"`
	LandlordAmount   int64 `json:"landlord_amount"`

	TenantPaymentStatus    string `json:"tenant_payment_status"`
	LandlordReceivedStatus string `json:"landlord_received_status"`
	PaymentMethod          string `json:"payment_method,omitempty"`

	TenantPaymentDate        *time.Time `json:"tenant_payment_date,omitempty"`
	LandlordConfirmationDate *time.Time `json:"landlord_confirmation_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
