package model

import (
	"time"
)

// Contract statuses
const (
	ContractDraft             = "draft"
	ContractAwaitingTenant    = "awaiting_tenant_signature"
	ContractAwaitingLandlord  = "awaiting_landlord_signature"
	ContractAwaitingPayment   = "awaiting_payment"
	ContractAwaitingAdmin     = "awaiting_admin_approval"
	ContractActive            = "active"
	ContractCancelled         = "cancelled"
)

// Contract is the frozen legal and financial snapshot of a rental.
// Created either by approving a RentalRequest (lands directly in
// awaiting_payment) or as a draft that both parties sign in turn.
type Contract struct {
	ID                 string `json:"id" gorm:"primaryKey"`
	ProductID          string `json:"product_id" gorm:"index"`
	ProductDescription string `json:"product_description"`

	LandlordName  string `json:"landlord_name"`
	LandlordID    string `json:"landlord_id"`
	LandlordEmail string `json:"landlord_email" gorm:"index"`
	LandlordPhone string `json:"landlord_phone"`
	TenantName    string `json:"tenant_name"`
	TenantID      string `json:"tenant_id"`
	TenantEmail   string `json:"tenant_email" gorm:"index"`
	TenantPhone   string `json:"tenant_phone"`

	DamageCompensationAmount int64     `json:"damage_compensation_amount"`
	StartDate                time.Time `json:"start_date"`
	EndDate                  time.Time `json:"end_date"`

	// Financials frozen at creation, in agorot. CommissionBps is the
	// platform fee in basis points.
	TotalPrice       int64 `json:"total_price"`
	CommissionBps    int   `json:"commission_bps"`
	CommissionAmount int64 `json:"commission_amount"`
	LandlordPayout   int64 `json:"landlord_payout"`

	ContractText string `json:"contract_text,omitempty"`
	Status       string `json:"status" gorm:"index"`

	TenantSignatureDate   *time.Time `json:"tenant_signature_date,omitempty"`
	LandlordSignatureDate *time.Time `json:"landlord_signature_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartyOf reports which side of the contract the given email is on:
// "landlord", "tenant", or "" for neither.
func (c *Contract) PartyOf(email string) string {
	switch email {
	case c.LandlordEmail:
		return "landlord"
	case c.TenantEmail:
		return "tenant"
	default:
		return ""
	}
}
