package service

import (
	"github.com/Liamshmuel20/Rant.GO/model"
)

func (s *Store) CreateContract(c *model.Contract) error {
	return s.db.Create(c).Error
}

func (s *Store) GetContract(id string) (*model.Contract, error) {
	var c model.Contract
	return one(&c, s.db.First(&c, "id = ?", id))
}

// ListContractsForUser returns contracts where the user is either
// party, newest first.
func (s *Store) ListContractsForUser(email string) ([]*model.Contract, error) {
	var contracts []*model.Contract
	err := s.db.Where("landlord_email = ? OR tenant_email = ?", email, email).
		Order("created_at desc").Find(&contracts).Error
	return contracts, err
}

func (s *Store) ListContracts() ([]*model.Contract, error) {
	var contracts []*model.Contract
	err := s.db.Order("created_at desc").Find(&contracts).Error
	return contracts, err
}

// ListContractsForProduct feeds the availability check.
func (s *Store) ListContractsForProduct(productID string) ([]*model.Contract, error) {
	var contracts []*model.Contract
	err := s.db.Where("product_id = ?", productID).Find(&contracts).Error
	return contracts, err
}

// UpdateContractIfStatus applies fields only while the row still holds
// fromStatus, reporting whether it matched.
func (s *Store) UpdateContractIfStatus(id, fromStatus string, fields map[string]any) (bool, error) {
	res := s.db.Model(&model.Contract{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (s *Store) CreatePayment(p *model.Payment) error {
	return s.db.Create(p).Error
}

func (s *Store) GetPayment(id string) (*model.Payment, error) {
	var p model.Payment
	return one(&p, s.db.First(&p, "id = ?", id))
}

// GetPaymentByContract relies on the unique index on contract_id:
// there is at most one payment per contract.
func (s *Store) GetPaymentByContract(contractID string) (*model.Payment, error) {
	var p model.Payment
	return one(&p, s.db.Where("contract_id = ?", contractID).First(&p))
}

func (s *Store) ListPaymentsForUser(email string) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := s.db.Where("tenant_email = ? OR landlord_email = ?", email, email).
		Order("created_at desc").Find(&payments).Error
	return payments, err
}

// ListPaymentsAwaitingApproval returns payments the admin still has to
// confirm, oldest first.
func (s *Store) ListPaymentsAwaitingApproval() ([]*model.Payment, error) {
	var payments []*model.Payment
	err := s.db.Where("tenant_payment_status = ? AND landlord_received_status = ?",
		model.TenantPaymentPaid, model.LandlordReceivedAwaiting).
		Order("created_at asc").Find(&payments).Error
	return payments, err
}

func (s *Store) UpdatePayment(id string, fields map[string]any) error {
	return s.db.Model(&model.Payment{}).Where("id = ?", id).Updates(fields).Error
}

func (s *Store) CountPaymentsAwaitingApproval() (int64, error) {
	var n int64
	err := s.db.Model(&model.Payment{}).
		Where("tenant_payment_status = ? AND landlord_received_status = ?",
			model.TenantPaymentPaid, model.LandlordReceivedAwaiting).
		Count(&n).Error
	return n, err
}
