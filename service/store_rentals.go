package service

import (
	"github.com/Liamshmuel20/Rant.GO/model"
)

func (s *Store) CreateRequest(r *model.RentalRequest) error {
	return s.db.Create(r).Error
}

func (s *Store) GetRequest(id string) (*model.RentalRequest, error) {
	var r model.RentalRequest
	return one(&r, s.db.First(&r, "id = ?", id))
}

// ListRequestsForLandlord returns requests against the landlord's
// products, newest first.
func (s *Store) ListRequestsForLandlord(email string) ([]*model.RentalRequest, error) {
	var requests []*model.RentalRequest
	err := s.db.Where("landlord_email = ?", email).Order("created_at desc").Find(&requests).Error
	return requests, err
}

// ListRequestsForTenant returns the requests the tenant submitted,
// newest first.
func (s *Store) ListRequestsForTenant(email string) ([]*model.RentalRequest, error) {
	var requests []*model.RentalRequest
	err := s.db.Where("tenant_email = ?", email).Order("created_at desc").Find(&requests).Error
	return requests, err
}

func (s *Store) UpdateRequest(id string, fields map[string]any) error {
	return s.db.Model(&model.RentalRequest{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateRequestIfStatus applies fields only while the row still holds
// fromStatus, reporting whether it matched. Transitions use this so two
// racing writers cannot both advance the same request.
func (s *Store) UpdateRequestIfStatus(id, fromStatus string, fields map[string]any) (bool, error) {
	res := s.db.Model(&model.RentalRequest{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

// CountPendingRequestsForLandlord backs the sidebar badge.
func (s *Store) CountPendingRequestsForLandlord(email string) (int64, error) {
	var n int64
	err := s.db.Model(&model.RentalRequest{}).
		Where("landlord_email = ? AND status = ?", email, model.RequestPending).
		Count(&n).Error
	return n, err
}

// CountPayableRequestsForTenant counts approved requests the tenant
// still has to pay for.
func (s *Store) CountPayableRequestsForTenant(email string) (int64, error) {
	var n int64
	err := s.db.Model(&model.RentalRequest{}).
		Where("tenant_email = ? AND status = ?", email, model.RequestApprovedAwaiting).
		Count(&n).Error
	return n, err
}
