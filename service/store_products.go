package service

import (
	"github.com/Liamshmuel20/Rant.GO/model"
)

func (s *Store) CreateProduct(p *model.Product) error {
	return s.db.Create(p).Error
}

func (s *Store) GetProduct(id string) (*model.Product, error) {
	var p model.Product
	return one(&p, s.db.First(&p, "id = ?", id))
}

func (s *Store) ListProducts() ([]*model.Product, error) {
	var products []*model.Product
	err := s.db.Order("created_at desc").Find(&products).Error
	return products, err
}

func (s *Store) ListProductsByOwner(email string) ([]*model.Product, error) {
	var products []*model.Product
	err := s.db.Where("owner_email = ?", email).Order("created_at desc").Find(&products).Error
	return products, err
}

func (s *Store) UpdateProduct(id string, fields map[string]any) error {
	return s.db.Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (s *Store) DeleteProduct(id string) error {
	return s.db.Delete(&model.Product{}, "id = ?", id).Error
}
