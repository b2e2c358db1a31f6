package service

import (
	"github.com/Liamshmuel20/Rant.GO/model"
)

func (s *Store) CreateUser(u *model.User) error {
	return s.db.Create(u).Error
}

func (s *Store) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	return one(&u, s.db.Where("email = ?", email).First(&u))
}

func (s *Store) GetUser(id string) (*model.User, error) {
	var u model.User
	return one(&u, s.db.First(&u, "id = ?", id))
}

// UpdateUserProfile updates the profile fields a user may change about
// themselves. Email and role are not touched here.
func (s *Store) UpdateUserProfile(email string, fields map[string]any) error {
	return s.db.Model(&model.User{}).Where("email = ?", email).Updates(fields).Error
}

func (s *Store) ListUsers() ([]*model.User, error) {
	var users []*model.User
	err := s.db.Order("created_at desc").Find(&users).Error
	return users, err
}

func (s *Store) CountUsers() (int64, error) {
	var n int64
	err := s.db.Model(&model.User{}).Count(&n).Error
	return n, err
}
