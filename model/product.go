package model

import (
	"time"
)

// Product is an item a landlord offers for rent. Prices are in agorot.
type Product struct {
	ID                       string    `json:"id" gorm:"primaryKey"`
	Title                    string    `json:"title" gorm:"not null"`
	Description              string    `json:"description"`
	Category                 string    `json:"category"`
	PricePerDay              int64     `json:"price_per_day"`
	DamageCompensationAmount int64     `json:"damage_compensation_amount"`
	ImageURL                 string    `json:"image_url"`
	OwnerName                string    `json:"owner_name"`
	OwnerIDNumber            string    `json:"owner_id_number"`
	OwnerEmail               string    `json:"owner_email" gorm:"index"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}
