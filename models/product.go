package models

import "time"

type Category struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	ImageURL     string    `json:"image_url"`
	CloudinaryID string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Store struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Postcode  string    `json:"postcode"`
	Phone     string    `json:"phone"`
	ImageURL  string    `json:"image_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CategoryID   int       `json:"category_id"`
	StoreID      int       `json:"store_id"`
	Price        float64   `json:"price"`
	Unit         string    `json:"unit"`
	Stock        int       `json:"stock"`
	ImageURL     string    `json:"image_url"`
	CloudinaryID string    `json:"-"`
	IsFeatured   bool      `json:"is_featured"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
