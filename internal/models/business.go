package models

import "time"

type Business struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"size:100;not null;index" json:"category"`

	Address string `gorm:"type:text;not null" json:"address"`
	City    string `gorm:"size:100;not null;index" json:"city"`
	State   string `gorm:"size:100;not null" json:"state"`
	ZipCode string `gorm:"size:20;not null" json:"zip_code"`

	Phone    string `gorm:"size:20;not null" json:"phone"`
	Email    string `gorm:"size:255;not null" json:"email"`
	Website  string `gorm:"size:255" json:"website"`
	ImageURL string `gorm:"size:500" json:"image_url"`

	// Derived from the review set. Written only by rating.Aggregator.
	Rating      float64 `gorm:"type:decimal(2,1);default:0.0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`

	IsFeatured bool `gorm:"default:false;index" json:"is_featured"`
	IsApproved bool `gorm:"default:false;index" json:"is_approved"`

	OwnerID *uint `gorm:"index" json:"owner_id"`
	Owner   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
