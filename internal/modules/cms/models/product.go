package models

import "time"

// Product is a catalog entry (yarn, fabric, garment, ...)
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Category    string    `gorm:"type:text;not null;index" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:text" json:"image_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// CreateProductRequest represents product creation request
type CreateProductRequest struct {
	Name        string `json:"name" form:"name"`
	Category    string `json:"category" form:"category"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"image_url" form:"image_url"`
}

// UpdateProductRequest holds a partial update; nil fields keep their value
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" form:"name"`
	Category    *string `json:"category,omitempty" form:"category"`
	Description *string `json:"description,omitempty" form:"description"`
	ImageURL    *string `json:"image_url,omitempty" form:"image_url"`
}

// ProductFilter represents product filtering options
type ProductFilter struct {
	Category   string
	SearchTerm string
}
