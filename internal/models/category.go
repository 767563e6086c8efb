package models

import (
	"github.com/google/uuid"
)

// Category is the top level of the catalog hierarchy.
type Category struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	Timestamps
}

// Subcategory groups products under a category.
type Subcategory struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CategoryID   uuid.UUID `json:"category_id" db:"category_id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	Timestamps
}

// CategoryDescription is a free-text marketing blurb attached to a subcategory.
type CategoryDescription struct {
	ID            uuid.UUID `json:"id" db:"id"`
	SubcategoryID uuid.UUID `json:"subcategory_id" db:"subcategory_id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Timestamps
}
