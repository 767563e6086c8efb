package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product types supported by the catalog.
const (
	ProductTypeHardware = "hardware"
	ProductTypeSoftware = "software"
)

// ValidProductType reports whether t is one of the supported product types.
func ValidProductType(t string) bool {
	return t == ProductTypeHardware || t == ProductTypeSoftware
}

type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	SubcategoryID uuid.UUID       `json:"subcategory_id" db:"subcategory_id"`
	ProductType   string          `json:"product_type" db:"product_type"`
	Name          string          `json:"name" db:"name"`
	Slug          string          `json:"slug" db:"slug"`
	Series        *string         `json:"series" db:"series"`
	Image         *string         `json:"image" db:"image"`
	MSRP          decimal.Decimal `json:"msrp" db:"msrp"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Stock         int             `json:"stock" db:"stock"`
	IsInStock     bool            `json:"is_in_stock" db:"is_in_stock"`
	MfrPart       *string         `json:"mfr_part" db:"mfr_part"`
	VendorPart    *string         `json:"vendor_part" db:"vendor_part"`
	UNSPSC        *string         `json:"unspsc" db:"unspsc"`
	Manufacturer  *string         `json:"manufacturer" db:"manufacturer"`
	Description   string          `json:"description" db:"description"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	IsFeatured    bool            `json:"is_featured" db:"is_featured"`
	DisplayOrder  int             `json:"display_order" db:"display_order"`
	Timestamps
}

// ProductFilter holds the listing filters accepted by the REST boundary.
type ProductFilter struct {
	IsActive        *bool  `json:"is_active,omitempty"`
	IsFeatured      *bool  `json:"is_featured,omitempty"`
	CategorySlug    string `json:"category,omitempty"`
	SubcategorySlug string `json:"subcategory,omitempty"`
	ProductType     string `json:"type,omitempty"`
	Search          string `json:"search,omitempty"` // matches name, manufacturer, mfr_part
	Limit           int    `json:"limit,omitempty"`
	Offset          int    `json:"offset,omitempty"`
}

// DescriptionBlock is a titled section of a product's long-form description.
type DescriptionBlock struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ProductID    uuid.UUID `json:"product_id" db:"product_id"`
	Title        string    `json:"title" db:"title"`
	Subtitle     *string   `json:"subtitle" db:"subtitle"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	Timestamps
}

// DescriptionRow is a key/value spec line inside a description block.
// Rows have no active flag; they are always surfaced with their block.
type DescriptionRow struct {
	ID            uuid.UUID `json:"id" db:"id"`
	DescriptionID uuid.UUID `json:"description_id" db:"description_id"`
	Key           string    `json:"key" db:"key"`
	Value         string    `json:"value" db:"value"`
	DisplayOrder  int       `json:"display_order" db:"display_order"`
}
