package models

// Read-model views assembled by the materializer. Views nest children in
// display order and never include entities filtered out by the active cascade.

// CategoryView is a category with its (optionally active-only) subcategories.
type CategoryView struct {
	Category
	ActiveSubcategoryCount int               `json:"active_subcategories_count"`
	Subcategories          []SubcategoryView `json:"subcategories"`
}

// SubcategoryView is a subcategory with its descriptions and products.
type SubcategoryView struct {
	Subcategory
	ActiveProductCount int                   `json:"active_products_count"`
	Descriptions       []CategoryDescription `json:"descriptions"`
	Products           []ProductView         `json:"products"`
}

// ProductView is the detail read-model for a single product.
type ProductView struct {
	Product
	SubcategoryName string                 `json:"subcategory_name,omitempty"`
	CategoryName    string                 `json:"category_name,omitempty"`
	Overview        []string               `json:"overview"`
	Descriptions    []DescriptionBlockView `json:"descriptions"`
}

// DescriptionBlockView is a description block with its ordered rows.
type DescriptionBlockView struct {
	DescriptionBlock
	Rows []DescriptionRow `json:"rows"`
}
