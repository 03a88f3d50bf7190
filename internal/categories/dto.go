package categories

import "github.com/google/uuid"

// SubcategoryInput carries the bilingual names for one subcategory.
type SubcategoryInput struct {
	Name   string `json:"name" validate:"required"`
	NameAr string `json:"nameAr" validate:"required"`
}

// CreateInput is the payload for creating a category.
type CreateInput struct {
	Name          string             `json:"name" validate:"required"`
	NameAr        string             `json:"nameAr" validate:"required"`
	Description   string             `json:"description" validate:"required"`
	DescriptionAr string             `json:"descriptionAr" validate:"required"`
	Image         *string            `json:"image,omitempty"`
	Subcategories []SubcategoryInput `json:"subcategories,omitempty"`
}

// UpdateInput is the payload for updating a category. Nil fields are left
// untouched; a non-nil Subcategories slice replaces the full list.
type UpdateInput struct {
	Name          *string             `json:"name,omitempty"`
	NameAr        *string             `json:"nameAr,omitempty"`
	Description   *string             `json:"description,omitempty"`
	DescriptionAr *string             `json:"descriptionAr,omitempty"`
	Image         *string             `json:"image,omitempty"`
	Subcategories *[]SubcategoryInput `json:"subcategories,omitempty"`
}

// AddSubcategoryInput appends one subcategory to an existing category.
type AddSubcategoryInput struct {
	CategoryID uuid.UUID `json:"-"`
	Name       string    `json:"name" validate:"required"`
	NameAr     string    `json:"nameAr" validate:"required"`
}
