package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	"github.com/cleanmart/backend/pkg/pagination"
)

// ListQuery is the catalog listing configuration. Absent filters are nil
// and all present filters compose with AND.
type ListQuery struct {
	Page        int
	Limit       int
	Category    *uuid.UUID
	Subcategory *uuid.UUID
	Search      string
	Sort        enums.ProductSort
	InStock     *bool
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

// ListResult is one catalog page plus its pagination metadata.
type ListResult struct {
	Products []models.Product `json:"products"`
	Meta     pagination.Meta  `json:"meta"`
}

// CreateInput is the admin payload for creating a product.
type CreateInput struct {
	Name           string          `json:"name" validate:"required"`
	NameAr         string          `json:"nameAr" validate:"required"`
	Description    string          `json:"description" validate:"required"`
	DescriptionAr  string          `json:"descriptionAr" validate:"required"`
	Price          decimal.Decimal `json:"price"`
	SalePercentage int             `json:"salePercentage" validate:"gte=0,lte=100"`
	Stock          int             `json:"stock" validate:"gte=0"`
	Unit           string          `json:"unit" validate:"required"`
	UnitAmount     decimal.Decimal `json:"unitAmount"`
	Images         []string        `json:"images" validate:"required,min=1"`
	CategoryID     *uuid.UUID      `json:"categoryId,omitempty"`
	SubcategoryID  *uuid.UUID      `json:"subcategoryId,omitempty"`
	FeaturesHe     []string        `json:"featuresHe,omitempty"`
	FeaturesAr     []string        `json:"featuresAr,omitempty"`
}

// UpdateInput is the admin payload for a partial product update. Nil fields
// are left untouched.
type UpdateInput struct {
	Name           *string          `json:"name,omitempty"`
	NameAr         *string          `json:"nameAr,omitempty"`
	Description    *string          `json:"description,omitempty"`
	DescriptionAr  *string          `json:"descriptionAr,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	SalePercentage *int             `json:"salePercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Stock          *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Unit           *string          `json:"unit,omitempty"`
	UnitAmount     *decimal.Decimal `json:"unitAmount,omitempty"`
	Images         *[]string        `json:"images,omitempty"`
	CategoryID     *uuid.UUID       `json:"categoryId,omitempty"`
	SubcategoryID  *uuid.UUID       `json:"subcategoryId,omitempty"`
	FeaturesHe     *[]string        `json:"featuresHe,omitempty"`
	FeaturesAr     *[]string        `json:"featuresAr,omitempty"`
	ClearCategory  bool             `json:"clearCategory,omitempty"`
}
