package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products, carrying Hebrew and Arabic copy for the
// storefront. The (name, name_ar) pair is unique across all categories.
type Category struct {
	ID            uuid.UUID     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name          string        `gorm:"column:name;not null;uniqueIndex:idx_categories_name_pair" json:"name"`
	NameAr        string        `gorm:"column:name_ar;not null;uniqueIndex:idx_categories_name_pair" json:"nameAr"`
	Description   string        `gorm:"column:description;not null" json:"description"`
	DescriptionAr string        `gorm:"column:description_ar;not null" json:"descriptionAr"`
	Image         *string       `gorm:"column:image" json:"image,omitempty"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"subcategories"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// Subcategory is an ordered child of a category with its own stable id.
type Subcategory struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;index" json:"categoryId"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	NameAr     string    `gorm:"column:name_ar;not null" json:"nameAr"`
	Position   int       `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
