package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/cleanmart/backend/pkg/db/types"
)

// Product is the canonical catalog listing with bilingual copy.
type Product struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string             `gorm:"column:name;not null" json:"name"`
	NameAr         string             `gorm:"column:name_ar;not null" json:"nameAr"`
	Description    string             `gorm:"column:description;not null" json:"description"`
	DescriptionAr  string             `gorm:"column:description_ar;not null" json:"descriptionAr"`
	Price          decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	SalePercentage int                `gorm:"column:sale_percentage;not null;default:0" json:"salePercentage"`
	Stock          int                `gorm:"column:stock;not null;default:0" json:"stock"`
	Unit           string             `gorm:"column:unit;not null" json:"unit"`
	UnitAmount     decimal.Decimal    `gorm:"column:unit_amount;type:numeric(12,2);not null" json:"unitAmount"`
	Images         dbtypes.StringList `gorm:"column:images;type:jsonb;not null" json:"images"`
	CategoryID     *uuid.UUID         `gorm:"column:category_id;type:uuid;index" json:"categoryId,omitempty"`
	SubcategoryID  *uuid.UUID         `gorm:"column:subcategory_id;type:uuid" json:"subcategoryId,omitempty"`
	FeaturesHe     dbtypes.StringList `gorm:"column:features_he;type:jsonb" json:"featuresHe"`
	FeaturesAr     dbtypes.StringList `gorm:"column:features_ar;type:jsonb" json:"featuresAr"`
	Sales          int                `gorm:"column:sales;not null;default:0" json:"sales"`
	Category       *Category          `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// EffectivePrice is the displayed/charged unit price after applying any
// active sale percentage, floored to an integer.
func (p Product) EffectivePrice() int64 {
	price := p.Price
	if p.SalePercentage > 0 {
		factor := decimal.NewFromInt(100 - int64(p.SalePercentage)).Div(decimal.NewFromInt(100))
		price = price.Mul(factor)
	}
	return price.Floor().IntPart()
}
