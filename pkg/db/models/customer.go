package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderContact keeps the last-used checkout details for form prefill.
type OrderContact struct {
	Name    string `gorm:"column:name" json:"name"`
	Phone   string `gorm:"column:phone" json:"phone"`
	Address string `gorm:"column:address" json:"address"`
	City    string `gorm:"column:city" json:"city"`
}

// User is a registered customer, keyed by the email of its external
// identity-provider account.
type User struct {
	ID               uuid.UUID    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email            string       `gorm:"column:email;not null;uniqueIndex" json:"email"`
	LastOrderDetails OrderContact `gorm:"embedded;embeddedPrefix:last_" json:"lastOrderDetails"`
	CreatedAt        time.Time    `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// Visitor is an anonymous checkout customer, keyed by submitted email for
// lookup and dedup.
type Visitor struct {
	ID               uuid.UUID    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email            string       `gorm:"column:email;not null;uniqueIndex" json:"email"`
	LastOrderDetails OrderContact `gorm:"embedded;embeddedPrefix:last_" json:"lastOrderDetails"`
	CreatedAt        time.Time    `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
