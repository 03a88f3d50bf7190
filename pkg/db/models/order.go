package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cleanmart/backend/pkg/enums"
)

// CustomerInfo is the contact snapshot captured at checkout.
type CustomerInfo struct {
	FullName string `gorm:"column:full_name" json:"fullName"`
	Email    string `gorm:"column:email" json:"email"`
	Phone    string `gorm:"column:phone" json:"phone"`
	Address  string `gorm:"column:address" json:"address"`
	City     string `gorm:"column:city" json:"city"`
}

// PaymentInfo is the card snapshot stored when the card method is chosen.
// Cards are never charged through a gateway.
type PaymentInfo struct {
	CardNumber string `gorm:"column:card_number" json:"cardNumber"`
	ExpiryDate string `gorm:"column:expiry_date" json:"expiryDate"`
	CVV        string `gorm:"column:cvv" json:"cvv"`
}

// Order is created once at checkout; afterwards only status updates mutate
// it, each appending a timeline event.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total         int64               `gorm:"column:total;not null" json:"total"`
	CustomerInfo  CustomerInfo        `gorm:"embedded;embeddedPrefix:customer_" json:"customerInfo"`
	CustomerID    uuid.UUID           `gorm:"column:customer_id;type:uuid;not null" json:"customerId"`
	CustomerType  enums.CustomerType  `gorm:"column:customer_type;not null" json:"customerType"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null" json:"paymentMethod"`
	PaymentInfo   *PaymentInfo        `gorm:"embedded;embeddedPrefix:payment_" json:"paymentInfo,omitempty"`
	Status        enums.OrderStatus   `gorm:"column:status;not null" json:"status"`
	Timeline      []OrderStatusEvent  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"timeline"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// OrderItem is an immutable product snapshot; price changes after checkout
// never affect stored orders.
type OrderItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null;index" json:"orderId"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"productId"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	NameAr    string    `gorm:"column:name_ar;not null" json:"nameAr"`
	UnitPrice int64     `gorm:"column:unit_price;not null" json:"unitPrice"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	Image     string    `gorm:"column:image" json:"image"`
}

// OrderStatusEvent is one entry of the append-only status timeline.
type OrderStatusEvent struct {
	ID      uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"-"`
	OrderID uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index" json:"-"`
	Status  enums.OrderStatus `gorm:"column:status;not null" json:"status"`
	Date    time.Time         `gorm:"column:date;not null" json:"date"`
}
