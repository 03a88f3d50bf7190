package checkout

import (
	"github.com/google/uuid"

	"github.com/cleanmart/backend/pkg/enums"
)

// ItemInput is one cart line submitted at checkout.
type ItemInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CustomerForm is the contact form filled by the shopper.
type CustomerForm struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
}

// CardForm is the card detail snapshot collected for card payments.
type CardForm struct {
	Number string `json:"cardNumber" validate:"required"`
	Expiry string `json:"expiryDate" validate:"required"`
	CVV    string `json:"cvv" validate:"required"`
}

// Input is the full checkout submission.
type Input struct {
	Items         []ItemInput         `json:"items" validate:"required,min=1,dive"`
	Customer      CustomerForm        `json:"customer" validate:"required"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod" validate:"required"`
	Card          *CardForm           `json:"card,omitempty"`
}
