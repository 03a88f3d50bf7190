package checkout

import (
	stdErrors "errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/cleanmart/backend/pkg/enums"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
)

var (
	// 05xxxxxxxx mobile or 02xxxxxxx landline
	phonePattern  = regexp.MustCompile(`^(05[0-9]{8}|02[0-9]{7})$`)
	cardPattern   = regexp.MustCompile(`^[0-9]{16}$`)
	cvvPattern    = regexp.MustCompile(`^[0-9]{3}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
)

// validateForm checks every field locally and accumulates all failures so
// the shopper sees the full list at once instead of fixing one at a time.
func validateForm(input Input, now time.Time) error {
	var accumulated error

	if len(input.Items) == 0 {
		accumulated = multierr.Append(accumulated, stdErrors.New("cart is empty"))
	}
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			accumulated = multierr.Append(accumulated, fmt.Errorf("item %d: quantity must be positive", i))
		}
	}

	if strings.TrimSpace(input.Customer.FullName) == "" {
		accumulated = multierr.Append(accumulated, stdErrors.New("full name is required"))
	}
	if !strings.Contains(input.Customer.Email, "@") {
		accumulated = multierr.Append(accumulated, stdErrors.New("email must contain @"))
	}
	if !phonePattern.MatchString(input.Customer.Phone) {
		accumulated = multierr.Append(accumulated, stdErrors.New("phone must be an Israeli mobile (05xxxxxxxx) or landline (02xxxxxxx) number"))
	}
	if strings.TrimSpace(input.Customer.Address) == "" {
		accumulated = multierr.Append(accumulated, stdErrors.New("address is required"))
	}
	if strings.TrimSpace(input.Customer.City) == "" {
		accumulated = multierr.Append(accumulated, stdErrors.New("city is required"))
	}

	if !input.PaymentMethod.IsValid() {
		accumulated = multierr.Append(accumulated, fmt.Errorf("unknown payment method %q", input.PaymentMethod))
	}
	if input.PaymentMethod == enums.PaymentMethodCard {
		accumulated = multierr.Append(accumulated, validateCard(input.Card, now))
	}

	if accumulated == nil {
		return nil
	}

	details := make([]string, 0)
	for _, err := range multierr.Errors(accumulated) {
		details = append(details, err.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, accumulated, "checkout form is invalid").WithDetails(details)
}

func validateCard(card *CardForm, now time.Time) error {
	if card == nil {
		return stdErrors.New("card details are required for card payment")
	}

	var accumulated error
	if !cardPattern.MatchString(card.Number) {
		accumulated = multierr.Append(accumulated, stdErrors.New("card number must be exactly 16 digits"))
	}
	if !cvvPattern.MatchString(card.CVV) {
		accumulated = multierr.Append(accumulated, stdErrors.New("cvv must be exactly 3 digits"))
	}
	if err := validateExpiry(card.Expiry, now); err != nil {
		accumulated = multierr.Append(accumulated, err)
	}
	return accumulated
}

// validateExpiry requires MM/YY strictly in the future: a card expiring in
// the current month is rejected.
func validateExpiry(expiry string, now time.Time) error {
	match := expiryPattern.FindStringSubmatch(expiry)
	if match == nil {
		return stdErrors.New("expiry must be in MM/YY format")
	}

	parsed, err := time.Parse("01/06", expiry)
	if err != nil {
		return stdErrors.New("expiry must be in MM/YY format")
	}

	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	expiryMonth := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
	if !expiryMonth.After(currentMonth) {
		return stdErrors.New("card expiry must be in the future")
	}
	return nil
}
