package enums

import "fmt"

// EmailKind selects which transactional email template an order triggers.
type EmailKind string

const (
	EmailKindCustomer EmailKind = "customer"
	EmailKindAdmin    EmailKind = "admin"
)

var validEmailKinds = []EmailKind{
	EmailKindCustomer,
	EmailKindAdmin,
}

// String implements fmt.Stringer.
func (e EmailKind) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EmailKind.
func (e EmailKind) IsValid() bool {
	for _, candidate := range validEmailKinds {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEmailKind converts raw input into an EmailKind.
func ParseEmailKind(value string) (EmailKind, error) {
	for _, candidate := range validEmailKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid email kind %q", value)
}
