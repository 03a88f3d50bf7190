package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbtypes "github.com/cleanmart/backend/pkg/db/types"

	"github.com/cleanmart/backend/internal/customers"
	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

type stubProducts struct {
	byID map[uuid.UUID]*models.Product
}

func (s *stubProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubOrders struct {
	created   []*models.Order
	createErr error
}

func (s *stubOrders) Create(_ context.Context, order *models.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, order)
	return nil
}

type stubResolver struct {
	userCalls    int
	visitorCalls int
}

func (s *stubResolver) ResolveUser(_ context.Context, email string, contact models.OrderContact) (*customers.Customer, error) {
	s.userCalls++
	return &customers.Customer{ID: uuid.New(), Type: enums.CustomerTypeUser, Email: email, LastOrderDetails: contact}, nil
}

func (s *stubResolver) ResolveVisitor(_ context.Context, email string, contact models.OrderContact) (*customers.Customer, error) {
	s.visitorCalls++
	return &customers.Customer{ID: uuid.New(), Type: enums.CustomerTypeVisitor, Email: email, LastOrderDetails: contact}, nil
}

func validInput(productID uuid.UUID) Input {
	return Input{
		Items: []ItemInput{{ProductID: productID, Quantity: 2}},
		Customer: CustomerForm{
			FullName: "דנה לוי",
			Email:    "dana@example.com",
			Phone:    "0501234567",
			Address:  "הרצל 10",
			City:     "חיפה",
		},
		PaymentMethod: enums.PaymentMethodCash,
	}
}

func newFixture(t *testing.T) (*stubProducts, *stubOrders, *stubResolver, Service, uuid.UUID) {
	t.Helper()
	product := &models.Product{
		ID:             uuid.New(),
		Name:           "נוזל רצפות",
		NameAr:         "سائل أرضيات",
		Price:          decimal.RequireFromString("25.90"),
		SalePercentage: 10,
		Images:         dbtypes.StringList{"floor.jpg"},
	}
	products := &stubProducts{byID: map[uuid.UUID]*models.Product{product.ID: product}}
	orders := &stubOrders{}
	resolver := &stubResolver{}
	svc, err := NewService(products, orders, resolver, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return products, orders, resolver, svc, product.ID
}

func TestSubmitCreatesOrderWithSnapshots(t *testing.T) {
	_, orders, resolver, svc, productID := newFixture(t)

	order, err := svc.Submit(context.Background(), "", validInput(productID))
	require.NoError(t, err)

	require.Len(t, orders.created, 1)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	require.Len(t, order.Timeline, 1)
	assert.Equal(t, enums.OrderStatusPending, order.Timeline[0].Status)

	// 25.90 with 10% off floors to 23 per unit, two units
	require.Len(t, order.Items, 1)
	assert.EqualValues(t, 23, order.Items[0].UnitPrice)
	assert.EqualValues(t, 46, order.Total)
	assert.Equal(t, "floor.jpg", order.Items[0].Image)

	assert.Equal(t, enums.CustomerTypeVisitor, order.CustomerType)
	assert.Equal(t, 1, resolver.visitorCalls)
	assert.Zero(t, resolver.userCalls)
}

func TestSubmitResolvesUserWhenSessionPresent(t *testing.T) {
	_, _, resolver, svc, productID := newFixture(t)

	order, err := svc.Submit(context.Background(), "dana@idp.example", validInput(productID))
	require.NoError(t, err)

	assert.Equal(t, enums.CustomerTypeUser, order.CustomerType)
	assert.Equal(t, 1, resolver.userCalls)
	assert.Zero(t, resolver.visitorCalls)
}

func TestSubmitAccumulatesValidationFailures(t *testing.T) {
	_, orders, resolver, svc, productID := newFixture(t)

	input := validInput(productID)
	input.Customer.Email = "no-at-sign"
	input.Customer.Phone = "12345"
	input.PaymentMethod = enums.PaymentMethodCard
	input.Card = &CardForm{Number: "1234", Expiry: "13/99", CVV: "12"}

	_, err := svc.Submit(context.Background(), "", input)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().([]string)
	require.True(t, ok)
	// email, phone, card number, cvv, expiry all reported in one pass
	assert.Len(t, details, 5)

	// no side effects on validation failure
	assert.Empty(t, orders.created)
	assert.Zero(t, resolver.visitorCalls)
	assert.Zero(t, resolver.userCalls)
}

func TestSubmitRejectsExpiredCard(t *testing.T) {
	_, _, _, svc, productID := newFixture(t)

	input := validInput(productID)
	input.PaymentMethod = enums.PaymentMethodCard
	currentMonth := time.Now().UTC().Format("01/06")
	input.Card = &CardForm{Number: "4580123412341234", Expiry: currentMonth, CVV: "123"}

	_, err := svc.Submit(context.Background(), "", input)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().([]string)
	require.True(t, ok)
	assert.Contains(t, details, "card expiry must be in the future")
}

func TestSubmitCardSnapshotStored(t *testing.T) {
	_, orders, _, svc, productID := newFixture(t)

	input := validInput(productID)
	input.PaymentMethod = enums.PaymentMethodCard
	future := time.Now().AddDate(2, 0, 0).Format("01/06")
	input.Card = &CardForm{Number: "4580123412341234", Expiry: future, CVV: "123"}

	order, err := svc.Submit(context.Background(), "", input)
	require.NoError(t, err)

	require.NotNil(t, order.PaymentInfo)
	assert.Equal(t, "4580123412341234", order.PaymentInfo.CardNumber)
	require.Len(t, orders.created, 1)
}

func TestSubmitEmptyCart(t *testing.T) {
	_, _, _, svc, productID := newFixture(t)

	input := validInput(productID)
	input.Items = nil

	_, err := svc.Submit(context.Background(), "", input)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSubmitUnknownProduct(t *testing.T) {
	_, orders, _, svc, _ := newFixture(t)

	_, err := svc.Submit(context.Background(), "", validInput(uuid.New()))

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Empty(t, orders.created)
}

func TestSubmitPersistenceFailureCreatesNothing(t *testing.T) {
	_, orders, _, svc, productID := newFixture(t)
	orders.createErr = assert.AnError

	_, err := svc.Submit(context.Background(), "", validInput(productID))

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInternal, typed.Code())
	assert.Empty(t, orders.created)
}

func TestPhoneValidation(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"0501234567", true},
		{"029876543", true},
		{"0512345678", true},
		{"03 1234567", false},
		{"05012345", false},
		{"0298765432", false},
		{"+972501234567", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, phonePattern.MatchString(tc.phone), "phone %q", tc.phone)
	}
}
