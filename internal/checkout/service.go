package checkout

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cleanmart/backend/internal/customers"
	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

// Service turns a validated checkout submission into exactly one order.
type Service interface {
	Submit(ctx context.Context, sessionEmail string, input Input) (*models.Order, error)
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type orderCreator interface {
	Create(ctx context.Context, order *models.Order) error
}

type customerResolver interface {
	ResolveUser(ctx context.Context, sessionEmail string, contact models.OrderContact) (*customers.Customer, error)
	ResolveVisitor(ctx context.Context, email string, contact models.OrderContact) (*customers.Customer, error)
}

type service struct {
	products  productFinder
	orders    orderCreator
	customers customerResolver
	logg      *logger.Logger
	now       func() time.Time
}

// NewService wires the checkout orchestrator.
func NewService(products productFinder, orders orderCreator, resolver customerResolver, logg *logger.Logger) (Service, error) {
	if products == nil {
		return nil, stdErrors.New("checkout: product finder is required")
	}
	if orders == nil {
		return nil, stdErrors.New("checkout: order creator is required")
	}
	if resolver == nil {
		return nil, stdErrors.New("checkout: customer resolver is required")
	}
	if logg == nil {
		return nil, stdErrors.New("checkout: logger is required")
	}
	return &service{
		products:  products,
		orders:    orders,
		customers: resolver,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// Submit runs the checkout steps in order: validate the form, resolve the
// customer (one upsert), snapshot the items, then create the order. Nothing
// is retried; a failure at any step leaves no order behind.
func (s *service) Submit(ctx context.Context, sessionEmail string, input Input) (*models.Order, error) {
	if err := validateForm(input, s.now()); err != nil {
		return nil, err
	}

	contact := models.OrderContact{
		Name:    input.Customer.FullName,
		Phone:   input.Customer.Phone,
		Address: input.Customer.Address,
		City:    input.Customer.City,
	}

	var customer *customers.Customer
	var err error
	if sessionEmail != "" {
		customer, err = s.customers.ResolveUser(ctx, sessionEmail, contact)
	} else {
		customer, err = s.customers.ResolveVisitor(ctx, input.Customer.Email, contact)
	}
	if err != nil {
		return nil, err
	}

	items, total, err := s.snapshotItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:    uuid.New(),
		Items: items,
		Total: total,
		CustomerInfo: models.CustomerInfo{
			FullName: input.Customer.FullName,
			Email:    input.Customer.Email,
			Phone:    input.Customer.Phone,
			Address:  input.Customer.Address,
			City:     input.Customer.City,
		},
		CustomerID:    customer.ID,
		CustomerType:  customer.Type,
		PaymentMethod: input.PaymentMethod,
		Status:        enums.OrderStatusPending,
		Timeline: []models.OrderStatusEvent{
			{ID: uuid.New(), Status: enums.OrderStatusPending, Date: s.now().UTC()},
		},
	}
	if input.PaymentMethod == enums.PaymentMethodCard && input.Card != nil {
		order.PaymentInfo = &models.PaymentInfo{
			CardNumber: input.Card.Number,
			ExpiryDate: input.Card.Expiry,
			CVV:        input.Card.CVV,
		}
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}

	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	ctx = s.logg.WithCustomerID(ctx, customer.ID.String())
	s.logg.Info(ctx, "checkout.order_created")
	return order, nil
}

// snapshotItems freezes each line at its current effective price and sums
// the total. Line totals already floor per unit, so the order total is the
// floored sum of effective line totals.
func (s *service) snapshotItems(ctx context.Context, inputs []ItemInput) ([]models.OrderItem, int64, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	var total int64
	for _, in := range inputs {
		product, err := s.products.FindByID(ctx, in.ProductID)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, pkgerrors.New(
					pkgerrors.CodeValidation,
					fmt.Sprintf("product %s is no longer available", in.ProductID),
				)
			}
			return nil, 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product for checkout")
		}

		unitPrice := product.EffectivePrice()
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		items = append(items, models.OrderItem{
			ID:        uuid.New(),
			ProductID: product.ID,
			Name:      product.Name,
			NameAr:    product.NameAr,
			UnitPrice: unitPrice,
			Quantity:  in.Quantity,
			Image:     image,
		})
		total += unitPrice * int64(in.Quantity)
	}
	return items, total, nil
}
