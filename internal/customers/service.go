package customers

import (
	"context"
	stdErrors "errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

// Customer is the tagged union over registered users and visitors. Type
// carries the discriminant.
type Customer struct {
	ID               uuid.UUID           `json:"id"`
	Type             enums.CustomerType  `json:"type"`
	Email            string              `json:"email"`
	LastOrderDetails models.OrderContact `json:"lastOrderDetails"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// Service resolves and lists checkout customers.
type Service interface {
	ResolveUser(ctx context.Context, sessionEmail string, contact models.OrderContact) (*Customer, error)
	ResolveVisitor(ctx context.Context, email string, contact models.OrderContact) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
}

type repository interface {
	UpsertUser(ctx context.Context, email string, contact models.OrderContact) (*models.User, error)
	UpsertVisitor(ctx context.Context, email string, contact models.OrderContact) (*models.Visitor, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListVisitors(ctx context.Context) ([]models.Visitor, error)
}

type service struct {
	repo repository
	logg *logger.Logger
}

// NewService wires the customer service with its persistence dependency.
func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, stdErrors.New("customers: repository is required")
	}
	if logg == nil {
		return nil, stdErrors.New("customers: logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// ResolveUser upserts a registered user keyed by the verified session email.
func (s *service) ResolveUser(ctx context.Context, sessionEmail string, contact models.OrderContact) (*Customer, error) {
	user, err := s.repo.UpsertUser(ctx, sessionEmail, contact)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upserting user")
	}
	return &Customer{
		ID:               user.ID,
		Type:             enums.CustomerTypeUser,
		Email:            user.Email,
		LastOrderDetails: user.LastOrderDetails,
		CreatedAt:        user.CreatedAt,
	}, nil
}

// ResolveVisitor upserts an anonymous visitor keyed by the submitted email.
func (s *service) ResolveVisitor(ctx context.Context, email string, contact models.OrderContact) (*Customer, error) {
	visitor, err := s.repo.UpsertVisitor(ctx, email, contact)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upserting visitor")
	}
	return &Customer{
		ID:               visitor.ID,
		Type:             enums.CustomerTypeVisitor,
		Email:            visitor.Email,
		LastOrderDetails: visitor.LastOrderDetails,
		CreatedAt:        visitor.CreatedAt,
	}, nil
}

// List merges both customer kinds for the admin customers page, newest
// first.
func (s *service) List(ctx context.Context) ([]Customer, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing users")
	}
	visitors, err := s.repo.ListVisitors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing visitors")
	}

	merged := make([]Customer, 0, len(users)+len(visitors))
	for _, u := range users {
		merged = append(merged, Customer{
			ID:               u.ID,
			Type:             enums.CustomerTypeUser,
			Email:            u.Email,
			LastOrderDetails: u.LastOrderDetails,
			CreatedAt:        u.CreatedAt,
		})
	}
	for _, v := range visitors {
		merged = append(merged, Customer{
			ID:               v.ID,
			Type:             enums.CustomerTypeVisitor,
			Email:            v.Email,
			LastOrderDetails: v.LastOrderDetails,
			CreatedAt:        v.CreatedAt,
		})
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}
