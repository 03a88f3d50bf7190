package orders

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
	"github.com/cleanmart/backend/pkg/pagination"
)

const msgOrderNotFound = "Order not found"

// ListResult is one admin page of orders.
type ListResult struct {
	Orders []models.Order  `json:"orders"`
	Meta   pagination.Meta `json:"meta"`
}

// Service drives the order lifecycle.
type Service interface {
	List(ctx context.Context, status *enums.OrderStatus, params pagination.Params) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*models.Order, error)
}

type repository interface {
	List(ctx context.Context, status *enums.OrderStatus, params pagination.Params) ([]models.Order, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Transition(ctx context.Context, order *models.Order, target enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo repository
	logg *logger.Logger
}

// NewService wires the order service with its persistence dependency.
func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, stdErrors.New("orders: repository is required")
	}
	if logg == nil {
		return nil, stdErrors.New("orders: logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context, status *enums.OrderStatus, params pagination.Params) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, status, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return &ListResult{
		Orders: rows,
		Meta:   pagination.MetaFor(pagination.Normalize(params), total),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgOrderNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return order, nil
}

// UpdateStatus applies one lifecycle transition. Illegal transitions are
// rejected before any write, and the status update plus timeline append
// happen in one transaction, so a failed write leaves the order untouched.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", target))
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(
			pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, target),
		)
	}

	updated, err := s.repo.Transition(ctx, order, target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}

	ctx = s.logg.WithOrderID(ctx, id.String())
	s.logg.Info(s.logg.WithField(ctx, "status", target.String()), "order.status_changed")
	return updated, nil
}
