package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	"github.com/cleanmart/backend/pkg/pagination"
)

// Repository persists orders and their append-only timelines.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns one page of orders, newest first, optionally filtered by
// status.
func (r *Repository) List(ctx context.Context, status *enums.OrderStatus, params pagination.Params) ([]models.Order, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Order{})
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params = pagination.Normalize(params)

	var rows []models.Order
	err := base.
		Preload("Items").
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID loads one order with items and timeline.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		First(&order, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Create inserts the order with its items and initial timeline rows.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Transition updates the order status and appends one timeline row inside a
// single transaction, so the status and its history can never diverge. When
// the target status is completed it also bumps each line item product's
// cumulative sales counter.
func (r *Repository) Transition(ctx context.Context, order *models.Order, target enums.OrderStatus) (*models.Order, error) {
	event := models.OrderStatusEvent{
		ID:      uuid.New(),
		OrderID: order.ID,
		Status:  target,
		Date:    time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", target).
			Error
		if err != nil {
			return err
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		if target == enums.OrderStatusCompleted {
			for _, item := range order.Items {
				err := tx.Model(&models.Product{}).
					Where("id = ?", item.ProductID).
					UpdateColumn("sales", gorm.Expr("sales + ?", item.Quantity)).
					Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = target
	order.Timeline = append(order.Timeline, event)
	return order, nil
}

// CountByStatus returns how many orders sit in each lifecycle status.
func (r *Repository) CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error) {
	type row struct {
		Status enums.OrderStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	counts := make(map[enums.OrderStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// CompletedTotals returns the number of completed orders and their summed
// totals.
func (r *Repository) CompletedTotals(ctx context.Context) (int64, int64, error) {
	type row struct {
		Count int64
		Sum   int64
	}
	var result row
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) as count, COALESCE(SUM(total), 0) as sum").
		Where("status = ?", enums.OrderStatusCompleted).
		Scan(&result).
		Error
	if err != nil {
		return 0, 0, err
	}
	return result.Count, result.Sum, nil
}
