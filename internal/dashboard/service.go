package dashboard

import (
	"context"
	stdErrors "errors"

	"golang.org/x/sync/errgroup"

	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

const defaultTopProducts = 10

// TopProduct is one row of the best-sellers table.
type TopProduct struct {
	Product models.Product `json:"product"`
	Revenue int64          `json:"revenue"`
}

// Summary is the admin sales dashboard payload.
type Summary struct {
	TotalSales        int64                       `json:"totalSales"`
	CompletedOrders   int64                       `json:"completedOrders"`
	OrdersByStatus    map[enums.OrderStatus]int64 `json:"ordersByStatus"`
	AverageOrderValue int64                       `json:"averageOrderValue"`
	TopProducts       []TopProduct                `json:"topProducts"`
	LowStock          []models.Product            `json:"lowStock"`
}

type orderReader interface {
	CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error)
	CompletedTotals(ctx context.Context) (int64, int64, error)
}

type productReader interface {
	SalesRanking(ctx context.Context, limit int) ([]models.Product, error)
	LowStock(ctx context.Context, threshold int) ([]models.Product, error)
}

// Service aggregates sales figures for the admin dashboard.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	orders            orderReader
	products          productReader
	lowStockThreshold int
	logg              *logger.Logger
}

// NewService wires the dashboard aggregator.
func NewService(orders orderReader, products productReader, lowStockThreshold int, logg *logger.Logger) (Service, error) {
	if orders == nil {
		return nil, stdErrors.New("dashboard: order reader is required")
	}
	if products == nil {
		return nil, stdErrors.New("dashboard: product reader is required")
	}
	if logg == nil {
		return nil, stdErrors.New("dashboard: logger is required")
	}
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}
	return &service{
		orders:            orders,
		products:          products,
		lowStockThreshold: lowStockThreshold,
		logg:              logg,
	}, nil
}

// Summary fans the order and product reads out concurrently and waits for
// all of them before assembling the payload. The first failure cancels the
// rest and fails the whole call.
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	var (
		completedCount int64
		completedSum   int64
		statusCounts   map[enums.OrderStatus]int64
		ranking        []models.Product
		lowStock       []models.Product
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		completedCount, completedSum, err = s.orders.CompletedTotals(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		statusCounts, err = s.orders.CountByStatus(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		ranking, err = s.products.SalesRanking(groupCtx, defaultTopProducts)
		return err
	})
	group.Go(func() error {
		var err error
		lowStock, err = s.products.LowStock(groupCtx, s.lowStockThreshold)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building dashboard summary")
	}

	summary := &Summary{
		TotalSales:      completedSum,
		CompletedOrders: completedCount,
		OrdersByStatus:  statusCounts,
		LowStock:        lowStock,
	}
	if completedCount > 0 {
		summary.AverageOrderValue = completedSum / completedCount
	}

	summary.TopProducts = make([]TopProduct, 0, len(ranking))
	for _, product := range ranking {
		summary.TopProducts = append(summary.TopProducts, TopProduct{
			Product: product,
			Revenue: product.EffectivePrice() * int64(product.Sales),
		})
	}

	return summary, nil
}
