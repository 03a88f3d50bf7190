package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

type stubOrders struct {
	completedCount int64
	completedSum   int64
	counts         map[enums.OrderStatus]int64
	totalsErr      error
}

func (s *stubOrders) CompletedTotals(context.Context) (int64, int64, error) {
	return s.completedCount, s.completedSum, s.totalsErr
}

func (s *stubOrders) CountByStatus(context.Context) (map[enums.OrderStatus]int64, error) {
	return s.counts, nil
}

type stubProducts struct {
	ranking  []models.Product
	lowStock []models.Product

	lowStockThreshold int
}

func (s *stubProducts) SalesRanking(context.Context, int) ([]models.Product, error) {
	return s.ranking, nil
}

func (s *stubProducts) LowStock(_ context.Context, threshold int) ([]models.Product, error) {
	s.lowStockThreshold = threshold
	return s.lowStock, nil
}

func TestSummaryAggregatesAllReads(t *testing.T) {
	orders := &stubOrders{
		completedCount: 4,
		completedSum:   403,
		counts: map[enums.OrderStatus]int64{
			enums.OrderStatusPending:   2,
			enums.OrderStatusCompleted: 4,
		},
	}
	best := models.Product{
		ID:    uuid.New(),
		Name:  "נוזל רצפות",
		Price: decimal.NewFromInt(20),
		Sales: 7,
	}
	low := models.Product{ID: uuid.New(), Name: "אקונומיקה", Stock: 2}
	products := &stubProducts{
		ranking:  []models.Product{best},
		lowStock: []models.Product{low},
	}

	svc, err := NewService(orders, products, 5, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 403, summary.TotalSales)
	assert.EqualValues(t, 4, summary.CompletedOrders)
	// 403 / 4 floors to 100
	assert.EqualValues(t, 100, summary.AverageOrderValue)
	assert.EqualValues(t, 2, summary.OrdersByStatus[enums.OrderStatusPending])

	require.Len(t, summary.TopProducts, 1)
	assert.EqualValues(t, 140, summary.TopProducts[0].Revenue)

	require.Len(t, summary.LowStock, 1)
	assert.Equal(t, low.ID, summary.LowStock[0].ID)
	assert.Equal(t, 5, products.lowStockThreshold)
}

func TestSummaryNoCompletedOrders(t *testing.T) {
	svc, err := NewService(
		&stubOrders{counts: map[enums.OrderStatus]int64{}},
		&stubProducts{},
		0,
		logger.New(logger.Options{ServiceName: "test"}),
	)
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.AverageOrderValue)
	assert.Zero(t, summary.TotalSales)
}

func TestSummaryFailsWhenAnyReadFails(t *testing.T) {
	svc, err := NewService(
		&stubOrders{totalsErr: assert.AnError},
		&stubProducts{},
		5,
		logger.New(logger.Options{ServiceName: "test"}),
	)
	require.NoError(t, err)

	_, err = svc.Summary(context.Background())

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInternal, typed.Code())
}
