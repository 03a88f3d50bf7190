package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbtypes "github.com/cleanmart/backend/pkg/db/types"

	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusEvent{},
	))
	return conn
}

func seedCompleted(t *testing.T, conn *gorm.DB) (*models.Order, *models.Product) {
	t.Helper()

	product := models.Product{
		ID:            uuid.New(),
		Name:          "נוזל רצפות",
		NameAr:        "سائل أرضيات",
		Description:   "d",
		DescriptionAr: "d",
		Price:         decimal.NewFromInt(25),
		Stock:         10,
		Unit:          "liter",
		UnitAmount:    decimal.NewFromInt(1),
		Images:        dbtypes.StringList{"a.jpg"},
	}
	require.NoError(t, conn.Create(&product).Error)

	order := models.Order{
		ID:            uuid.New(),
		Total:         50,
		CustomerID:    uuid.New(),
		CustomerType:  enums.CustomerTypeVisitor,
		PaymentMethod: enums.PaymentMethodCash,
		Status:        enums.OrderStatusProcessing,
		Items: []models.OrderItem{
			{ID: uuid.New(), ProductID: product.ID, Name: product.Name, NameAr: product.NameAr, UnitPrice: 25, Quantity: 2},
		},
		Timeline: []models.OrderStatusEvent{
			{ID: uuid.New(), Status: enums.OrderStatusPending, Date: time.Now().Add(-2 * time.Hour)},
			{ID: uuid.New(), Status: enums.OrderStatusProcessing, Date: time.Now().Add(-time.Hour)},
		},
	}
	require.NoError(t, conn.Create(&order).Error)
	return &order, &product
}

func TestTransitionWritesStatusAndTimelineAtomically(t *testing.T) {
	conn := testDB(t)
	repo := NewRepository(conn)

	order, product := seedCompleted(t, conn)

	updated, err := repo.Transition(context.Background(), order, enums.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCompleted, updated.Status)
	assert.Len(t, updated.Timeline, 3)

	stored, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCompleted, stored.Status)
	require.Len(t, stored.Timeline, 3)
	assert.Equal(t, enums.OrderStatusCompleted, stored.Timeline[2].Status)

	// completing bumps the sales counter by the sold quantity
	var got models.Product
	require.NoError(t, conn.First(&got, "id = ?", product.ID).Error)
	assert.Equal(t, 2, got.Sales)
}

func TestCompletedTotals(t *testing.T) {
	conn := testDB(t)
	repo := NewRepository(conn)

	order, _ := seedCompleted(t, conn)
	_, err := repo.Transition(context.Background(), order, enums.OrderStatusCompleted)
	require.NoError(t, err)

	// a pending order that must not count
	pending := models.Order{
		ID:            uuid.New(),
		Total:         999,
		CustomerID:    uuid.New(),
		CustomerType:  enums.CustomerTypeUser,
		PaymentMethod: enums.PaymentMethodCash,
		Status:        enums.OrderStatusPending,
	}
	require.NoError(t, conn.Create(&pending).Error)

	count, sum, err := repo.CompletedTotals(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.EqualValues(t, 50, sum)

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[enums.OrderStatusCompleted])
	assert.EqualValues(t, 1, counts[enums.OrderStatusPending])
}
