package products

import (
	"context"
	"testing"

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
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
	))
	return conn
}

func seedProduct(t *testing.T, conn *gorm.DB, name, nameAr string, price string, stock int, mutate func(*models.Product)) models.Product {
	t.Helper()
	product := models.Product{
		ID:            uuid.New(),
		Name:          name,
		NameAr:        nameAr,
		Description:   "desc",
		DescriptionAr: "desc",
		Price:         decimal.RequireFromString(price),
		Stock:         stock,
		Unit:          "liter",
		UnitAmount:    decimal.NewFromInt(1),
		Images:        dbtypes.StringList{"img.jpg"},
	}
	if mutate != nil {
		mutate(&product)
	}
	require.NoError(t, conn.Create(&product).Error)
	return product
}

func TestListSearchMatchesEitherName(t *testing.T) {
	conn := testDB(t)
	repo := NewRepository(conn)

	seedProduct(t, conn, "Floor Cleaner", "منظف أرضيات", "25.00", 10, nil)
	seedProduct(t, conn, "Glass Spray", "بخاخ زجاج", "18.50", 3, nil)
	seedProduct(t, conn, "Bleach", "مبيض", "12.00", 0, nil)

	rows, total, err := repo.List(context.Background(), ListQuery{Search: "  CLEANER "})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Floor Cleaner", rows[0].Name)

	rows, total, err = repo.List(context.Background(), ListQuery{Search: "زجاج"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Glass Spray", rows[0].Name)
}

func TestListFiltersCompose(t *testing.T) {
	conn := testDB(t)
	repo := NewRepository(conn)

	category := models.Category{ID: uuid.New(), Name: "ניקוי", NameAr: "تنظيف", Description: "d", DescriptionAr: "d"}
	require.NoError(t, conn.Create(&category).Error)

	inStock := seedProduct(t, conn, "Soap A", "صابون أ", "10.00", 5, func(p *models.Product) {
		p.CategoryID = &category.ID
	})
	seedProduct(t, conn, "Soap B", "صابون ب", "10.00", 0, func(p *models.Product) {
		p.CategoryID = &category.ID
	})
	seedProduct(t, conn, "Soap C", "صابون ج", "99.00", 5, func(p *models.Product) {
		p.CategoryID = &category.ID
	})

	truthy := true
	maxPrice := decimal.RequireFromString("50.00")
	rows, total, err := repo.List(context.Background(), ListQuery{
		Category: &category.ID,
		InStock:  &truthy,
		MaxPrice: &maxPrice,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, inStock.ID, rows[0].ID)
}

func TestListPriceBoundsAreInclusive(t *testing.T) {
	conn := testDB(t)
	repo := NewRepository(conn)

	seedProduct(t, conn, "A", "أ", "10.00", 1, nil)
	seedProduct(t, conn, "B", "ب", "20.00", 1, nil)
	seedProduct(t, conn, "C", "ج", "30.00", 1, nil)

	minPrice := decimal.RequireFromString("10.00")
	maxPrice := decimal.RequireFromString("20.00")
	_, total, err := repo.List(context.Background(), ListQuery{MinPrice: &minPrice, MaxPrice: &maxPrice})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestListSortsByPriceAndArabicName(t *testing.T) {
	conn := testDB(t)
	repo := NewRepository(conn)

	seedProduct(t, conn, "Mid", "ب", "20.00", 1, nil)
	seedProduct(t, conn, "Cheap", "أ", "5.00", 1, nil)
	seedProduct(t, conn, "Pricy", "ج", "80.00", 1, nil)

	rows, _, err := repo.List(context.Background(), ListQuery{Sort: enums.ProductSortPriceAsc})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Cheap", rows[0].Name)
	assert.Equal(t, "Pricy", rows[2].Name)

	rows, _, err = repo.List(context.Background(), ListQuery{Sort: enums.ProductSortNameDesc})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ج", rows[0].NameAr)
	assert.Equal(t, "أ", rows[2].NameAr)
}

func TestListPagination(t *testing.T) {
	conn := testDB(t)
	repo := NewRepository(conn)

	for i := 0; i < 5; i++ {
		seedProduct(t, conn, "P", "ع", "10.00", 1, nil)
	}

	rows, total, err := repo.List(context.Background(), ListQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, rows, 2)

	rows, total, err = repo.List(context.Background(), ListQuery{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, rows, 1)
}

func TestIncrementSales(t *testing.T) {
	conn := testDB(t)
	repo := NewRepository(conn)

	product := seedProduct(t, conn, "P", "ع", "10.00", 1, nil)
	require.NoError(t, repo.IncrementSales(context.Background(), product.ID, 3))
	require.NoError(t, repo.IncrementSales(context.Background(), product.ID, 2))

	got, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Sales)
}

func TestLowStock(t *testing.T) {
	conn := testDB(t)
	repo := NewRepository(conn)

	seedProduct(t, conn, "Low", "ع", "10.00", 2, nil)
	seedProduct(t, conn, "Edge", "ع", "10.00", 5, nil)
	seedProduct(t, conn, "Full", "ع", "10.00", 50, nil)

	rows, err := repo.LowStock(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Low", rows[0].Name)
}
