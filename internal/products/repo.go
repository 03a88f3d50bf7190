package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	"github.com/cleanmart/backend/pkg/pagination"
)

// listColumns is the listing projection. Feature lists are detail-view only
// and stay out of the catalog page payload.
var listColumns = []string{
	"id", "name", "name_ar", "description", "description_ar",
	"price", "sale_percentage", "stock", "unit", "unit_amount",
	"images", "category_id", "subcategory_id", "sales", "created_at", "updated_at",
}

// Repository handles product persistence and the catalog query builder.
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

// List runs the catalog query: every present filter ANDs into the where
// clause, then the page is cut with offset pagination. The total count is
// taken before limit/offset so page math stays correct.
func (r *Repository) List(ctx context.Context, q ListQuery) ([]models.Product, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Product{})
	base = applyFilters(base, q)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := pagination.Normalize(pagination.Params{Page: q.Page, Limit: q.Limit})

	var rows []models.Product
	err := base.
		Select(listColumns).
		Order(orderClause(q.Sort)).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func applyFilters(tx *gorm.DB, q ListQuery) *gorm.DB {
	if q.Category != nil {
		tx = tx.Where("category_id = ?", *q.Category)
	}
	if q.Subcategory != nil {
		tx = tx.Where("subcategory_id = ?", *q.Subcategory)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(name_ar) LIKE ?", pattern, pattern)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}
	if q.InStock != nil && *q.InStock {
		tx = tx.Where("stock > 0")
	}
	return tx
}

// orderClause maps a sort option to SQL. Name sorts order on the Arabic
// name, matching the storefront's primary display language.
func orderClause(sort enums.ProductSort) string {
	switch sort {
	case enums.ProductSortPriceAsc:
		return "price ASC"
	case enums.ProductSortPriceDesc:
		return "price DESC"
	case enums.ProductSortNameAsc:
		return "name_ar ASC"
	case enums.ProductSortNameDesc:
		return "name_ar DESC"
	default:
		return "created_at DESC"
	}
}

// FindByID loads one product with all detail fields.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SalesRanking returns products ordered by their cumulative sales counter.
func (r *Repository) SalesRanking(ctx context.Context, limit int) ([]models.Product, error) {
	tx := r.db.WithContext(ctx).
		Select(listColumns).
		Order("sales DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var rows []models.Product
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// LowStock returns products at or below the given stock threshold.
func (r *Repository) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Select(listColumns).
		Where("stock <= ?", threshold).
		Order("stock ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// IncrementSales bumps the cumulative sales counter by the sold quantity.
func (r *Repository) IncrementSales(ctx context.Context, productID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("sales", gorm.Expr("sales + ?", quantity)).
		Error
}
