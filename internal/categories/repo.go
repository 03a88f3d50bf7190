package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cleanmart/backend/pkg/db/models"
)

// Repository wires together category persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns all categories with their subcategories in position order.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindByID loads a category with its subcategories.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&category, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category row with its subcategories.
func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Save updates an existing category row (without touching subcategories).
func (r *Repository) Save(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit("Subcategories").Save(category).Error
}

// ReplaceSubcategories swaps the full subcategory list of a category. Both
// statements run in one transaction so a failed insert never leaves the
// category without its previous list.
func (r *Repository) ReplaceSubcategories(ctx context.Context, categoryID uuid.UUID, subs []models.Subcategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.Subcategory{}).Error; err != nil {
			return err
		}
		if len(subs) == 0 {
			return nil
		}
		return tx.Create(&subs).Error
	})
}

// AppendSubcategory adds one subcategory at the end of the list.
func (r *Repository) AppendSubcategory(ctx context.Context, sub *models.Subcategory) error {
	var maxPosition int
	err := r.db.WithContext(ctx).
		Model(&models.Subcategory{}).
		Where("category_id = ?", sub.CategoryID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPosition).
		Error
	if err != nil {
		return err
	}
	sub.Position = maxPosition + 1
	return r.db.WithContext(ctx).Create(sub).Error
}

// DeleteCascade removes the category, its subcategories, and nullifies any
// product references, all inside one transaction so the catalog never
// carries dangling links.
func (r *Repository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			Updates(map[string]any{"category_id": nil, "subcategory_id": nil}).
			Error
		if err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Subcategory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Category{}).Error
	})
}
