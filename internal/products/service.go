package products

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbtypes "github.com/cleanmart/backend/pkg/db/types"

	"github.com/cleanmart/backend/pkg/db/models"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
	"github.com/cleanmart/backend/pkg/pagination"
)

const (
	msgProductNotFound  = "Product not found"
	msgFetchFailed      = "failed to fetch products"
	msgCategoryMissing  = "Referenced category does not exist"
	msgSubcategoryStray = "Subcategory does not belong to the referenced category"

	// copy markers appended to the names of a duplicated product
	copyMarkerHe = " (עותק)"
	copyMarkerAr = " (عملية)"
)

// Service exposes the catalog and its admin operations.
type Service interface {
	List(ctx context.Context, q ListQuery) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Duplicate(ctx context.Context, id uuid.UUID) (*models.Product, error)
	SalesRanking(ctx context.Context, limit int) ([]models.Product, error)
}

type repository interface {
	List(ctx context.Context, q ListQuery) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	SalesRanking(ctx context.Context, limit int) ([]models.Product, error)
}

// categoryFinder resolves category references during create/update.
type categoryFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type service struct {
	repo       repository
	categories categoryFinder
	logg       *logger.Logger
}

// NewService wires the product service with its dependencies.
func NewService(repo repository, categories categoryFinder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, stdErrors.New("products: repository is required")
	}
	if categories == nil {
		return nil, stdErrors.New("products: category finder is required")
	}
	if logg == nil {
		return nil, stdErrors.New("products: logger is required")
	}
	return &service{repo: repo, categories: categories, logg: logg}, nil
}

func (s *service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, msgFetchFailed)
	}
	params := pagination.Normalize(pagination.Params{Page: q.Page, Limit: q.Limit})
	return &ListResult{
		Products: rows,
		Meta:     pagination.MetaFor(params, total),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgProductNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	if err := validateRanges(input.Price, input.SalePercentage, input.Stock, input.UnitAmount, len(input.Images)); err != nil {
		return nil, err
	}
	if err := s.resolveCategoryRefs(ctx, input.CategoryID, input.SubcategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(input.Name),
		NameAr:         strings.TrimSpace(input.NameAr),
		Description:    input.Description,
		DescriptionAr:  input.DescriptionAr,
		Price:          input.Price,
		SalePercentage: input.SalePercentage,
		Stock:          input.Stock,
		Unit:           input.Unit,
		UnitAmount:     input.UnitAmount,
		Images:         dbtypes.StringList(input.Images),
		CategoryID:     input.CategoryID,
		SubcategoryID:  input.SubcategoryID,
		FeaturesHe:     dbtypes.StringList(input.FeaturesHe),
		FeaturesAr:     dbtypes.StringList(input.FeaturesAr),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID.String()), "product.created")
	return product, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(product, input)

	if err := validateRanges(product.Price, product.SalePercentage, product.Stock, product.UnitAmount, len(product.Images)); err != nil {
		return nil, err
	}
	if input.CategoryID != nil || input.SubcategoryID != nil {
		if err := s.resolveCategoryRefs(ctx, product.CategoryID, product.SubcategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	return product, nil
}

func applyUpdate(product *models.Product, input UpdateInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.NameAr != nil {
		product.NameAr = strings.TrimSpace(*input.NameAr)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.DescriptionAr != nil {
		product.DescriptionAr = *input.DescriptionAr
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.SalePercentage != nil {
		product.SalePercentage = *input.SalePercentage
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.UnitAmount != nil {
		product.UnitAmount = *input.UnitAmount
	}
	if input.Images != nil {
		product.Images = dbtypes.StringList(*input.Images)
	}
	if input.FeaturesHe != nil {
		product.FeaturesHe = dbtypes.StringList(*input.FeaturesHe)
	}
	if input.FeaturesAr != nil {
		product.FeaturesAr = dbtypes.StringList(*input.FeaturesAr)
	}
	if input.ClearCategory {
		product.CategoryID = nil
		product.SubcategoryID = nil
		return
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.SubcategoryID != nil {
		product.SubcategoryID = input.SubcategoryID
	}
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, msgProductNotFound)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	s.logg.Info(s.logg.WithField(ctx, "product_id", id.String()), "product.deleted")
	return nil
}

// Duplicate clones a product under a new id. The clone gets copy markers on
// both names, a zeroed sales counter, and no active sale.
func (s *service) Duplicate(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := *source
	clone.ID = uuid.New()
	clone.Name = source.Name + copyMarkerHe
	clone.NameAr = source.NameAr + copyMarkerAr
	clone.Sales = 0
	clone.SalePercentage = 0
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}

	if err := s.repo.Create(ctx, &clone); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "duplicating product")
	}
	return &clone, nil
}

func (s *service) SalesRanking(ctx context.Context, limit int) ([]models.Product, error) {
	rows, err := s.repo.SalesRanking(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, msgFetchFailed)
	}
	return rows, nil
}

// resolveCategoryRefs confirms the category exists and that a subcategory,
// when given, actually belongs to it.
func (s *service) resolveCategoryRefs(ctx context.Context, categoryID, subcategoryID *uuid.UUID) error {
	if categoryID == nil {
		if subcategoryID != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, msgSubcategoryStray)
		}
		return nil
	}

	category, err := s.categories.FindByID(ctx, *categoryID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, msgCategoryMissing)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving category")
	}

	if subcategoryID == nil {
		return nil
	}
	for _, sub := range category.Subcategories {
		if sub.ID == *subcategoryID {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, msgSubcategoryStray)
}

func validateRanges(price decimal.Decimal, salePercentage, stock int, unitAmount decimal.Decimal, imageCount int) error {
	details := map[string]string{}
	if price.IsNegative() {
		details["price"] = "must be zero or positive"
	}
	if salePercentage < 0 || salePercentage > 100 {
		details["salePercentage"] = "must be between 0 and 100"
	}
	if stock < 0 {
		details["stock"] = "must be zero or positive"
	}
	if unitAmount.IsNegative() {
		details["unitAmount"] = "must be zero or positive"
	}
	if imageCount < 1 {
		details["images"] = "at least one image is required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product fields").WithDetails(details)
	}
	return nil
}
