package categories

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cleanmart/backend/pkg/db"
	"github.com/cleanmart/backend/pkg/db/models"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

const (
	msgDuplicateCategory    = "קטגוריה עם שם זה כבר קיימת"
	msgCategoryNotFound     = "Category not found"
	msgSubcategoriesInvalid = "All subcategories must have Hebrew and Arabic names"

	uniqueCategoryNamePair = "idx_categories_name_pair"
)

// Service exposes the category catalog operations.
type Service interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, input CreateInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddSubcategory(ctx context.Context, input AddSubcategoryInput) (*models.Category, error)
}

type repository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Save(ctx context.Context, category *models.Category) error
	ReplaceSubcategories(ctx context.Context, categoryID uuid.UUID, subs []models.Subcategory) error
	AppendSubcategory(ctx context.Context, sub *models.Subcategory) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
	logg *logger.Logger
}

// NewService wires the category service with its persistence dependency.
func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, stdErrors.New("categories: repository is required")
	}
	if logg == nil {
		return nil, stdErrors.New("categories: logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgCategoryNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
	}
	return category, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Category, error) {
	subs, err := buildSubcategories(uuid.Nil, input.Subcategories)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(input.Name),
		NameAr:        strings.TrimSpace(input.NameAr),
		Description:   input.Description,
		DescriptionAr: input.DescriptionAr,
		Image:         input.Image,
	}
	for i := range subs {
		subs[i].CategoryID = category.ID
	}
	category.Subcategories = subs

	if err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, uniqueCategoryNamePair) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, msgDuplicateCategory)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}

	s.logg.Info(s.logg.WithField(ctx, "category_id", category.ID.String()), "category.created")
	return category, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.NameAr != nil {
		category.NameAr = strings.TrimSpace(*input.NameAr)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.DescriptionAr != nil {
		category.DescriptionAr = *input.DescriptionAr
	}
	if input.Image != nil {
		category.Image = input.Image
	}

	if err := s.repo.Save(ctx, category); err != nil {
		if db.IsUniqueViolation(err, uniqueCategoryNamePair) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, msgDuplicateCategory)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating category")
	}

	if input.Subcategories != nil {
		subs, err := buildSubcategories(category.ID, *input.Subcategories)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceSubcategories(ctx, category.ID, subs); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replacing subcategories")
		}
		category.Subcategories = subs
	}

	return category, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting category")
	}
	s.logg.Info(s.logg.WithField(ctx, "category_id", id.String()), "category.deleted")
	return nil
}

func (s *service) AddSubcategory(ctx context.Context, input AddSubcategoryInput) (*models.Category, error) {
	category, err := s.Get(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	nameAr := strings.TrimSpace(input.NameAr)
	if name == "" || nameAr == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgSubcategoriesInvalid)
	}

	sub := &models.Subcategory{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       name,
		NameAr:     nameAr,
	}
	if err := s.repo.AppendSubcategory(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "appending subcategory")
	}

	category.Subcategories = append(category.Subcategories, *sub)
	return category, nil
}

// buildSubcategories validates the bilingual name pairs and assigns stable
// ids plus list positions.
func buildSubcategories(categoryID uuid.UUID, inputs []SubcategoryInput) ([]models.Subcategory, error) {
	subs := make([]models.Subcategory, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.Name)
		nameAr := strings.TrimSpace(in.NameAr)
		if name == "" || nameAr == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, msgSubcategoriesInvalid)
		}
		subs = append(subs, models.Subcategory{
			ID:         uuid.New(),
			CategoryID: categoryID,
			Name:       name,
			NameAr:     nameAr,
			Position:   i,
		})
	}
	return subs, nil
}
