package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbtypes "github.com/cleanmart/backend/pkg/db/types"

	"github.com/cleanmart/backend/pkg/db/models"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

type stubProductRepo struct {
	byID    map[uuid.UUID]*models.Product
	listErr error
	created []*models.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: map[uuid.UUID]*models.Product{}}
}

func (s *stubProductRepo) List(context.Context, ListQuery) ([]models.Product, int64, error) {
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	out := make([]models.Product, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) Create(_ context.Context, product *models.Product) error {
	s.byID[product.ID] = product
	s.created = append(s.created, product)
	return nil
}

func (s *stubProductRepo) Save(_ context.Context, product *models.Product) error {
	s.byID[product.ID] = product
	return nil
}

func (s *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *stubProductRepo) SalesRanking(context.Context, int) ([]models.Product, error) {
	return nil, nil
}

type stubCategoryFinder struct {
	byID map[uuid.UUID]*models.Category
}

func (s *stubCategoryFinder) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestService(t *testing.T, repo *stubProductRepo, finder *stubCategoryFinder) Service {
	t.Helper()
	if finder == nil {
		finder = &stubCategoryFinder{byID: map[uuid.UUID]*models.Category{}}
	}
	svc, err := NewService(repo, finder, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc
}

func TestCreateProductValidatesRanges(t *testing.T) {
	svc := newTestService(t, newStubProductRepo(), nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:           "נוזל רצפות",
		NameAr:         "سائل أرضيات",
		Description:    "d",
		DescriptionAr:  "d",
		Price:          decimal.NewFromInt(-5),
		SalePercentage: 120,
		Unit:           "liter",
		UnitAmount:     decimal.NewFromInt(1),
		Images:         nil,
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "price")
	assert.Contains(t, details, "salePercentage")
	assert.Contains(t, details, "images")
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	svc := newTestService(t, newStubProductRepo(), nil)

	missing := uuid.New()
	_, err := svc.Create(context.Background(), CreateInput{
		Name:          "מרכך",
		NameAr:        "منعم",
		Description:   "d",
		DescriptionAr: "d",
		Price:         decimal.NewFromInt(10),
		Unit:          "liter",
		UnitAmount:    decimal.NewFromInt(1),
		Images:        []string{"a.jpg"},
		CategoryID:    &missing,
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, msgCategoryMissing, typed.Message())
}

func TestCreateProductRejectsStraySubcategory(t *testing.T) {
	category := &models.Category{
		ID: uuid.New(),
		Subcategories: []models.Subcategory{
			{ID: uuid.New(), Name: "א", NameAr: "أ"},
		},
	}
	finder := &stubCategoryFinder{byID: map[uuid.UUID]*models.Category{category.ID: category}}
	svc := newTestService(t, newStubProductRepo(), finder)

	stray := uuid.New()
	_, err := svc.Create(context.Background(), CreateInput{
		Name:          "אבקת כביסה",
		NameAr:        "مسحوق غسيل",
		Description:   "d",
		DescriptionAr: "d",
		Price:         decimal.NewFromInt(30),
		Unit:          "kg",
		UnitAmount:    decimal.NewFromInt(3),
		Images:        []string{"a.jpg"},
		CategoryID:    &category.ID,
		SubcategoryID: &stray,
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, msgSubcategoryStray, typed.Message())
}

func TestDuplicateProduct(t *testing.T) {
	repo := newStubProductRepo()
	source := &models.Product{
		ID:             uuid.New(),
		Name:           "נוזל כלים",
		NameAr:         "سائل جلي",
		Description:    "d",
		DescriptionAr:  "d",
		Price:          decimal.NewFromInt(15),
		SalePercentage: 25,
		Stock:          8,
		Unit:           "liter",
		UnitAmount:     decimal.NewFromInt(1),
		Images:         dbtypes.StringList{"a.jpg"},
		Sales:          42,
	}
	repo.byID[source.ID] = source

	svc := newTestService(t, repo, nil)

	clone, err := svc.Duplicate(context.Background(), source.ID)
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, clone.ID)
	assert.Equal(t, "נוזל כלים (עותק)", clone.Name)
	assert.Equal(t, "سائل جلي (عملية)", clone.NameAr)
	assert.Zero(t, clone.Sales)
	assert.Zero(t, clone.SalePercentage)
	assert.Equal(t, source.Stock, clone.Stock)
	assert.True(t, source.Price.Equal(clone.Price))
}

func TestDeleteProductNotFound(t *testing.T) {
	svc := newTestService(t, newStubProductRepo(), nil)

	err := svc.Delete(context.Background(), uuid.New())

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, msgProductNotFound, typed.Message())
}

func TestListWrapsRepositoryFailure(t *testing.T) {
	repo := newStubProductRepo()
	repo.listErr = assert.AnError
	svc := newTestService(t, repo, nil)

	_, err := svc.List(context.Background(), ListQuery{})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInternal, typed.Code())
	assert.Equal(t, msgFetchFailed, typed.Message())
}
