package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanmart/backend/internal/orders"
	"github.com/cleanmart/backend/internal/products"
	pkgAuth "github.com/cleanmart/backend/pkg/auth"
	"github.com/cleanmart/backend/pkg/config"
	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	"github.com/cleanmart/backend/pkg/logger"
)

type stubOrderService struct {
	orders.Service
}

func (stubOrderService) UpdateStatus(_ context.Context, id uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	return &models.Order{ID: id, Status: target}, nil
}

type stubProductService struct {
	products.Service
}

func (stubProductService) Duplicate(_ context.Context, id uuid.UUID) (*models.Product, error) {
	return &models.Product{ID: uuid.New(), Name: "clone of " + id.String()}, nil
}

func testRouter(t *testing.T) (http.Handler, config.JWTConfig) {
	t.Helper()
	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "idp.example"}
	handler := New(Dependencies{
		Config:   &config.Config{JWT: jwtCfg},
		Logger:   logger.New(logger.Options{ServiceName: "test"}),
		Orders:   stubOrderService{},
		Products: stubProductService{},
	})
	return handler, jwtCfg
}

func adminToken(t *testing.T, cfg config.JWTConfig) string {
	t.Helper()
	claims := pkgAuth.SessionClaims{
		Email: "admin@example.com",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)
	return signed
}

func TestOrderStatusRouteUsesPut(t *testing.T) {
	handler, jwtCfg := testRouter(t)
	token := adminToken(t, jwtCfg)
	target := "/api/v1/orders/" + uuid.NewString() + "/status"
	body := `{"status":"processing"}`

	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestProductDuplicateRouteTakesBodyID(t *testing.T) {
	handler, jwtCfg := testRouter(t)
	token := adminToken(t, jwtCfg)
	body := fmt.Sprintf(`{"productId": %q}`, uuid.NewString())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/duplicate", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	handler, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+uuid.NewString()+"/status", strings.NewReader(`{"status":"processing"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
