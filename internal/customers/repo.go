package customers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cleanmart/backend/pkg/db/models"
)

// Repository persists users and visitors.
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

// UpsertUser creates or refreshes a registered user keyed by email,
// overwriting the last-order contact details.
func (r *Repository) UpsertUser(ctx context.Context, email string, contact models.OrderContact) (*models.User, error) {
	email = normalizeEmail(email)
	user := models.User{
		ID:               uuid.New(),
		Email:            email,
		LastOrderDetails: contact,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]any{
				"last_name":    contact.Name,
				"last_phone":   contact.Phone,
				"last_address": contact.Address,
				"last_city":    contact.City,
			}),
		}).
		Create(&user).
		Error
	if err != nil {
		return nil, err
	}

	// re-read so the caller always sees the stored id, not a discarded one
	var stored models.User
	if err := r.db.WithContext(ctx).First(&stored, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpsertVisitor creates or refreshes an anonymous visitor keyed by email.
func (r *Repository) UpsertVisitor(ctx context.Context, email string, contact models.OrderContact) (*models.Visitor, error) {
	email = normalizeEmail(email)
	visitor := models.Visitor{
		ID:               uuid.New(),
		Email:            email,
		LastOrderDetails: contact,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]any{
				"last_name":    contact.Name,
				"last_phone":   contact.Phone,
				"last_address": contact.Address,
				"last_city":    contact.City,
			}),
		}).
		Create(&visitor).
		Error
	if err != nil {
		return nil, err
	}

	var stored models.Visitor
	if err := r.db.WithContext(ctx).First(&stored, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindUserByEmail loads one registered user.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", normalizeEmail(email)).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every registered user, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	var rows []models.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// ListVisitors returns every visitor, newest first.
func (r *Repository) ListVisitors(ctx context.Context) ([]models.Visitor, error) {
	var rows []models.Visitor
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
