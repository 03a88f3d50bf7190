package wishlist

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cleanmart/backend/pkg/db/models"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/kv"
	"github.com/cleanmart/backend/pkg/logger"
)

const snapshotTTL = 90 * 24 * time.Hour

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Store keeps a set of saved product ids per wishlist token behind the
// injected key-value port.
type Store struct {
	kv       kv.Store
	products productFinder
	keyFn    func(token string) string
	logg     *logger.Logger
}

func NewStore(store kv.Store, products productFinder, keyFn func(string) string, logg *logger.Logger) (*Store, error) {
	if store == nil {
		return nil, stdErrors.New("wishlist: kv store is required")
	}
	if products == nil {
		return nil, stdErrors.New("wishlist: product finder is required")
	}
	if keyFn == nil {
		return nil, stdErrors.New("wishlist: key function is required")
	}
	if logg == nil {
		return nil, stdErrors.New("wishlist: logger is required")
	}
	return &Store{kv: store, products: products, keyFn: keyFn, logg: logg}, nil
}

func (s *Store) load(ctx context.Context, token string) ([]uuid.UUID, error) {
	raw, err := s.kv.Get(ctx, s.keyFn(token))
	if err != nil {
		if stdErrors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading wishlist")
	}

	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "wishlist_token", token), "wishlist.snapshot_corrupted")
		if delErr := s.kv.Del(ctx, s.keyFn(token)); delErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, delErr, "resetting corrupted wishlist")
		}
		return nil, nil
	}
	return ids, nil
}

func (s *Store) persist(ctx context.Context, token string, ids []uuid.UUID) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding wishlist")
	}
	if err := s.kv.Set(ctx, s.keyFn(token), string(raw), snapshotTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving wishlist")
	}
	return nil
}

// Add saves a product id to the wishlist set. Adding twice is a no-op.
func (s *Store) Add(ctx context.Context, token string, productID uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}

	ids, err := s.load(ctx, token)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == productID {
			return nil
		}
	}
	return s.persist(ctx, token, append(ids, productID))
}

// Remove drops a product id from the set. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, token string, productID uuid.UUID) error {
	ids, err := s.load(ctx, token)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	return s.persist(ctx, token, kept)
}

// List resolves the saved ids to live products, dropping any that have
// since been deleted.
func (s *Store) List(ctx context.Context, token string) ([]models.Product, error) {
	ids, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.products.FindByID(ctx, id)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading wishlist product")
		}
		out = append(out, *product)
	}
	return out, nil
}

// Clear drops the whole wishlist.
func (s *Store) Clear(ctx context.Context, token string) error {
	if err := s.kv.Del(ctx, s.keyFn(token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing wishlist")
	}
	return nil
}
