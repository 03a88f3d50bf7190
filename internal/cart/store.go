package cart

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cleanmart/backend/pkg/db/models"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/kv"
	"github.com/cleanmart/backend/pkg/logger"
)

// snapshotTTL keeps abandoned carts around for a month before they expire.
const snapshotTTL = 30 * 24 * time.Hour

// Item is one stored cart line.
type Item struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// snapshot is the persisted cart document.
type snapshot struct {
	Items []Item `json:"items"`
}

// ViewItem is a cart line enriched with live product data for display.
type ViewItem struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	NameAr    string    `json:"nameAr"`
	Image     string    `json:"image"`
	UnitPrice int64     `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
	LineTotal int64     `json:"lineTotal"`
	Stock     int       `json:"stock"`
}

// View is the cart as returned to the storefront.
type View struct {
	Items    []ViewItem `json:"items"`
	Subtotal int64      `json:"subtotal"`
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Store keeps per-token cart snapshots behind the injected key-value port.
// Every mutation persists the full snapshot.
type Store struct {
	kv       kv.Store
	products productFinder
	keyFn    func(token string) string
	logg     *logger.Logger
}

// NewStore wires a cart store. keyFn maps a cart token to its storage key.
func NewStore(store kv.Store, products productFinder, keyFn func(string) string, logg *logger.Logger) (*Store, error) {
	if store == nil {
		return nil, stdErrors.New("cart: kv store is required")
	}
	if products == nil {
		return nil, stdErrors.New("cart: product finder is required")
	}
	if keyFn == nil {
		return nil, stdErrors.New("cart: key function is required")
	}
	if logg == nil {
		return nil, stdErrors.New("cart: logger is required")
	}
	return &Store{kv: store, products: products, keyFn: keyFn, logg: logg}, nil
}

// load reads the snapshot for a token. A missing key yields an empty cart;
// a corrupted payload clears the key and starts over.
func (s *Store) load(ctx context.Context, token string) (*snapshot, error) {
	raw, err := s.kv.Get(ctx, s.keyFn(token))
	if err != nil {
		if stdErrors.Is(err, kv.ErrNotFound) {
			return &snapshot{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cart_token", token), "cart.snapshot_corrupted")
		if delErr := s.kv.Del(ctx, s.keyFn(token)); delErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, delErr, "resetting corrupted cart")
		}
		return &snapshot{}, nil
	}
	return &snap, nil
}

func (s *Store) persist(ctx context.Context, token string, snap *snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart")
	}
	if err := s.kv.Set(ctx, s.keyFn(token), string(raw), snapshotTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart")
	}
	return nil
}

// Add puts quantity more units of a product into the cart. When the summed
// quantity would exceed the live stock the call is rejected with a warning
// carrying the available amount; quantities are never clamped silently.
func (s *Store) Add(ctx context.Context, token string, productID uuid.UUID, quantity int) (*View, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	snap, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	existing := 0
	for _, item := range snap.Items {
		if item.ProductID == productID {
			existing = item.Quantity
			break
		}
	}

	if existing+quantity > product.Stock {
		return nil, stockWarning(product, existing)
	}

	if existing > 0 {
		for i := range snap.Items {
			if snap.Items[i].ProductID == productID {
				snap.Items[i].Quantity += quantity
				break
			}
		}
	} else {
		snap.Items = append(snap.Items, Item{ProductID: productID, Quantity: quantity})
	}

	if err := s.persist(ctx, token, snap); err != nil {
		return nil, err
	}
	return s.render(ctx, snap)
}

// UpdateQuantity sets the absolute quantity of a cart line, subject to the
// same stock ceiling as Add.
func (s *Store) UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, quantity int) (*View, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive; use remove to drop a line")
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, stockWarning(product, 0)
	}

	snap, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range snap.Items {
		if snap.Items[i].ProductID == productID {
			snap.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
	}

	if err := s.persist(ctx, token, snap); err != nil {
		return nil, err
	}
	return s.render(ctx, snap)
}

// Remove drops a product line from the cart. Removing an absent line is a
// no-op.
func (s *Store) Remove(ctx context.Context, token string, productID uuid.UUID) (*View, error) {
	snap, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	kept := snap.Items[:0]
	for _, item := range snap.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	snap.Items = kept

	if err := s.persist(ctx, token, snap); err != nil {
		return nil, err
	}
	return s.render(ctx, snap)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context, token string) error {
	if err := s.kv.Del(ctx, s.keyFn(token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return nil
}

// Get renders the current cart with live product data and the subtotal.
// Lines whose product has since been deleted are dropped from the view.
func (s *Store) Get(ctx context.Context, token string) (*View, error) {
	snap, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, snap)
}

func (s *Store) render(ctx context.Context, snap *snapshot) (*View, error) {
	view := &View{Items: make([]ViewItem, 0, len(snap.Items))}
	for _, item := range snap.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart product")
		}

		unitPrice := product.EffectivePrice()
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		view.Items = append(view.Items, ViewItem{
			ProductID: product.ID,
			Name:      product.Name,
			NameAr:    product.NameAr,
			Image:     image,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
			LineTotal: unitPrice * int64(item.Quantity),
			Stock:     product.Stock,
		})
		view.Subtotal += unitPrice * int64(item.Quantity)
	}
	return view, nil
}

func (s *Store) findProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}

func stockWarning(product *models.Product, inCart int) error {
	return pkgerrors.New(
		pkgerrors.CodeValidation,
		fmt.Sprintf("only %d units of %s are in stock", product.Stock, product.Name),
	).WithDetails(map[string]int{
		"available": product.Stock,
		"inCart":    inCart,
	})
}
