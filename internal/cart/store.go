package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
)

var ErrNotLoaded = errors.New("cart has not been loaded")

// Backend is the durable home of a cart. Save replaces the whole cart.
type Backend interface {
	Load(ctx context.Context, identity string) ([]models.CartItem, error)
	Save(ctx context.Context, identity string, items []models.CartItem) error
}

// Store is the cart of a single identity. Each mutation is applied locally
// and then mirrored to the backend. When the mirror fails the local change
// is thrown away and the backend state is read again; if that read fails
// as well the store goes back to not loaded.
//
// A Store is meant to live for one request and is not safe for concurrent use.
type Store struct {
	identity string
	backend  Backend
	items    []models.CartItem
	loaded   bool
}

func NewStore(identity string, backend Backend) *Store {
	return &Store{identity: identity, backend: backend}
}

func (s *Store) Identity() string {
	return s.identity
}

// Load hydrates the store from the backend.
func (s *Store) Load(ctx context.Context) error {
	items, err := s.backend.Load(ctx, s.identity)
	if err != nil {
		s.items = nil
		s.loaded = false
		return err
	}

	s.items = Clone(items)
	s.loaded = true
	return nil
}

func (s *Store) Loaded() bool {
	return s.loaded
}

// Items returns a copy of the current lines.
func (s *Store) Items() []models.CartItem {
	return Clone(s.items)
}

// Snapshot is the cart view as it stands right now.
func (s *Store) Snapshot() *models.Cart {
	return View(s.identity, s.items, s.loaded)
}

func (s *Store) Add(ctx context.Context, item models.CartItem) error {
	return s.apply(ctx, func(items []models.CartItem) []models.CartItem {
		return Add(items, item)
	})
}

func (s *Store) Remove(ctx context.Context, id string, toppings []models.ToppingItem) error {
	return s.apply(ctx, func(items []models.CartItem) []models.CartItem {
		return Remove(items, id, toppings)
	})
}

func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int, toppings []models.ToppingItem) error {
	return s.apply(ctx, func(items []models.CartItem) []models.CartItem {
		return UpdateQuantity(items, id, quantity, toppings)
	})
}

func (s *Store) Clear(ctx context.Context) error {
	return s.apply(ctx, func([]models.CartItem) []models.CartItem {
		return []models.CartItem{}
	})
}

func (s *Store) apply(ctx context.Context, mutate func([]models.CartItem) []models.CartItem) error {
	if !s.loaded {
		return ErrNotLoaded
	}

	next := mutate(s.items)
	s.items = next

	if err := s.backend.Save(ctx, s.identity, next); err != nil {
		if reloadErr := s.Load(ctx); reloadErr != nil {
			return fmt.Errorf("failed to save cart: %w (reload failed: %v)", err, reloadErr)
		}
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}
