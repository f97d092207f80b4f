package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/cache"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/cart"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/pizza-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pizza-storefront/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, identity string) (*models.Cart, error)
	AddItem(ctx context.Context, identity string, req *models.AddItemRequest) (*models.Cart, error)
	AddPizza(ctx context.Context, identity string, req *models.AddPizzaRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, identity string, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, identity string, req *models.RemoveItemRequest) (*models.Cart, error)
	ClearCart(ctx context.Context, identity string) (*models.Cart, error)
}

type cartService struct {
	catalog *catalog.Catalog
	backend *cartBackend
}

func NewCartService(c *catalog.Catalog, repo repository.CartRepository, cache cache.Cache, cartTTL time.Duration) CartService {
	return &cartService{
		catalog: c,
		backend: &cartBackend{repo: repo, cache: cache, ttl: cartTTL},
	}
}

func (s *cartService) GetCart(ctx context.Context, identity string) (*models.Cart, error) {
	store, err := s.open(ctx, identity)
	if err != nil {
		return nil, err
	}

	return store.Snapshot(), nil
}

// AddItem adds a side, or a pizza exactly as it is on the menu.
func (s *cartService) AddItem(ctx context.Context, identity string, req *models.AddItemRequest) (*models.Cart, error) {
	item, err := s.simpleItem(req.ProductID)
	if err != nil {
		return nil, err
	}
	item.Quantity = req.Quantity

	return s.mutate(ctx, identity, "add", func(store *cart.Store) error {
		return store.Add(ctx, item)
	})
}

func (s *cartService) AddPizza(ctx context.Context, identity string, req *models.AddPizzaRequest) (*models.Cart, error) {
	c, err := customize(s.catalog, req.PizzaID, req.Size, req.Toppings, req.Quantity)
	if err != nil {
		return nil, err
	}
	item := c.CartItem()

	return s.mutate(ctx, identity, "add", func(store *cart.Store) error {
		return store.Add(ctx, item)
	})
}

// UpdateQuantity sets an absolute quantity; zero or less removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, identity string, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	return s.mutate(ctx, identity, "update", func(store *cart.Store) error {
		return store.UpdateQuantity(ctx, req.ProductID, req.Quantity, req.Toppings)
	})
}

func (s *cartService) RemoveItem(ctx context.Context, identity string, req *models.RemoveItemRequest) (*models.Cart, error) {
	return s.mutate(ctx, identity, "remove", func(store *cart.Store) error {
		return store.Remove(ctx, req.ProductID, req.Toppings)
	})
}

func (s *cartService) ClearCart(ctx context.Context, identity string) (*models.Cart, error) {
	return s.mutate(ctx, identity, "clear", func(store *cart.Store) error {
		return store.Clear(ctx)
	})
}

func (s *cartService) open(ctx context.Context, identity string) (*cart.Store, error) {
	store := cart.NewStore(identity, s.backend)
	if err := store.Load(ctx); err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}
	return store, nil
}

func (s *cartService) mutate(ctx context.Context, identity, op string, fn func(*cart.Store) error) (*models.Cart, error) {
	store, err := s.open(ctx, identity)
	if err != nil {
		metrics.RecordCartOperation(op, err)
		return nil, err
	}

	err = fn(store)
	metrics.RecordCartOperation(op, err)
	if err != nil {
		metrics.RecordCartReconciliation()
		middleware.LoggerFromContext(ctx).Error("Cart update failed, local change discarded",
			slog.String("operation", op),
			slog.Bool("reloaded", store.Loaded()),
			slog.String("error", err.Error()))
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return store.Snapshot(), nil
}

func (s *cartService) simpleItem(productID string) (models.CartItem, error) {
	if side, err := s.catalog.Side(productID); err == nil {
		return models.CartItem{ID: side.ID, Name: side.Name, Price: side.Price}, nil
	}

	pizza, err := s.catalog.Pizza(productID)
	if err != nil {
		return models.CartItem{}, appErrors.NotFoundError("Menu item not found").WithError(err)
	}

	return models.CartItem{ID: pizza.ID, Name: pizza.Name, Price: pizza.Price}, nil
}

// cartBackend keeps the durable cart in Postgres with a Redis copy in front.
// The cache is only ever a shortcut: its failures are logged and ignored.
type cartBackend struct {
	repo  repository.CartRepository
	cache cache.Cache
	ttl   time.Duration
}

func (b *cartBackend) Load(ctx context.Context, identity string) ([]models.CartItem, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.CartKeyPrefix, identity)

	var cached []models.CartItem
	hit, err := b.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Cart cache read failed", slog.String("error", err.Error()))
	} else if hit {
		return cached, nil
	}

	items, err := b.repo.GetItems(ctx, identity)
	if err != nil {
		if !errors.Is(err, repository.ErrMalformedCart) {
			return nil, err
		}
		logger.Error("Stored cart is malformed, treating it as empty", slog.String("error", err.Error()))
		items = []models.CartItem{}
	}

	b.remember(ctx, key, items)

	return items, nil
}

func (b *cartBackend) Save(ctx context.Context, identity string, items []models.CartItem) error {
	if err := b.repo.ReplaceItems(ctx, identity, items); err != nil {
		b.forget(ctx, identity)
		return err
	}

	b.remember(ctx, cache.Key(cache.CartKeyPrefix, identity), items)

	return nil
}

func (b *cartBackend) remember(ctx context.Context, key string, items []models.CartItem) {
	if err := b.cache.Set(ctx, key, items, b.ttl); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cart cache write failed", slog.String("error", err.Error()))
		_ = b.cache.Delete(ctx, key)
	}
}

func (b *cartBackend) forget(ctx context.Context, identity string) {
	if err := b.cache.Delete(ctx, cache.Key(cache.CartKeyPrefix, identity)); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cart cache eviction failed", slog.String("error", err.Error()))
	}
}
