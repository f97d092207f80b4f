package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/cache"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/cart"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/pizza-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pizza-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, identity string, req *models.CheckoutRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByIdentity(ctx context.Context, identity string, page, size int) (*models.PaginatedResponse, error)
	ListOrders(ctx context.Context, status models.OrderStatus, page, size int) (*models.PaginatedResponse, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type OrderServiceDeps struct {
	Orders    repository.OrderRepository
	Carts     repository.CartRepository
	RateLimit repository.RateLimitRepository
	Cache     cache.Cache
	Notifier  OrderNotifier
	CacheCfg  config.CacheConfig
	Dashboard config.Dashboard
	// NotifyTimeout bounds each notification; zero means defaultNotifyTimeout.
	NotifyTimeout time.Duration
}

const defaultNotifyTimeout = 3 * time.Second

type orderService struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	rateLimit repository.RateLimitRepository
	cache     cache.Cache
	notifier  OrderNotifier
	cacheCfg  config.CacheConfig
	dashboard config.Dashboard
	notifyTTL time.Duration
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

func NewOrderService(deps OrderServiceDeps) OrderService {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewNotifiers()
	}

	notifyTTL := deps.NotifyTimeout
	if notifyTTL <= 0 {
		notifyTTL = defaultNotifyTimeout
	}

	return &orderService{
		orders:    deps.Orders,
		carts:     deps.Carts,
		rateLimit: deps.RateLimit,
		cache:     deps.Cache,
		notifier:  notifier,
		cacheCfg:  deps.CacheCfg,
		dashboard: deps.Dashboard,
		notifyTTL: notifyTTL,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// PlaceOrder turns the identity's cart into an order. The cart is only
// cleared once the order has committed; a failed clear is logged and the
// order still stands.
func (s *orderService) PlaceOrder(ctx context.Context, identity string, req *models.CheckoutRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	allowed, _, retryAfter, err := s.rateLimit.CheckCheckoutRateLimit(ctx, identity)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, appErrors.TooManyRequestsError("Too many checkout attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	items, err := s.carts.GetItems(ctx, identity)
	if err != nil {
		if !errors.Is(err, repository.ErrMalformedCart) {
			metrics.RecordCheckout(decimal.Zero, err)
			return nil, appErrors.DatabaseError("Failed to place order").WithError(err)
		}
		logger.Error("Stored cart is malformed, treating it as empty", slog.String("error", err.Error()))
		items = nil
	}

	if len(items) == 0 {
		return nil, appErrors.EmptyCartError()
	}

	now := s.now().UTC()
	order := &models.Order{
		ID:            uuid.New(),
		IdentityToken: identity,
		Items:         cart.Clone(items),
		Customer:      s.sanitizeCustomer(req.Customer),
		Status:        models.OrderStatusInProgress,
		Total:         cart.Total(items),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		metrics.RecordCheckout(order.Total, err)
		logger.Error("Failed to persist order", slog.String("error", err.Error()))
		return nil, appErrors.DatabaseError("Failed to place order").WithError(err)
	}

	metrics.RecordCheckout(order.Total, nil)
	logger.Info("Order placed", slog.String("orderId", order.ID.String()), slog.String("total", order.Total.StringFixed(2)))

	if err := s.carts.ClearItems(ctx, identity); err != nil {
		logger.Error("Failed to clear cart after checkout", slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))
		s.evict(ctx, cache.Key(cache.CartKeyPrefix, identity))
	} else {
		s.dropCachedCart(ctx, identity)
	}
	s.remember(ctx, order)

	if err := s.notify(ctx, func(nctx context.Context) error { return s.notifier.OrderPlaced(nctx, order) }); err != nil {
		logger.Warn("Order notification failed", slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var cached models.Order
	hit, err := s.cache.Get(ctx, cache.Key(cache.OrderKeyPrefix, id.String()), &cached)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Order cache read failed", slog.String("error", err.Error()))
	} else if hit {
		return &cached, nil
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	s.remember(ctx, order)

	return order, nil
}

func (s *orderService) ListOrdersByIdentity(ctx context.Context, identity string, page, size int) (*models.PaginatedResponse, error) {
	return s.list(ctx, models.OrderFilter{IdentityToken: identity}, page, size)
}

// ListOrders is the dashboard listing, newest first. An empty status or
// "all" lists every order.
func (s *orderService) ListOrders(ctx context.Context, status models.OrderStatus, page, size int) (*models.PaginatedResponse, error) {
	if status == "all" {
		status = ""
	}

	if status != "" && !status.Valid() {
		return nil, appErrors.ValidationError("Unknown order status: " + string(status))
	}

	return s.list(ctx, models.OrderFilter{Status: status}, page, size)
}

// UpdateOrderStatus moves an order along its state machine. Asking for the
// status it already has changes nothing.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	if !status.Valid() {
		return nil, appErrors.ValidationError("Unknown order status: " + string(status))
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if from == status {
		return order, nil
	}

	if !models.CanTransition(from, status) {
		return nil, appErrors.InvalidTransitionError(string(from), string(status))
	}

	updatedAt, err := s.orders.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	order.Status = status
	order.UpdatedAt = updatedAt

	metrics.RecordStatusChange(string(status))
	logger.Info("Order status changed",
		slog.String("orderId", id.String()),
		slog.String("from", string(from)),
		slog.String("to", string(status)))

	s.remember(ctx, order)

	if err := s.notify(ctx, func(nctx context.Context) error { return s.notifier.OrderStatusChanged(nctx, order, from) }); err != nil {
		logger.Warn("Order notification failed", slog.String("orderId", id.String()), slog.String("error", err.Error()))
	}

	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if !s.dashboard.AllowDelete {
		return appErrors.ForbiddenError("Deleting orders is disabled")
	}

	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return appErrors.NotFoundError("Order not found").WithError(err)
		}
		return appErrors.DatabaseError("Failed to delete order").WithError(err)
	}

	s.evict(ctx, cache.Key(cache.OrderKeyPrefix, id.String()))
	middleware.LoggerFromContext(ctx).Info("Order deleted", slog.String("orderId", id.String()))

	return nil
}

func (s *orderService) load(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}
	return order, nil
}

func (s *orderService) list(ctx context.Context, filter models.OrderFilter, page, size int) (*models.PaginatedResponse, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 {
		size = s.dashboard.DefaultPageSize
	}

	if s.dashboard.MaxPageSize > 0 && size > s.dashboard.MaxPageSize {
		size = s.dashboard.MaxPageSize
	}

	orders, total, err := s.orders.ListOrders(ctx, filter, page, size)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return &models.PaginatedResponse{Data: orders, Total: total, Page: page, PageSize: size}, nil
}

// notify runs fn detached from the request's cancellation but bounded by
// notifyTTL, so a slow broker or mail API cannot hold up the response.
func (s *orderService) notify(ctx context.Context, fn func(context.Context) error) error {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTTL)
	defer cancel()

	return fn(nctx)
}

// dropCachedCart removes the cached cart after a committed checkout. When
// the delete fails the entry is overwritten with an empty cart so the old
// lines cannot be read back and saved again.
func (s *orderService) dropCachedCart(ctx context.Context, identity string) {
	key := cache.Key(cache.CartKeyPrefix, identity)

	err := s.cache.Delete(ctx, key)
	if err == nil {
		return
	}

	logger := middleware.LoggerFromContext(ctx)
	logger.Warn("Cart cache eviction failed after checkout", slog.String("error", err.Error()))

	if err := s.cache.Set(ctx, key, []models.CartItem{}, s.cacheCfg.CartTTL); err != nil {
		logger.Error("Cart cache still holds pre-checkout lines", slog.String("error", err.Error()))
	}
}

func (s *orderService) remember(ctx context.Context, order *models.Order) {
	key := cache.Key(cache.OrderKeyPrefix, order.ID.String())
	if err := s.cache.Set(ctx, key, order, s.cacheCfg.OrderTTL); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Order cache write failed", slog.String("error", err.Error()))
		s.evict(ctx, key)
	}
}

func (s *orderService) evict(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cache eviction failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// sanitizeCustomer strips markup from the free-text fields and keeps only
// the last four digits of the card number. The CVV is never stored.
// Entities are decoded before the strip so encoded markup is caught too;
// the stored text stays HTML-escaped.
func (s *orderService) sanitizeCustomer(c models.CustomerInfo) models.CustomerInfo {
	clean := func(v string) string {
		return strings.TrimSpace(s.sanitizer.Sanitize(html.UnescapeString(v)))
	}

	return models.CustomerInfo{
		Name:       clean(c.Name),
		Phone:      clean(c.Phone),
		Email:      strings.TrimSpace(c.Email),
		Address:    clean(c.Address),
		City:       clean(c.City),
		ZipCode:    clean(c.ZipCode),
		CardNumber: maskCardNumber(c.CardNumber),
		CardExpiry: clean(c.CardExpiry),
	}
}

func maskCardNumber(number string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)

	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}

	return "**** " + digits
}
