package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aaravmahajanofficial/pizza-storefront/docs"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/cache"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/catalog"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/config"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/events"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/health"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/metrics"
	repository "github.com/aaravmahajanofficial/pizza-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/pizza-storefront/internal/services"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/pizza-storefront/pkg/sendGrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Pizza Storefront API
//	@version					1.0
//	@description				Menu, cart, checkout and the staff order dashboard of a pizzeria.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Telemetry, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if err := repository.InitSchema(context.Background(), repos.DB); err != nil {
		slog.Error("❌ Error preparing the schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer redisCache.Close()

	menu, err := catalog.Default()
	if err != nil {
		slog.Error("❌ Error loading the menu", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cartRepo := repository.NewCartRepo(repos.DB)
	orderRepo := repository.NewOrderRepo(repos.DB)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, &cfg.RateConfig)

	// Order notifications
	var notifiers []service.OrderNotifier

	var publisher *events.Publisher
	if cfg.Kafka.Enabled() {
		publisher = events.NewPublisher(cfg.Kafka)
		notifiers = append(notifiers, publisher)
		slog.Info("Publishing order events", slog.String("topic", cfg.Kafka.Topic))
	}

	if cfg.SendGrid.Enabled() {
		notifiers = append(notifiers, sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName))
		slog.Info("Sending order emails", slog.String("from", cfg.SendGrid.FromEmail))
	}

	menuService := service.NewMenuService(menu)
	menuHandler := handlers.NewMenuHandler(menuService)
	cartService := service.NewCartService(menu, cartRepo, redisCache, cfg.Cache.CartTTL)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(service.OrderServiceDeps{
		Orders:        orderRepo,
		Carts:         cartRepo,
		RateLimit:     rateLimitRepo,
		Cache:         redisCache,
		Notifier:      service.NewNotifiers(notifiers...),
		CacheCfg:      cfg.Cache,
		Dashboard:     cfg.Dashboard,
		NotifyTimeout: cfg.Notify.Timeout,
	})
	orderHandler := handlers.NewOrderHandler(orderService, cfg.Dashboard)
	dashboardHandler := handlers.NewDashboardHandler(orderService, cfg.Dashboard)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating the health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", docs.SwaggerInfo.Version))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/menu", menuHandler.ListPizzas())
	routerMux.HandleFunc("GET /api/v1/menu/sides", menuHandler.ListSides())
	routerMux.HandleFunc("GET /api/v1/menu/options", menuHandler.GetOptions())
	routerMux.HandleFunc("GET /api/v1/menu/{id}", menuHandler.GetPizza())
	routerMux.HandleFunc("POST /api/v1/menu/{id}/quote", menuHandler.Quote())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/cart/pizzas", cartHandler.AddPizza())
	routerMux.HandleFunc("POST /api/v1/orders", orderHandler.PlaceOrder())
	routerMux.HandleFunc("GET /api/v1/orders", orderHandler.ListMyOrders())
	routerMux.HandleFunc("GET /api/v1/orders/{id}", orderHandler.GetOrder())
	routerMux.HandleFunc("GET /api/v1/dashboard/orders", authMiddleware.Authenticate(dashboardHandler.ListOrders()))
	routerMux.HandleFunc("PATCH /api/v1/dashboard/orders/{id}/status", authMiddleware.Authenticate(dashboardHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("DELETE /api/v1/dashboard/orders/{id}", authMiddleware.Authenticate(dashboardHandler.DeleteOrder()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Middleware chaining, outermost last
	var handler http.Handler = routerMux
	handler = middleware.Identity(middleware.IdentityOptions{
		CookieName: cfg.Identity.CookieName,
		MaxAge:     cfg.Identity.MaxAge,
		Secure:     cfg.Identity.Secure,
	})(handler)
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Telemetry.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			slog.Error("⚠️ Error closing the event publisher", slog.String("error", err.Error()))
		}
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}
