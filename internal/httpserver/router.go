package httpserver

import (
	"context"
	"errors"
	"log"
	"sync"

	"glowcart/internal/domain"
	cartsvc "glowcart/internal/service/cart"
	"glowcart/internal/service/checkout"
	customersvc "glowcart/internal/service/customer"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductService is the catalog surface the handlers use.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// CartService is the reconciler surface a per-user cart controller drives.
type CartService interface {
	AddToCart(ctx context.Context, userID, productID string) error
	IncrementQuantity(ctx context.Context, userID, productID string) error
	DecrementQuantity(ctx context.Context, userID, productID string) error
	RemoveLine(ctx context.Context, userID, lineID string) error
	Refresh(ctx context.Context, userID string) ([]domain.CartItem, error)
	Snapshot(userID string) []domain.CartItem
}

type CheckoutService interface {
	Rules() checkout.Rules
	PlaceOrder(ctx context.Context, userID string) (*domain.Order, error)
	Orders(ctx context.Context, userID string) ([]domain.Order, error)
	AllOrders(ctx context.Context) ([]domain.Order, error)
	SetStatus(ctx context.Context, orderID, status string) error
}

type CustomerService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Profile, error)
	Login(ctx context.Context, email, password string) (*domain.Profile, string, string, error)
	Logout(ctx context.Context, token string) error
	LookupByToken(ctx context.Context, token string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, fullName *string) (*domain.Profile, error)
	DeleteProfile(ctx context.Context, userID string) error
	Profiles(ctx context.Context) ([]domain.Profile, error)
	AccessTTLSeconds() int
}

// Deps carries the services the router wires up.
type Deps struct {
	ProductSvc   ProductService
	CartSvc      CartService
	CheckoutSvc  CheckoutService
	CustomerSvc  CustomerService
	AdminPasskey string
}

// handlers holds router-scoped state: service deps plus one cart
// controller per authenticated user session.
type handlers struct {
	deps   Deps
	logger *log.Logger

	mu          sync.Mutex
	controllers map[string]*cartsvc.Controller
}

// controllerFor returns the user's cart controller, creating it on first
// use. The controller carries the optimistic overlay for the session.
func (h *handlers) controllerFor(userID string) *cartsvc.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()
	ctrl, ok := h.controllers[userID]
	if !ok {
		ctrl = cartsvc.NewController(h.deps.CartSvc, userID, h.logger)
		h.controllers[userID] = ctrl
	}
	return ctrl
}

func (h *handlers) dropController(userID string) {
	h.mu.Lock()
	delete(h.controllers, userID)
	h.mu.Unlock()
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.ProductSvc == nil || deps.CartSvc == nil || deps.CheckoutSvc == nil || deps.CustomerSvc == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}

	h := &handlers{
		deps:        deps,
		logger:      logger,
		controllers: make(map[string]*cartsvc.Controller),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/signup", h.signup)
	router.POST("/auth/login", h.login)

	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)

	authed := router.Group("/", authMiddleware(deps.CustomerSvc))
	{
		authed.POST("/auth/logout", h.logout)

		authed.GET("/me", h.getProfile)
		authed.PATCH("/me", h.updateProfile)
		authed.DELETE("/me", h.deleteProfile)

		authed.GET("/cart", h.getCart)
		authed.GET("/cart/totals", h.cartTotals)
		authed.POST("/cart/items", h.addToCart)
		authed.POST("/cart/items/:productID/increment", h.incrementLine)
		authed.POST("/cart/items/:productID/decrement", h.decrementLine)
		authed.POST("/cart/items/:productID/reveal", h.revealControls)
		authed.DELETE("/cart/lines/:lineID", h.removeLine)

		authed.POST("/checkout", h.placeOrder)
		authed.GET("/orders", h.listOrders)
	}

	admin := router.Group("/admin", adminMiddleware(deps.AdminPasskey))
	{
		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id", h.updateProduct)
		admin.DELETE("/products/:id", h.deleteProduct)
		admin.GET("/orders", h.adminOrders)
		admin.PATCH("/orders/:id/status", h.updateOrderStatus)
		admin.GET("/analytics", h.adminAnalytics)
	}

	return router, nil
}
