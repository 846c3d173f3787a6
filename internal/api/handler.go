package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"booknook-backend/internal/auth"
	"booknook-backend/internal/models"
	"booknook-backend/internal/service"
	"booknook-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	listingService *service.ListingService
	orderService   *service.OrderService
	adminService   *service.AdminService
	verifier       *auth.Verifier
}

// NewHandler creates a new HTTP handler. verifier may be nil,
// which leaves all routes open (dev mode).
func NewHandler(
	listingService *service.ListingService,
	orderService *service.OrderService,
	adminService *service.AdminService,
	verifier *auth.Verifier,
) *Handler {
	return &Handler{
		listingService: listingService,
		orderService:   orderService,
		adminService:   adminService,
		verifier:       verifier,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	listings := router.Group("/listings")
	listings.GET("", h.listListings)
	listings.POST("", h.createListing)
	listings.PATCH("/:id", auth.RequireAuth(h.verifier), auth.RequireAdmin(h.verifier), h.updateListing)

	orders := router.Group("/orders")
	orders.GET("", h.listOrders)
	orders.POST("", h.createOrder)

	admin := router.Group("/admin", auth.RequireAuth(h.verifier), auth.RequireAdmin(h.verifier))
	admin.GET("/orders", h.adminListOrders)
	admin.GET("/users", h.adminListUsers)
	admin.GET("/stats/orders", h.adminOrderHistogram)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listListings handles GET /listings
func (h *Handler) listListings(c *gin.Context) {
	listings, err := h.listingService.ListListings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// createListing handles POST /listings
func (h *Handler) createListing(c *gin.Context) {
	var req service.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"listing": listing})
}

// updateListing handles PATCH /listings/:id
func (h *Handler) updateListing(c *gin.Context) {
	var req service.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

// listOrders handles GET /orders?email=
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// createOrder handles POST /orders
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// adminListOrders handles GET /admin/orders
func (h *Handler) adminListOrders(c *gin.Context) {
	orders, err := h.adminService.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// adminListUsers handles GET /admin/users
func (h *Handler) adminListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []models.AdminUser{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// adminOrderHistogram handles GET /admin/stats/orders?days=
func (h *Handler) adminOrderHistogram(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid days parameter."})
			return
		}
		days = parsed
	}

	buckets, err := h.adminService.OrderHistogram(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": buckets})
}

// respondError maps domain errors to HTTP responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found."})
	case errors.Is(err, models.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields."})
	case errors.Is(err, models.ErrInvalidCondition):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid condition."})
	case errors.Is(err, models.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price."})
	case errors.Is(err, models.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status."})
	case errors.Is(err, models.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty."})
	case errors.Is(err, models.ErrMissingShippingField):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing shipping details."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
