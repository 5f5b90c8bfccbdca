package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PawsProtect/service-welfare/internal/application"
	"github.com/PawsProtect/service-welfare/internal/platform/auth"
	"github.com/PawsProtect/service-welfare/internal/platform/middleware"
	"github.com/PawsProtect/service-welfare/internal/platform/response"
)

// ShopHandler handles HTTP requests for products and carts.
type ShopHandler struct {
	service *application.CartService
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(service *application.CartService) *ShopHandler {
	return &ShopHandler{service: service}
}

// RegisterRoutes registers shop routes. Carts belong to the caller.
func (h *ShopHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.GET("/api/v1/shop/products", h.ListProducts)

	cart := r.Group("/api/v1/cart")
	cart.Use(middleware.AuthMiddleware(jwtManager))
	{
		cart.GET("", h.GetCart)
		cart.POST("", h.AddItem)
		cart.DELETE("/items/:productId", h.RemoveItem)
	}
}

// ListProducts handles GET /api/v1/shop/products.
func (h *ShopHandler) ListProducts(c *gin.Context) {
	response.Success(c, h.service.ListProducts())
}

// GetCart handles GET /api/v1/cart.
func (h *ShopHandler) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetCart(c.Request.Context(), userID.String())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddItem handles POST /api/v1/cart.
func (h *ShopHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddItem(c.Request.Context(), userID.String(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemoveItem handles DELETE /api/v1/cart/items/:productId.
func (h *ShopHandler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.RemoveItem(c.Request.Context(), userID.String(), c.Param("productId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
