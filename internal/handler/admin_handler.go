package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PawsProtect/service-welfare/internal/application"
	"github.com/PawsProtect/service-welfare/internal/platform/auth"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
	"github.com/PawsProtect/service-welfare/internal/platform/middleware"
	"github.com/PawsProtect/service-welfare/internal/platform/response"
)

// AdminHandler handles the admin dashboard.
type AdminHandler struct {
	users    *application.UserService
	adoption *application.AdoptionService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users *application.UserService, adoption *application.AdoptionService) *AdminHandler {
	return &AdminHandler{users: users, adoption: adoption}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/users", h.ListUsers)
		admin.GET("/adoption-requests", h.ListAdoptionRequests)
		admin.GET("/stats", h.Stats)
	}
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	page, limit := parsePagination(c)
	response.Paginated(c, domain.Paginate(users, page, limit))
}

// ListAdoptionRequests handles GET /api/v1/admin/adoption-requests.
func (h *AdminHandler) ListAdoptionRequests(c *gin.Context) {
	requests, err := h.adoption.ListAdoptionRequests(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	page, limit := parsePagination(c)
	response.Paginated(c, domain.Paginate(requests, page, limit))
}

// Stats handles GET /api/v1/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.users.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
