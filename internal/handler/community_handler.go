package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PawsProtect/service-welfare/internal/application"
	"github.com/PawsProtect/service-welfare/internal/platform/auth"
	"github.com/PawsProtect/service-welfare/internal/platform/middleware"
	"github.com/PawsProtect/service-welfare/internal/platform/response"
)

// CommunityHandler handles HTTP requests for event posts and discussions.
type CommunityHandler struct {
	service *application.CommunityService
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(service *application.CommunityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

// RegisterRoutes registers community routes. Event posts are published by
// NGOs and admins; anyone may start a discussion.
func (h *CommunityHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	community := r.Group("/api/v1/community")
	{
		community.GET("/posts", h.ListPosts)
		community.POST("/posts",
			middleware.AuthMiddleware(jwtManager),
			middleware.RequireRole(auth.RoleNGO, auth.RoleAdmin),
			h.CreatePost,
		)
		community.GET("/discussions", h.ListDiscussions)
		community.POST("/discussions", h.CreateDiscussion)
	}
}

// ListPosts handles GET /api/v1/community/posts.
func (h *CommunityHandler) ListPosts(c *gin.Context) {
	result, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreatePost handles POST /api/v1/community/posts.
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	var req application.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreatePost(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListDiscussions handles GET /api/v1/community/discussions.
func (h *CommunityHandler) ListDiscussions(c *gin.Context) {
	result, err := h.service.ListDiscussions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateDiscussion handles POST /api/v1/community/discussions.
func (h *CommunityHandler) CreateDiscussion(c *gin.Context) {
	var req application.CreateDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateDiscussion(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
