package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PawsProtect/service-welfare/internal/application"
	"github.com/PawsProtect/service-welfare/internal/platform/response"
)

// AnimalHandler handles HTTP requests for the adoption catalog.
type AnimalHandler struct {
	service *application.AdoptionService
}

// NewAnimalHandler creates a new AnimalHandler.
func NewAnimalHandler(service *application.AdoptionService) *AnimalHandler {
	return &AnimalHandler{service: service}
}

// RegisterRoutes registers catalog, adoption request and favorites routes.
// Browsing is anonymous.
func (h *AnimalHandler) RegisterRoutes(r *gin.RouterGroup) {
	animals := r.Group("/api/v1/animals")
	{
		animals.GET("", h.ListAnimals)
		animals.GET("/:id", h.GetAnimal)
		animals.POST("/:id/adoption-requests", h.RequestAdoption)
	}
	r.POST("/api/v1/favorites/toggle", h.ToggleFavorite)
}

// ListAnimals handles GET /api/v1/animals.
func (h *AnimalHandler) ListAnimals(c *gin.Context) {
	q := application.FilterQuery{
		Species: c.Query("species"),
		Sizes:   listQuery(c, "size"),
		Needs:   listQuery(c, "need"),
	}
	var ok bool
	if q.AgeMin, ok = intQuery(c, "age_min"); !ok {
		response.BadRequest(c, "age_min must be an integer")
		return
	}
	if q.AgeMax, ok = intQuery(c, "age_max"); !ok {
		response.BadRequest(c, "age_max must be an integer")
		return
	}

	result, err := h.service.FilterAnimals(q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetAnimal handles GET /api/v1/animals/:id.
func (h *AnimalHandler) GetAnimal(c *gin.Context) {
	result, err := h.service.GetAnimal(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RequestAdoption handles POST /api/v1/animals/:id/adoption-requests.
func (h *AnimalHandler) RequestAdoption(c *gin.Context) {
	var req application.AdoptionRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RequestAdoption(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ToggleFavorite handles POST /api/v1/favorites/toggle. The favorites set
// lives on the client and is echoed back updated.
func (h *AnimalHandler) ToggleFavorite(c *gin.Context) {
	var req application.ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ToggleFavorite(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// listQuery accepts both ?size=a&size=b and ?size=a,b.
func listQuery(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func intQuery(c *gin.Context, key string) (*int, bool) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
