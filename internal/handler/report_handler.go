package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PawsProtect/service-welfare/internal/application"
	"github.com/PawsProtect/service-welfare/internal/platform/auth"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
	"github.com/PawsProtect/service-welfare/internal/platform/middleware"
	"github.com/PawsProtect/service-welfare/internal/platform/response"
	"github.com/PawsProtect/service-welfare/internal/storage"
)

// ReportHandler handles HTTP requests for animal distress reports.
type ReportHandler struct {
	service *application.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *application.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers report routes. Submitting requires a login;
// reading and deleting are admin only.
func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	reports := r.Group("/api/v1/reports")
	reports.Use(middleware.AuthMiddleware(jwtManager))
	{
		reports.POST("", h.SubmitReport)
		reports.GET("", middleware.RequireRole(auth.RoleAdmin), h.ListReports)
		reports.DELETE("/:id", middleware.RequireRole(auth.RoleAdmin), h.DeleteReport)
	}
}

// SubmitReport handles POST /api/v1/reports (multipart/form-data). The
// "photo" part is optional.
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domain.NewUnauthorizedError("please login to submit a report"))
		return
	}

	var req application.SubmitReportRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var photo *storage.File
	header, err := c.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		response.BadRequest(c, err.Error())
		return
	default:
		f, err := header.Open()
		if err != nil {
			response.BadRequest(c, "unreadable photo")
			return
		}
		defer f.Close()
		photo = &storage.File{Name: header.Filename, Size: header.Size, Body: f}
	}

	result, err := h.service.SubmitReport(c.Request.Context(), identity, req, photo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListReports handles GET /api/v1/reports.
func (h *ReportHandler) ListReports(c *gin.Context) {
	result, err := h.service.ListReports(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	page, limit := parsePagination(c)
	response.Paginated(c, domain.Paginate(result, page, limit))
}

// DeleteReport handles DELETE /api/v1/reports/:id.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	if err := h.service.DeleteReport(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
