package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PawsProtect/service-welfare/internal/application"
	"github.com/PawsProtect/service-welfare/internal/platform/auth"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
	"github.com/PawsProtect/service-welfare/internal/platform/middleware"
	"github.com/PawsProtect/service-welfare/internal/platform/response"
)

// ClinicHandler handles HTTP requests for clinics and appointments.
type ClinicHandler struct {
	service *application.VeterinaryService
}

// NewClinicHandler creates a new ClinicHandler.
func NewClinicHandler(service *application.VeterinaryService) *ClinicHandler {
	return &ClinicHandler{service: service}
}

// RegisterRoutes registers clinic and appointment routes.
func (h *ClinicHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	clinics := r.Group("/api/v1/clinics")
	{
		clinics.GET("", h.ListClinics)
		clinics.GET("/:id", h.GetClinic)
		clinics.GET("/:id/slots", h.GetSlots)
	}

	appointments := r.Group("/api/v1/appointments")
	{
		appointments.POST("", h.BookAppointment)
		appointments.GET("",
			middleware.AuthMiddleware(jwtManager),
			middleware.RequireRole(auth.RoleVet, auth.RoleAdmin),
			h.ListAppointments,
		)
	}
}

// ListClinics handles GET /api/v1/clinics.
func (h *ClinicHandler) ListClinics(c *gin.Context) {
	response.Success(c, h.service.ListClinics())
}

// GetClinic handles GET /api/v1/clinics/:id.
func (h *ClinicHandler) GetClinic(c *gin.Context) {
	clinic, err := h.service.GetClinic(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, clinic)
}

// GetSlots handles GET /api/v1/clinics/:id/slots?date=YYYY-MM-DD.
func (h *ClinicHandler) GetSlots(c *gin.Context) {
	result, err := h.service.Slots(c.Param("id"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// BookAppointment handles POST /api/v1/appointments.
func (h *ClinicHandler) BookAppointment(c *gin.Context) {
	var req application.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SubmitBooking(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListAppointments handles GET /api/v1/appointments.
func (h *ClinicHandler) ListAppointments(c *gin.Context) {
	result, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	page, limit := parsePagination(c)
	response.Paginated(c, domain.Paginate(result, page, limit))
}
