package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

// Success writes a 200 envelope.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// Paginated writes a 200 envelope with paging metadata.
func Paginated[T any](c *gin.Context, page domain.PaginatedResult[T]) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    page.Items,
		"meta": gin.H{
			"total":       page.Total,
			"page":        page.Page,
			"limit":       page.Limit,
			"total_pages": page.TotalPages,
		},
	})
}

// BadRequest writes a 400 validation envelope.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   gin.H{"code": string(domain.KindValidation), "message": message},
	})
}

// Error maps a domain error onto an HTTP status and envelope.
func Error(c *gin.Context, err error) {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "internal", "message": "internal server error"},
		})
		return
	}

	body := gin.H{"code": string(de.Kind), "message": de.Message}
	if de.Field != "" {
		body["field"] = de.Field
	}
	c.JSON(statusFor(de.Kind), gin.H{"success": false, "error": body})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindInvalidState:
		return http.StatusConflict
	case domain.KindCollaborator:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
