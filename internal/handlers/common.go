package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goalboard-dev/goalboard/internal/services"
	"gorm.io/gorm"
)

// respondServiceError maps the service error taxonomy onto HTTP outcomes.
// Uniqueness violations that slip past validation surface as a
// validation-style 400, per the rollback-then-report policy.
func respondServiceError(ctx *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Fields})
	case errors.Is(err, services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Conflicting record already exists"})
	default:
		log.Printf("Unhandled service error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
