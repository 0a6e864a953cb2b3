package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goalboard-dev/goalboard/db"
	"github.com/goalboard-dev/goalboard/internal/access"
	"github.com/goalboard-dev/goalboard/internal/models"
	"github.com/goalboard-dev/goalboard/internal/services"
	"github.com/goalboard-dev/goalboard/internal/utils"
	"gorm.io/gorm"
)

type CreateCategoryRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	BoardID uint   `json:"board" binding:"required"`
}

type UpdateCategoryRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

var categoryOrderings = map[string]string{
	"title":    "goal_categories.title",
	"-title":   "goal_categories.title DESC",
	"created":  "goal_categories.created",
	"-created": "goal_categories.created DESC",
}

func CreateCategory(ctx *gin.Context) {
	var body CreateCategoryRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	category, err := services.CreateCategory(db.DB, userID, body.BoardID, body.Title)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func ListCategories(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit, offset, err := utils.GetLimitOffset(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := db.DB.Scopes(access.VisibleCategories(userID))

	if boardID := ctx.Query("board"); boardID != "" {
		query = query.Where("goal_categories.board_id = ?", boardID)
	}

	if search := ctx.Query("search"); search != "" {
		query = query.Where("LOWER(goal_categories.title) LIKE LOWER(?)", "%"+search+"%")
	}

	order, ok := categoryOrderings[ctx.DefaultQuery("ordering", "title")]

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ordering"})
		return
	}

	var categories []models.GoalCategory

	if err := query.Order(order).Limit(limit).Offset(offset).Find(&categories).Error; err != nil {
		log.Printf("Failed to list categories: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

func GetCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	categoryID, err := utils.GetIDParam(ctx, "category_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.GoalCategory

	err = db.DB.Scopes(access.VisibleCategories(userID)).First(&category, categoryID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondServiceError(ctx, services.ErrNotFound)
		} else {
			log.Printf("Failed to fetch category: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve category"})
		}
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func UpdateCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	categoryID, err := utils.GetIDParam(ctx, "category_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateCategoryRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	category, err := services.UpdateCategory(db.DB, userID, categoryID, body.Title)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

func DeleteCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	categoryID, err := utils.GetIDParam(ctx, "category_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.DeleteCategory(db.DB, userID, categoryID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
