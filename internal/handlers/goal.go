package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goalboard-dev/goalboard/db"
	"github.com/goalboard-dev/goalboard/internal/access"
	"github.com/goalboard-dev/goalboard/internal/models"
	"github.com/goalboard-dev/goalboard/internal/services"
	"github.com/goalboard-dev/goalboard/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GoalRequest struct {
	Title        string              `json:"title" binding:"required,max=255"`
	Description  string              `json:"description"`
	CategoryID   uint                `json:"category" binding:"required"`
	Status       models.GoalStatus   `json:"status"`
	Priority     models.GoalPriority `json:"priority"`
	DueDate      *time.Time          `json:"due_date"`
	CustomFields datatypes.JSON      `json:"custom_fields"`
}

var goalOrderings = map[string]string{
	"title":     "goals.title",
	"-title":    "goals.title DESC",
	"created":   "goals.created",
	"-created":  "goals.created DESC",
	"due_date":  "goals.due_date",
	"-due_date": "goals.due_date DESC",
	"priority":  "goals.priority",
	"-priority": "goals.priority DESC",
}

func goalInput(body GoalRequest) services.GoalInput {
	return services.GoalInput{
		Title:        body.Title,
		Description:  body.Description,
		CategoryID:   body.CategoryID,
		Status:       body.Status,
		Priority:     body.Priority,
		DueDate:      body.DueDate,
		CustomFields: body.CustomFields,
	}
}

func CreateGoal(ctx *gin.Context) {
	var body GoalRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	goal, err := services.CreateGoal(db.DB, userID, goalInput(body))

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, goal)
}

// ListGoals returns goals across every board the caller participates in,
// with optional due-date range filtering and title/description search.
func ListGoals(ctx *gin.Context) {
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

	query := db.DB.Scopes(access.VisibleGoals(userID))

	if from := ctx.Query("due_date__gte"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date__gte"})
			return
		}
		query = query.Where("goals.due_date >= ?", parsed)
	}

	if to := ctx.Query("due_date__lte"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date__lte"})
			return
		}
		query = query.Where("goals.due_date <= ?", parsed)
	}

	if search := ctx.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(goals.title) LIKE LOWER(?) OR LOWER(goals.description) LIKE LOWER(?)",
			pattern, pattern,
		)
	}

	order, ok := goalOrderings[ctx.DefaultQuery("ordering", "title")]

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ordering"})
		return
	}

	var goals []models.Goal

	if err := query.Order(order).Limit(limit).Offset(offset).Find(&goals).Error; err != nil {
		log.Printf("Failed to list goals: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve goals"})
		return
	}

	ctx.JSON(http.StatusOK, goals)
}

func GetGoal(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	goalID, err := utils.GetIDParam(ctx, "goal_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var goal models.Goal

	err = db.DB.Scopes(access.VisibleGoals(userID)).First(&goal, goalID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondServiceError(ctx, services.ErrNotFound)
		} else {
			log.Printf("Failed to fetch goal: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve goal"})
		}
		return
	}

	ctx.JSON(http.StatusOK, goal)
}

func UpdateGoal(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	goalID, err := utils.GetIDParam(ctx, "goal_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body GoalRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	goal, err := services.UpdateGoal(db.DB, userID, goalID, goalInput(body))

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, goal)
}

func DeleteGoal(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	goalID, err := utils.GetIDParam(ctx, "goal_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.DeleteGoal(db.DB, userID, goalID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
