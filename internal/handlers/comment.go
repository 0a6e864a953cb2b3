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

type CreateCommentRequest struct {
	Text   string `json:"text" binding:"required"`
	GoalID uint   `json:"goal" binding:"required"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func CreateComment(ctx *gin.Context) {
	var body CreateCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	comment, err := services.CreateComment(db.DB, userID, body.GoalID, body.Text)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}

// ListComments returns comments on goals the caller can see, newest first,
// optionally narrowed to one goal.
func ListComments(ctx *gin.Context) {
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

	query := db.DB.Scopes(access.VisibleComments(userID))

	if goalID := ctx.Query("goal"); goalID != "" {
		query = query.Where("goal_comments.goal_id = ?", goalID)
	}

	var comments []models.GoalComment

	err = query.Order("goal_comments.created DESC").Limit(limit).Offset(offset).Find(&comments).Error

	if err != nil {
		log.Printf("Failed to list comments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	ctx.JSON(http.StatusOK, comments)
}

func GetComment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := utils.GetIDParam(ctx, "comment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.GoalComment

	err = db.DB.Scopes(access.VisibleComments(userID)).First(&comment, commentID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondServiceError(ctx, services.ErrNotFound)
		} else {
			log.Printf("Failed to fetch comment: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comment"})
		}
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

func UpdateComment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := utils.GetIDParam(ctx, "comment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment, err := services.UpdateComment(db.DB, userID, commentID, body.Text)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

func DeleteComment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := utils.GetIDParam(ctx, "comment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.DeleteComment(db.DB, userID, commentID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
