package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goalboard-dev/goalboard/db"
	"github.com/goalboard-dev/goalboard/internal/access"
	"github.com/goalboard-dev/goalboard/internal/models"
	"github.com/goalboard-dev/goalboard/internal/services"
	"github.com/goalboard-dev/goalboard/internal/utils"
)

type CreateBoardRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

type ParticipantRequest struct {
	Username string      `json:"user" binding:"required"`
	Role     models.Role `json:"role" binding:"required"`
}

type UpdateBoardRequest struct {
	Title        string               `json:"title" binding:"required,max=255"`
	Participants []ParticipantRequest `json:"participants"`
}

type ParticipantResponse struct {
	ID       uint        `json:"id"`
	Username string      `json:"user"`
	Role     models.Role `json:"role"`
	Created  time.Time   `json:"created"`
	Updated  time.Time   `json:"updated"`
}

type BoardResponse struct {
	ID           uint                  `json:"id"`
	Title        string                `json:"title"`
	IsDeleted    bool                  `json:"is_deleted"`
	Created      time.Time             `json:"created"`
	Updated      time.Time             `json:"updated"`
	Participants []ParticipantResponse `json:"participants,omitempty"`
}

func boardResponse(board *models.Board) BoardResponse {
	return BoardResponse{
		ID:        board.ID,
		Title:     board.Title,
		IsDeleted: board.IsDeleted,
		Created:   board.Created,
		Updated:   board.Updated,
	}
}

func participantResponses(boardID uint) ([]ParticipantResponse, error) {
	var participants []models.BoardParticipant

	err := db.DB.Preload("User").Where("board_id = ?", boardID).Order("role, id").Find(&participants).Error

	if err != nil {
		return nil, err
	}

	response := make([]ParticipantResponse, 0, len(participants))

	for _, p := range participants {
		response = append(response, ParticipantResponse{
			ID:       p.ID,
			Username: p.User.Username,
			Role:     p.Role,
			Created:  p.Created,
			Updated:  p.Updated,
		})
	}

	return response, nil
}

func CreateBoard(ctx *gin.Context) {
	var body CreateBoardRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	board, err := services.CreateBoard(db.DB, userID, body.Title)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, boardResponse(board))
}

func ListBoards(ctx *gin.Context) {
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

	var boards []models.Board

	err = db.DB.Scopes(access.VisibleBoards(userID)).
		Order("boards.title").
		Limit(limit).
		Offset(offset).
		Find(&boards).Error

	if err != nil {
		log.Printf("Failed to list boards: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]BoardResponse, 0, len(boards))

	for i := range boards {
		response = append(response, boardResponse(&boards[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetBoard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	boardID, err := utils.GetIDParam(ctx, "board_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var board models.Board

	if err := db.DB.Scopes(access.VisibleBoards(userID)).First(&board, boardID).Error; err != nil {
		respondServiceError(ctx, services.ErrNotFound)
		return
	}

	response := boardResponse(&board)

	response.Participants, err = participantResponses(board.ID)

	if err != nil {
		log.Printf("Failed to load participants: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateBoard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	boardID, err := utils.GetIDParam(ctx, "board_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateBoardRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	update := services.BoardUpdate{Title: body.Title}

	if body.Participants != nil {
		update.Participants = make([]services.ParticipantInput, 0, len(body.Participants))
		for _, p := range body.Participants {
			update.Participants = append(update.Participants, services.ParticipantInput{
				Username: p.Username,
				Role:     p.Role,
			})
		}
	}

	board, err := services.UpdateBoard(db.DB, userID, boardID, update)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	response := boardResponse(board)

	response.Participants, err = participantResponses(board.ID)

	if err != nil {
		log.Printf("Failed to load participants: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteBoard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	boardID, err := utils.GetIDParam(ctx, "board_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.DeleteBoard(db.DB, userID, boardID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
