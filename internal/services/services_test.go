package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/goalboard-dev/goalboard/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway in-memory database. Each test gets its own
// named memory DB so pooled connections see the same data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = d.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardParticipant{},
		&models.GoalCategory{},
		&models.Goal{},
		&models.GoalComment{},
	)
	require.NoError(t, err)

	return d
}

func createUser(t *testing.T, d *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		PasswordHash: "irrelevant",
		IsActive:     true,
	}
	require.NoError(t, d.Create(&user).Error)

	return user
}

func addParticipant(t *testing.T, d *gorm.DB, boardID, userID uint, role models.Role) models.BoardParticipant {
	t.Helper()

	participant := models.BoardParticipant{BoardID: boardID, UserID: userID, Role: role}
	require.NoError(t, d.Create(&participant).Error)

	return participant
}

func createCategory(t *testing.T, d *gorm.DB, boardID, userID uint, title string) models.GoalCategory {
	t.Helper()

	category := models.GoalCategory{Title: title, BoardID: boardID, UserID: userID}
	require.NoError(t, d.Create(&category).Error)

	return category
}

func createGoal(t *testing.T, d *gorm.DB, categoryID, userID uint, title string) models.Goal {
	t.Helper()

	goal := models.Goal{
		Title:      title,
		CategoryID: categoryID,
		UserID:     userID,
		Status:     models.StatusToDo,
		Priority:   models.PriorityMedium,
	}
	require.NoError(t, d.Create(&goal).Error)

	return goal
}

// rolesOn returns user id -> role for every participant row on the board.
func rolesOn(t *testing.T, d *gorm.DB, boardID uint) map[uint]models.Role {
	t.Helper()

	var participants []models.BoardParticipant
	require.NoError(t, d.Where("board_id = ?", boardID).Find(&participants).Error)

	roles := make(map[uint]models.Role, len(participants))
	for _, p := range participants {
		roles[p.UserID] = p.Role
	}

	return roles
}
