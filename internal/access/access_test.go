package access

import (
	"fmt"
	"strings"
	"testing"

	"github.com/goalboard-dev/goalboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

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

func seedUser(t *testing.T, d *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{Username: username, PasswordHash: "irrelevant", IsActive: true}
	require.NoError(t, d.Create(&user).Error)

	return user
}

func seedBoard(t *testing.T, d *gorm.DB, title string, ownerID uint) models.Board {
	t.Helper()

	board := models.Board{Title: title}
	require.NoError(t, d.Create(&board).Error)
	require.NoError(t, d.Create(&models.BoardParticipant{
		BoardID: board.ID, UserID: ownerID, Role: models.RoleOwner,
	}).Error)

	return board
}

func TestCanRoleMatrix(t *testing.T) {
	d := newTestDB(t)

	owner := seedUser(t, d, "owner")
	writer := seedUser(t, d, "writer")
	reader := seedUser(t, d, "reader")
	outsider := seedUser(t, d, "outsider")

	board := seedBoard(t, d, "Home", owner.ID)
	require.NoError(t, d.Create(&models.BoardParticipant{BoardID: board.ID, UserID: writer.ID, Role: models.RoleWriter}).Error)
	require.NoError(t, d.Create(&models.BoardParticipant{BoardID: board.ID, UserID: reader.ID, Role: models.RoleReader}).Error)

	tests := []struct {
		name   string
		userID uint
		action Action
		want   bool
	}{
		{"owner read", owner.ID, ActionRead, true},
		{"owner write", owner.ID, ActionWrite, true},
		{"owner admin", owner.ID, ActionAdmin, true},
		{"writer read", writer.ID, ActionRead, true},
		{"writer write", writer.ID, ActionWrite, true},
		{"writer admin", writer.ID, ActionAdmin, false},
		{"reader read", reader.ID, ActionRead, true},
		{"reader write", reader.ID, ActionWrite, false},
		{"reader admin", reader.ID, ActionAdmin, false},
		{"outsider read", outsider.ID, ActionRead, false},
		{"outsider write", outsider.ID, ActionWrite, false},
		{"outsider admin", outsider.ID, ActionAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Can(d, tt.userID, tt.action, board.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleOnMissingParticipant(t *testing.T) {
	d := newTestDB(t)

	owner := seedUser(t, d, "owner")
	outsider := seedUser(t, d, "outsider")
	board := seedBoard(t, d, "Home", owner.ID)

	_, ok, err := RoleOn(d, outsider.ID, board.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVisibleBoards(t *testing.T) {
	d := newTestDB(t)

	alice := seedUser(t, d, "alice")
	bob := seedUser(t, d, "bob")

	mine := seedBoard(t, d, "Mine", alice.ID)
	seedBoard(t, d, "Not mine", bob.ID)

	deleted := seedBoard(t, d, "Gone", alice.ID)
	require.NoError(t, d.Model(&models.Board{}).Where("id = ?", deleted.ID).Update("is_deleted", true).Error)

	var boards []models.Board
	require.NoError(t, d.Scopes(VisibleBoards(alice.ID)).Find(&boards).Error)

	require.Len(t, boards, 1)
	assert.Equal(t, mine.ID, boards[0].ID)
}

func TestVisibleGoalsFollowOwnershipChain(t *testing.T) {
	d := newTestDB(t)

	alice := seedUser(t, d, "alice")
	bob := seedUser(t, d, "bob")

	aliceBoard := seedBoard(t, d, "Home", alice.ID)
	bobBoard := seedBoard(t, d, "Work", bob.ID)

	aliceCat := models.GoalCategory{Title: "Chores", BoardID: aliceBoard.ID, UserID: alice.ID}
	require.NoError(t, d.Create(&aliceCat).Error)
	bobCat := models.GoalCategory{Title: "Tasks", BoardID: bobBoard.ID, UserID: bob.ID}
	require.NoError(t, d.Create(&bobCat).Error)

	aliceGoal := models.Goal{Title: "Buy milk", CategoryID: aliceCat.ID, UserID: alice.ID, Status: models.StatusToDo, Priority: models.PriorityMedium}
	require.NoError(t, d.Create(&aliceGoal).Error)
	bobGoal := models.Goal{Title: "Ship it", CategoryID: bobCat.ID, UserID: bob.ID, Status: models.StatusToDo, Priority: models.PriorityMedium}
	require.NoError(t, d.Create(&bobGoal).Error)

	var goals []models.Goal
	require.NoError(t, d.Scopes(VisibleGoals(alice.ID)).Find(&goals).Error)

	require.Len(t, goals, 1)
	assert.Equal(t, aliceGoal.ID, goals[0].ID)

	// Comments follow the same chain.
	comment := models.GoalComment{Text: "note", GoalID: bobGoal.ID, UserID: bob.ID}
	require.NoError(t, d.Create(&comment).Error)

	var comments []models.GoalComment
	require.NoError(t, d.Scopes(VisibleComments(alice.ID)).Find(&comments).Error)
	assert.Empty(t, comments)

	var bobComments []models.GoalComment
	require.NoError(t, d.Scopes(VisibleComments(bob.ID)).Find(&bobComments).Error)
	assert.Len(t, bobComments, 1)
}

func TestVisibleCategoriesExcludeDeleted(t *testing.T) {
	d := newTestDB(t)

	alice := seedUser(t, d, "alice")
	board := seedBoard(t, d, "Home", alice.ID)

	kept := models.GoalCategory{Title: "Kept", BoardID: board.ID, UserID: alice.ID}
	require.NoError(t, d.Create(&kept).Error)
	gone := models.GoalCategory{Title: "Gone", BoardID: board.ID, UserID: alice.ID, IsDeleted: true}
	require.NoError(t, d.Create(&gone).Error)

	var categories []models.GoalCategory
	require.NoError(t, d.Scopes(VisibleCategories(alice.ID)).Find(&categories).Error)

	require.Len(t, categories, 1)
	assert.Equal(t, kept.ID, categories[0].ID)
}
