package services

import (
	"fmt"
	"testing"
	"yatube/internal/db"
	"yatube/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB points the global handle at a fresh in-memory database.
func setupDB(t *testing.T) {
	t.Helper()

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := g.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(g))
	db.DB = g
}

func createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}

func createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := models.Group{Title: "Group " + slug, Slug: slug, Description: "test group"}
	require.NoError(t, db.DB.Create(&group).Error)
	return &group
}

func createPost(t *testing.T, author *models.User, text string, groupID *uint) *models.Post {
	t.Helper()
	post := models.Post{Text: text, AuthorID: author.ID, GroupID: groupID}
	require.NoError(t, db.DB.Create(&post).Error)
	return &post
}

func createPosts(t *testing.T, author *models.User, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		createPost(t, author, fmt.Sprintf("post %d", i), nil)
	}
}
