package db

import (
	"testing"
	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) {
	t.Helper()

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := g.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(g))
	DB = g
}

func seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, DB.Create(&user).Error)
	return &user
}

func TestDeleteGroupDetachesPosts(t *testing.T) {
	setupDB(t)
	author := seedUser(t, "leo")
	group := models.Group{Title: "Tech", Slug: "tech"}
	require.NoError(t, DB.Create(&group).Error)
	post := models.Post{Text: "hello", AuthorID: author.ID, GroupID: &group.ID}
	require.NoError(t, DB.Create(&post).Error)

	require.NoError(t, DeleteGroup(group.ID))

	var got models.Post
	require.NoError(t, DB.First(&got, post.ID).Error)
	assert.Nil(t, got.GroupID)

	var groupCount int64
	DB.Model(&models.Group{}).Count(&groupCount)
	assert.Zero(t, groupCount)
}

func TestDeleteUserCascadesContent(t *testing.T) {
	setupDB(t)
	leo := seedUser(t, "leo")
	mia := seedUser(t, "mia")

	post := models.Post{Text: "leo's post", AuthorID: leo.ID}
	require.NoError(t, DB.Create(&post).Error)
	// Mia comments on leo's post; leo comments on mia's post
	miaPost := models.Post{Text: "mia's post", AuthorID: mia.ID}
	require.NoError(t, DB.Create(&miaPost).Error)
	require.NoError(t, DB.Create(&models.Comment{PostID: post.ID, AuthorID: mia.ID, Text: "hi"}).Error)
	require.NoError(t, DB.Create(&models.Comment{PostID: miaPost.ID, AuthorID: leo.ID, Text: "yo"}).Error)

	require.NoError(t, DeleteUser(leo.ID))

	// Leo's posts are gone, with their comments; leo's own comments too
	var postCount, commentCount int64
	DB.Model(&models.Post{}).Count(&postCount)
	DB.Model(&models.Comment{}).Count(&commentCount)
	assert.Equal(t, int64(1), postCount)
	assert.Zero(t, commentCount)
}

func TestDeleteUserFollowEdges(t *testing.T) {
	setupDB(t)
	leo := seedUser(t, "leo")
	mia := seedUser(t, "mia")
	eve := seedUser(t, "eve")

	// mia follows leo; leo follows eve
	require.NoError(t, DB.Create(&models.Follow{AuthorID: &leo.ID, UserID: mia.ID}).Error)
	require.NoError(t, DB.Create(&models.Follow{AuthorID: &eve.ID, UserID: leo.ID}).Error)

	require.NoError(t, DeleteUser(leo.ID))

	// The edge where leo was followed survives with author unset
	var asAuthor models.Follow
	require.NoError(t, DB.Where("user_id = ?", mia.ID).First(&asAuthor).Error)
	assert.Nil(t, asAuthor.AuthorID)

	// The edge where leo was the follower is gone
	var count int64
	DB.Model(&models.Follow{}).Where("user_id = ?", leo.ID).Count(&count)
	assert.Zero(t, count)
}
