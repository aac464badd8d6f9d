package services

import (
	"yatube/internal/db"
	"yatube/internal/models"
)

// Follow creates the edge user → target, if it does not exist yet. A second
// call is a no-op, backed by the (author_id, user_id) unique index. Following
// yourself is silently ignored. Unknown target is gorm.ErrRecordNotFound,
// surfaced as a 404 by the handler rather than a server fault.
func Follow(user *models.User, targetUsername string) error {
	var author models.User
	if err := db.DB.Where("username = ?", targetUsername).First(&author).Error; err != nil {
		return err
	}
	if author.ID == user.ID {
		return nil
	}

	edge := models.Follow{AuthorID: &author.ID, UserID: user.ID}
	return db.DB.
		Where("author_id = ? AND user_id = ?", author.ID, user.ID).
		FirstOrCreate(&edge).Error
}

// Unfollow removes the edge user → target. Removing an edge that does not
// exist is a no-op; unknown target is gorm.ErrRecordNotFound.
func Unfollow(user *models.User, targetUsername string) error {
	var author models.User
	if err := db.DB.Where("username = ?", targetUsername).First(&author).Error; err != nil {
		return err
	}
	return db.DB.
		Where("author_id = ? AND user_id = ?", author.ID, user.ID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether viewer follows author. Recomputed per request.
func IsFollowing(viewerID, authorID uint) bool {
	if viewerID == 0 {
		return false
	}
	var count int64
	db.DB.Model(&models.Follow{}).
		Where("author_id = ? AND user_id = ?", authorID, viewerID).
		Count(&count)
	return count > 0
}

// FollowerCount returns how many users follow the author.
func FollowerCount(authorID uint) int64 {
	var count int64
	db.DB.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count)
	return count
}

// FollowingCount returns how many authors the user follows.
func FollowingCount(userID uint) int64 {
	var count int64
	db.DB.Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count)
	return count
}
