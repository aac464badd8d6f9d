package db

import (
	"yatube/internal/models"

	"gorm.io/gorm"
)

// Entity deletion is not exposed over HTTP; these store operations exist so
// the referential rules hold the same way on every backend instead of
// depending on how a given driver applies FK actions.

// DeleteGroup removes a group and detaches its posts. Posts are kept with
// the group reference cleared, not deleted.
func DeleteGroup(groupID uint) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("group_id = ?", groupID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, groupID).Error
	})
}

// DeleteUser removes a user together with their posts and comments. Follow
// edges pointing at the user as author survive with the author unset; edges
// held by the user as follower are removed.
func DeleteUser(userID uint) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).
			Where("author_id = ?", userID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Post{}, postIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("author_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Follow{}).
			Where("author_id = ?", userID).
			Update("author_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
