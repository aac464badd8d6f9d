package services

import (
	"errors"
	"mime/multipart"
	"strings"
	"yatube/internal/db"
	"yatube/internal/models"
)

var (
	// ErrTextRequired is a form-level failure, rendered back inline.
	ErrTextRequired = errors.New("text is required")
	// ErrNotOwner means someone other than the author tried to edit.
	ErrNotOwner = errors.New("not the post author")
)

// PostInput carries the post form fields. Author is never taken from the
// form; callers pass the authenticated user explicitly.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   *multipart.FileHeader
}

// CreatePost persists a new post for the authenticated author. The image, if
// any, is validated and stored before the row is written.
func CreatePost(author *models.User, in PostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrTextRequired
	}

	post := models.Post{
		Text:     in.Text,
		AuthorID: author.ID,
		GroupID:  in.GroupID,
	}

	if in.Image != nil {
		path, err := SavePostImage(in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = path
	}

	if err := db.DB.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies a partial edit. Only the author may edit; the creation
// timestamp is never touched.
func UpdatePost(editor *models.User, postID uint, in PostInput) (*models.Post, error) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		return nil, err
	}
	if post.AuthorID != editor.ID {
		return nil, ErrNotOwner
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrTextRequired
	}

	updates := map[string]interface{}{
		"text":     in.Text,
		"group_id": in.GroupID,
	}
	if in.Image != nil {
		path, err := SavePostImage(in.Image)
		if err != nil {
			return nil, err
		}
		updates["image"] = path
	}

	if err := db.DB.Model(&post).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// AddComment persists a comment with author and post forced server-side.
func AddComment(author *models.User, postID uint, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Text:     text,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetPost looks up a post by id scoped to its author's username. A post id
// under the wrong username is gorm.ErrRecordNotFound, same as a missing post.
func GetPost(username string, postID uint) (*models.Post, error) {
	var post models.Post
	err := db.DB.Preload("Author").Preload("Group").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("users.username = ? AND posts.id = ?", username, postID).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// CommentsFor returns a post's comments, newest first.
func CommentsFor(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.DB.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

// PostCountBy returns how many posts an author has.
func PostCountBy(authorID uint) int64 {
	var count int64
	db.DB.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count)
	return count
}
