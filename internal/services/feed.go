package services

import (
	"math"
	"yatube/internal/db"
	"yatube/internal/models"

	"gorm.io/gorm"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

// Page is one slice of a feed plus the paginator state the templates need.
type Page struct {
	Posts      []models.Post
	Number     int
	TotalPages int
	Total      int64
	HasPrev    bool
	HasNext    bool
}

// paginate runs the count + windowed select for a post query. Out-of-range
// page numbers clamp to the nearest valid page; an empty result set is a
// single empty page.
func paginate(query *gorm.DB, pageNum int) (*Page, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(PageSize)))
	if totalPages == 0 {
		totalPages = 1
	}
	if pageNum < 1 {
		pageNum = 1
	}
	if pageNum > totalPages {
		pageNum = totalPages
	}

	var posts []models.Post
	err := query.Session(&gorm.Session{}).
		Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC").
		Limit(PageSize).
		Offset((pageNum - 1) * PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	fillCommentCounts(posts)

	return &Page{
		Posts:      posts,
		Number:     pageNum,
		TotalPages: totalPages,
		Total:      total,
		HasPrev:    pageNum > 1,
		HasNext:    pageNum < totalPages,
	}, nil
}

// ListAll returns the global feed, newest first.
func ListAll(pageNum int) (*Page, error) {
	return paginate(db.DB.Model(&models.Post{}), pageNum)
}

// ListByGroup returns the feed of one group. Unknown slug is
// gorm.ErrRecordNotFound.
func ListByGroup(slug string, pageNum int) (*models.Group, *Page, error) {
	var group models.Group
	if err := db.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, nil, err
	}
	page, err := paginate(db.DB.Model(&models.Post{}).Where("group_id = ?", group.ID), pageNum)
	if err != nil {
		return nil, nil, err
	}
	return &group, page, nil
}

// ListByAuthor returns one author's feed. Unknown username is
// gorm.ErrRecordNotFound.
func ListByAuthor(username string, pageNum int) (*models.User, *Page, error) {
	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		return nil, nil, err
	}
	page, err := paginate(db.DB.Model(&models.Post{}).Where("author_id = ?", author.ID), pageNum)
	if err != nil {
		return nil, nil, err
	}
	return &author, page, nil
}

// ListFollowed returns posts whose author the given user follows.
func ListFollowed(userID uint, pageNum int) (*Page, error) {
	sub := db.DB.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ? AND author_id IS NOT NULL", userID)
	return paginate(db.DB.Model(&models.Post{}).Where("author_id IN (?)", sub), pageNum)
}

// fillCommentCounts batch-fills CommentCount for a page of posts.
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}
