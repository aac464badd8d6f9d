package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"yatube/internal/cache"
	"yatube/internal/db"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Index responses are cached briefly; a post created inside the window shows
// up only after the entry expires. Time-based invalidation only.
const indexCacheTTL = 20 * time.Second

type PostHandler struct {
	cache *cache.Cache
}

func NewPostHandler(c *cache.Cache) *PostHandler {
	return &PostHandler{cache: c}
}

func pageParam(c *gin.Context) int {
	if p := utils.StringToInt(c.Query("page")); p > 0 {
		return p
	}
	return 1
}

// Index - global feed /
func (h *PostHandler) Index(c *gin.Context) {
	pageNum := pageParam(c)

	// Only the page data goes into the cache. Render mutates the map it is
	// given (CurrentUser, CurrentPath), so each request gets a fresh one.
	cacheKey := fmt.Sprintf("index:page:%d", pageNum)
	page, _ := h.cache.Get(cacheKey).(*services.Page)
	if page == nil {
		var err error
		page, err = services.ListAll(pageNum)
		if err != nil {
			ServerError(c)
			return
		}
		h.cache.Set(cacheKey, page, indexCacheTTL)
	}

	Render(c, http.StatusOK, "index.html", gin.H{
		"Title": "Latest posts",
		"Page":  page,
	})
}

// GroupPosts - group feed /group/:slug
func (h *PostHandler) GroupPosts(c *gin.Context) {
	group, page, err := services.ListByGroup(c.Param("slug"), pageParam(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c)
		return
	}

	Render(c, http.StatusOK, "group.html", gin.H{
		"Title": group.Title,
		"Group": group,
		"Page":  page,
	})
}

// ShowNew - post form /new
func (h *PostHandler) ShowNew(c *gin.Context) {
	Render(c, http.StatusOK, "new.html", gin.H{
		"Title":  "New post",
		"Groups": listGroups(),
	})
}

// Create - submit /new
func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	in := postInput(c)
	if _, err := services.CreatePost(user, in); err != nil {
		if field, msg, ok := fieldError(err); ok {
			// Form failures re-render the form, not an error page
			Render(c, http.StatusOK, "new.html", gin.H{
				"Title":  "New post",
				"Groups": listGroups(),
				"Errors": gin.H{field: msg},
				"Text":   in.Text,
			})
			return
		}
		ServerError(c)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Profile - author page /:username
func (h *PostHandler) Profile(c *gin.Context) {
	author, page, err := services.ListByAuthor(c.Param("username"), pageParam(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c)
		return
	}

	Render(c, http.StatusOK, "profile.html", gin.H{
		"Title":     author.Username,
		"Author":    author,
		"Page":      page,
		"PostCount": page.Total,
		"Following": viewerFollows(c, author.ID),
		"Followers": services.FollowerCount(author.ID),
		"Follows":   services.FollowingCount(author.ID),
	})
}

// lookupPost resolves the /:username/:post_id pair, writing the 404 or 500
// page itself. A nil result means the response is already written.
func lookupPost(c *gin.Context) *models.Post {
	post, err := services.GetPost(c.Param("username"), utils.StringToUint(c.Param("post_id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
		} else {
			ServerError(c)
		}
		return nil
	}
	return post
}

// Detail - post page /:username/:post_id
func (h *PostHandler) Detail(c *gin.Context) {
	post := lookupPost(c)
	if post == nil {
		return
	}

	comments, err := services.CommentsFor(post.ID)
	if err != nil {
		ServerError(c)
		return
	}

	Render(c, http.StatusOK, "post.html", gin.H{
		"Title":       post.Author.Username,
		"Post":        post,
		"PostContent": utils.RenderText(post.Text),
		"Author":      post.Author,
		"Comments":    comments,
		"PostCount":   services.PostCountBy(post.AuthorID),
		"Following":   viewerFollows(c, post.AuthorID),
		"Followers":   services.FollowerCount(post.AuthorID),
		"Follows":     services.FollowingCount(post.AuthorID),
	})
}

// ShowEdit - edit form /:username/:post_id/edit
func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")
	postID := utils.StringToUint(c.Param("post_id"))

	post := lookupPost(c)
	if post == nil {
		return
	}

	// Non-owners are sent back to the post, not shown an error
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, postPath(username, postID))
		return
	}

	Render(c, http.StatusOK, "new.html", gin.H{
		"Title":  "Edit post",
		"Post":   post,
		"Text":   post.Text,
		"Groups": listGroups(),
	})
}

// Update - submit /:username/:post_id/edit
func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")
	postID := utils.StringToUint(c.Param("post_id"))

	post := lookupPost(c)
	if post == nil {
		return
	}

	in := postInput(c)
	if _, err := services.UpdatePost(user, post.ID, in); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			c.Redirect(http.StatusFound, postPath(username, postID))
			return
		}
		if field, msg, ok := fieldError(err); ok {
			Render(c, http.StatusOK, "new.html", gin.H{
				"Title":  "Edit post",
				"Post":   post,
				"Text":   in.Text,
				"Groups": listGroups(),
				"Errors": gin.H{field: msg},
			})
			return
		}
		ServerError(c)
		return
	}

	c.Redirect(http.StatusFound, postPath(username, postID))
}

// AddComment - submit /:username/:post_id/comment
// Unauthenticated POSTs never get here: the auth guard redirects them away
// before anything is written.
func (h *PostHandler) AddComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")
	postID := utils.StringToUint(c.Param("post_id"))

	post := lookupPost(c)
	if post == nil {
		return
	}

	// Invalid comment text falls through to the same redirect, no comment row
	if _, err := services.AddComment(user, post.ID, c.PostForm("text")); err != nil &&
		!errors.Is(err, services.ErrTextRequired) {
		ServerError(c)
		return
	}

	c.Redirect(http.StatusFound, postPath(username, postID))
}

func postPath(username string, postID uint) string {
	return fmt.Sprintf("/%s/%d", username, postID)
}

func postInput(c *gin.Context) services.PostInput {
	in := services.PostInput{Text: c.PostForm("text")}
	if groupID := utils.StringToUint(c.PostForm("group")); groupID > 0 {
		in.GroupID = &groupID
	}
	// The image is optional; browsers send an empty part when no file is chosen
	if header, err := c.FormFile("image"); err == nil && header.Size > 0 {
		in.Image = header
	}
	return in
}

// fieldError maps service validation errors onto a form field.
func fieldError(err error) (field, msg string, ok bool) {
	switch {
	case errors.Is(err, services.ErrTextRequired):
		return "text", "Text is required", true
	case errors.Is(err, services.ErrUnsupportedImage):
		return "image", "Upload a valid image (jpeg, png or gif)", true
	}
	return "", "", false
}

func listGroups() []models.Group {
	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)
	return groups
}

func viewerFollows(c *gin.Context, authorID uint) bool {
	if user := middleware.CurrentUser(c); user != nil {
		return services.IsFollowing(user.ID, authorID)
	}
	return false
}
