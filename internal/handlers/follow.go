package handlers

import (
	"errors"
	"net/http"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FollowHandler struct{}

func NewFollowHandler() *FollowHandler {
	return &FollowHandler{}
}

// FollowIndex - feed of followed authors /follow
func (h *FollowHandler) FollowIndex(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	page, err := services.ListFollowed(user.ID, pageParam(c))
	if err != nil {
		ServerError(c)
		return
	}

	Render(c, http.StatusOK, "follow.html", gin.H{
		"Title": "Followed authors",
		"Page":  page,
	})
}

// Follow - /:username/follow
func (h *FollowHandler) Follow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")

	if err := services.Follow(user, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c)
		return
	}

	c.Redirect(http.StatusFound, "/"+username)
}

// Unfollow - /:username/unfollow
func (h *FollowHandler) Unfollow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")

	if err := services.Unfollow(user, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c)
		return
	}

	c.Redirect(http.StatusFound, "/"+username)
}
