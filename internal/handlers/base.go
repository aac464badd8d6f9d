package handlers

import (
	"net/http"
	"yatube/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// NotFound renders the custom 404 page, also wired as the NoRoute handler.
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "404.html", gin.H{"Title": "Not found", "Path": c.Request.URL.Path})
}

// ServerError renders the custom 500 page; used by the recovery middleware.
func ServerError(c *gin.Context) {
	Render(c, http.StatusInternalServerError, "500.html", gin.H{"Title": "Server error"})
}
