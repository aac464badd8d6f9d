package router

import (
	"yatube/internal/cache"
	"yatube/internal/handlers"
	"yatube/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, fragmentCache *cache.Cache) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler(fragmentCache)
	followHandler := handlers.NewFollowHandler()

	// Public routes
	r.GET("/", postHandler.Index)
	r.GET("/group/:slug", postHandler.GroupPosts)

	r.GET("/auth/signup", authHandler.ShowRegister)
	r.POST("/auth/signup", authHandler.Register)
	r.GET("/auth/login", authHandler.ShowLogin)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/auth/logout", authHandler.Logout)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/new", postHandler.ShowNew)
		authorized.POST("/new", postHandler.Create)
		authorized.GET("/follow", followHandler.FollowIndex)

		authorized.GET("/:username/follow", followHandler.Follow)
		authorized.GET("/:username/unfollow", followHandler.Unfollow)
		authorized.GET("/:username/:post_id/edit", postHandler.ShowEdit)
		authorized.POST("/:username/:post_id/edit", postHandler.Update)
		authorized.POST("/:username/:post_id/comment", postHandler.AddComment)
	}

	// Profile and post pages; static segments above take priority over
	// the :username wildcard
	r.GET("/:username", postHandler.Profile)
	r.GET("/:username/:post_id", postHandler.Detail)

	// Custom 404 for anything unmatched
	r.NoRoute(handlers.NotFound)
}
