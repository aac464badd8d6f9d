package main

import (
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"
	"yatube/internal/cache"
	"yatube/internal/db"
	"yatube/internal/handlers"
	"yatube/internal/middleware"
	"yatube/internal/router"
	"yatube/internal/services"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		log.Printf("panic recovered: %v", err)
		handlers.ServerError(c)
	}))

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("yatube_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static assets and uploaded media
	r.Static("/static", "./web/static")
	r.Static("/media", services.MediaRoot())

	// Middleware
	r.Use(middleware.LoadUser())

	// Fragment cache shared by the handlers that render cached pages
	fragmentCache := cache.New(100)

	router.RegisterRoutes(r, fragmentCache)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Yatube server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble layout + view
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+1)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"date": func(t time.Time) string {
			return t.Format("02 Jan 2006 15:04")
		},
	}

	// Feeds
	r.AddFromFilesFuncs("index.html", funcMap, assemble(templatesDir+"/views/index.html")...)
	r.AddFromFilesFuncs("group.html", funcMap, assemble(templatesDir+"/views/group.html")...)
	r.AddFromFilesFuncs("follow.html", funcMap, assemble(templatesDir+"/views/follow.html")...)

	// Posts
	r.AddFromFilesFuncs("new.html", funcMap, assemble(templatesDir+"/views/new.html")...)
	r.AddFromFilesFuncs("post.html", funcMap, assemble(templatesDir+"/views/post.html")...)
	r.AddFromFilesFuncs("profile.html", funcMap, assemble(templatesDir+"/views/profile.html")...)

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/signup.html", funcMap, assemble(templatesDir+"/views/auth/signup.html")...)

	// Error pages
	r.AddFromFilesFuncs("404.html", funcMap, assemble(templatesDir+"/views/404.html")...)
	r.AddFromFilesFuncs("500.html", funcMap, assemble(templatesDir+"/views/500.html")...)

	return r
}
