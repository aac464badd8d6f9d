package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"yatube/internal/cache"
	"yatube/internal/db"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/router"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testTemplates renders deterministic plain-text bodies so tests can assert
// on content without depending on the real markup.
func testTemplates() multitemplate.Renderer {
	r := multitemplate.NewRenderer()
	r.AddFromString("index.html", `{{ if .CurrentUser }}user={{ .CurrentUser.Username }}{{ else }}anon{{ end }}|{{ range .Page.Posts }}[{{ .Text }}]{{ end }}p{{ .Page.Number }}/{{ .Page.TotalPages }}`)
	r.AddFromString("group.html", `{{ .Group.Slug }}:{{ range .Page.Posts }}[{{ .Text }}]{{ end }}`)
	r.AddFromString("follow.html", `{{ range .Page.Posts }}[{{ .Text }}]{{ end }}`)
	r.AddFromString("new.html", `new:{{ range $k, $v := .Errors }}{{ $k }}={{ $v }};{{ end }}`)
	r.AddFromString("post.html", `{{ .Post.Text }}|comments:{{ len .Comments }}`)
	r.AddFromString("profile.html", `{{ .Author.Username }}|posts:{{ .PostCount }}|followers:{{ .Followers }}|following:{{ .Following }}`)
	r.AddFromString("auth/login.html", `login:{{ .Error }}`)
	r.AddFromString("auth/signup.html", `signup:{{ .Error }}`)
	r.AddFromString("404.html", `not found`)
	r.AddFromString("500.html", `server error`)
	return r
}

func setupApp(t *testing.T) (*gin.Engine, *cache.Cache) {
	t.Helper()

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := g.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(g))
	db.DB = g

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("yatube_session", cookie.NewStore([]byte("test_secret"))))
	r.HTMLRender = testTemplates()
	r.Use(middleware.LoadUser())

	fragmentCache := cache.New(100)
	router.RegisterRoutes(r, fragmentCache)
	return r, fragmentCache
}

// signup registers a user through the real handler and returns the session
// cookie plus the stored user row.
func signup(t *testing.T, r *gin.Engine, username string) (*http.Cookie, *models.User) {
	t.Helper()

	form := url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"password123"},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "yatube_session" {
			session = c
		}
	}
	require.NotNil(t, session, "signup should set a session cookie")

	var user models.User
	require.NoError(t, db.DB.Where("username = ?", username).First(&user).Error)
	return session, &user
}

func doGET(r *gin.Engine, path string, session *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if session != nil {
		req.AddCookie(session)
	}
	r.ServeHTTP(w, req)
	return w
}

func doPOST(r *gin.Engine, path string, form url.Values, session *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != nil {
		req.AddCookie(session)
	}
	r.ServeHTTP(w, req)
	return w
}

func seedPost(t *testing.T, author *models.User, text string) *models.Post {
	t.Helper()
	post := models.Post{Text: text, AuthorID: author.ID}
	require.NoError(t, db.DB.Create(&post).Error)
	return &post
}
