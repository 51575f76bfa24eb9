package api

import (
	"html/template"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/plumeblog/plume/config"
	"github.com/plumeblog/plume/internal/api/handler"
	"github.com/plumeblog/plume/internal/api/middleware"
	"github.com/plumeblog/plume/internal/service"
)

// NewRouter builds the full route table. templatesGlob and mediaDir
// are injectable so tests can run against fixtures.
func NewRouter(h *handler.Handler, auth *service.AuthService, cfg *config.Config, templatesGlob, mediaDir string) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	r.Use(middleware.RequestLog())
	r.Use(middleware.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware("plume"))
	}
	r.Use(middleware.Session(auth))

	r.SetFuncMap(template.FuncMap{
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
	})
	r.LoadHTMLGlob(templatesGlob)
	r.Static("/media", mediaDir)
	r.NoRoute(func(c *gin.Context) {
		c.HTML(404, "404.html", gin.H{"Path": c.Request.URL.Path})
	})

	writeLimit := middleware.WriteLimit(rate.Limit(5), 10)

	r.GET("/", h.Index)
	r.GET("/group/:slug", h.GroupFeed)

	r.GET("/about/author", h.AboutAuthor)
	r.GET("/about/tech", h.AboutTech)

	sessions := r.Group("/auth")
	{
		sessions.GET("/signup", h.SignupForm)
		sessions.POST("/signup", writeLimit, h.Signup)
		sessions.GET("/login", h.LoginForm)
		sessions.POST("/login", writeLimit, h.Login)
		sessions.GET("/logout", h.Logout)
	}

	authed := r.Group("", middleware.RequireAuth())
	{
		authed.GET("/follow", h.FollowFeed)
		authed.GET("/new", h.NewPostForm)
		authed.POST("/new", writeLimit, h.CreatePost)
		authed.GET("/:username/follow", h.Follow)
		authed.GET("/:username/unfollow", h.Unfollow)
		authed.GET("/:username/:post_id/edit", h.EditPostForm)
		authed.POST("/:username/:post_id/edit", writeLimit, h.UpdatePost)
		authed.POST("/:username/:post_id/comment", writeLimit, h.AddComment)
	}

	r.GET("/:username", h.Profile)
	r.GET("/:username/:post_id", h.PostDetail)

	return r
}
