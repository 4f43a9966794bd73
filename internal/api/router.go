// Package api assembles the gin engine: middleware chain, HTML templates,
// web routes per the original URL scheme, and the /api/v1 JSON surface.
package api

import (
	"html/template"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/config"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/pagecache"
	"github.com/d60-Lab/yatube/web"

	_ "github.com/d60-Lab/yatube/docs" // swagger 文档注册
)

// RouterDeps 路由装配所需依赖；cache 传 pagecache.Disabled() 即关闭页面缓存
type RouterDeps struct {
	Handler  *handler.Handler
	Tokens   *auth.TokenManager
	Users    repository.UserRepository
	Cache    pagecache.Cache
	PageTTL  time.Duration
	MediaDir string // 为空则不挂载 /media
	Cfg      *config.Config
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	gin.SetMode(deps.Cfg.Server.Mode)
	r := gin.New()

	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLog())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if deps.Cfg.Tracing.Endpoint != "" {
		r.Use(otelgin.Middleware("yatube"))
	}
	r.Use(middleware.CurrentUser(deps.Tokens, deps.Users))

	h := deps.Handler
	pageCache := middleware.PageCache(deps.Cache, deps.PageTTL)
	requireLogin := middleware.RequireLogin()

	// 公开读路径
	r.GET("/", pageCache, h.Index)
	r.GET("/group/:slug/", h.GroupPosts)
	r.GET("/profile/:username/", h.Profile)
	r.GET("/posts/:id/", h.PostDetail)
	r.GET("/about/author/", h.AboutAuthor)
	r.GET("/about/tech/", h.AboutTech)

	// 登录后的写路径
	r.GET("/create/", requireLogin, h.PostCreateForm)
	r.POST("/create/", requireLogin, h.PostCreate)
	r.GET("/posts/:id/edit/", requireLogin, h.PostEditForm)
	r.POST("/posts/:id/edit/", requireLogin, h.PostEdit)
	r.POST("/posts/:id/comment/", requireLogin, h.AddComment)
	r.GET("/profile/:username/follow/", requireLogin, h.ProfileFollow)
	r.GET("/profile/:username/unfollow/", requireLogin, h.ProfileUnfollow)
	r.GET("/follow/", requireLogin, middleware.PageCachePerUser(deps.Cache, deps.PageTTL), h.FollowIndex)

	// 认证流
	loginLimit := middleware.LoginRateLimit(deps.Cfg.Auth.LoginRate, deps.Cfg.Auth.LoginBurst)
	r.GET("/auth/signup/", h.SignupForm)
	r.POST("/auth/signup/", h.Signup)
	r.GET("/auth/login/", h.LoginForm)
	r.POST("/auth/login/", loginLimit, h.Login)
	r.GET("/auth/logout/", h.Logout)

	// JSON API
	api := r.Group("/api/v1")
	{
		api.GET("/posts", h.APIListPosts)
		authed := api.Group("", middleware.RequireLoginJSON())
		authed.GET("/feed", h.APIFeed)
		authed.POST("/relations/follow", h.APIFollow)
		authed.POST("/relations/unfollow", h.APIUnfollow)
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.MediaDir != "" {
		r.Static("/media", deps.MediaDir)
	}

	r.NoRoute(h.NotFound)
	return r, nil
}
