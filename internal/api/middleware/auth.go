package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/response"
)

const userKey = "currentUser"

// LoginPath 未登录重定向目标；next 带回原始路径
const LoginPath = "/auth/login/"

// CurrentUser 尽力解析会话 cookie；失败视为匿名，不中断请求
func CurrentUser(tm *auth.TokenManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		uid, err := tm.Verify(token)
		if err != nil {
			c.Next()
			return
		}
		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			c.Next()
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

// UserFrom 取当前登录用户；匿名返回 nil
func UserFrom(c *gin.Context) *model.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

// RequireLogin 登录门：匿名请求 302 到登录页并携带 next
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c) == nil {
			next := url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusFound, LoginPath+"?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireLoginJSON API 版登录门：匿名请求回 401 而不是重定向
func RequireLoginJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c) == nil {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}
