package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/form"
	"github.com/d60-Lab/yatube/internal/service"
)

// SignupForm 注册页
func (h *Handler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{"Form": &form.SignupForm{}, "Errors": form.Errors{}})
}

// Signup 注册；成功直接登录并跳首页
func (h *Handler) Signup(c *gin.Context) {
	f := &form.SignupForm{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		FullName: c.PostForm("full_name"),
	}
	errs := f.Validate()
	if !errs.Empty() {
		c.HTML(http.StatusOK, "signup.html", gin.H{"Form": f, "Errors": errs})
		return
	}

	u, err := h.authSvc.Signup(c.Request.Context(), f.Username, f.Email, f.Password, f.FullName)
	if err != nil {
		// 并发撞名与先到先得同样呈现为字段错误
		if errors.Is(err, service.ErrUsernameTaken) {
			errs["username"] = "This username is already taken"
			c.HTML(http.StatusOK, "signup.html", gin.H{"Form": f, "Errors": errs})
			return
		}
		h.fail(c, err)
		return
	}
	if !h.setSession(c, u.ID) {
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// LoginForm 登录页；next 从 query 透传到表单
func (h *Handler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Form":   &form.LoginForm{},
		"Errors": form.Errors{},
		"Next":   c.Query("next"),
	})
}

// Login 登录；成功后回跳 next（仅接受站内路径）
func (h *Handler) Login(c *gin.Context) {
	f := &form.LoginForm{Username: c.PostForm("username"), Password: c.PostForm("password")}
	next := c.PostForm("next")
	errs := f.Validate()
	if !errs.Empty() {
		c.HTML(http.StatusOK, "login.html", gin.H{"Form": f, "Errors": errs, "Next": next})
		return
	}

	u, err := h.authSvc.Login(c.Request.Context(), f.Username, f.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			errs["form"] = "Invalid username or password"
			c.HTML(http.StatusOK, "login.html", gin.H{"Form": f, "Errors": errs, "Next": next})
			return
		}
		h.fail(c, err)
		return
	}
	if !h.setSession(c, u.ID) {
		return
	}

	// 只允许站内相对路径，防 open redirect
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

// Logout 清会话回首页
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) setSession(c *gin.Context, userID string) bool {
	token, err := h.tokens.Mint(userID)
	if err != nil {
		h.fail(c, err)
		return false
	}
	c.SetCookie(auth.CookieName, token, 24*60*60, "/", "", false, true)
	return true
}

// AboutAuthor / AboutTech 静态页
func (h *Handler) AboutAuthor(c *gin.Context) {
	c.HTML(http.StatusOK, "about_author.html", nil)
}

func (h *Handler) AboutTech(c *gin.Context) {
	c.HTML(http.StatusOK, "about_tech.html", nil)
}
