package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/internal/storage"
)

// Handler 汇聚全部 HTTP 入口依赖
type Handler struct {
	authSvc    service.AuthService
	postSvc    service.PostService
	commentSvc service.CommentService
	relSvc     service.RelationshipService
	feedSvc    service.FeedService
	groups     repository.GroupRepository
	users      repository.UserRepository
	tokens     *auth.TokenManager
	images     *storage.ImageStore // 可为 nil（禁用图片上传）
}

func New(
	authSvc service.AuthService,
	postSvc service.PostService,
	commentSvc service.CommentService,
	relSvc service.RelationshipService,
	feedSvc service.FeedService,
	groups repository.GroupRepository,
	users repository.UserRepository,
	tokens *auth.TokenManager,
	images *storage.ImageStore,
) *Handler {
	return &Handler{
		authSvc:    authSvc,
		postSvc:    postSvc,
		commentSvc: commentSvc,
		relSvc:     relSvc,
		feedSvc:    feedSvc,
		groups:     groups,
		users:      users,
		tokens:     tokens,
		images:     images,
	}
}

// NotFound 统一 404 页（未知 slug / id / username 与未匹配路由共用）
func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", nil)
}
