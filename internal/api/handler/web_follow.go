package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/pagination"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
)

// FollowIndex 关注流：我关注的作者的全部帖子，最新在前
func (h *Handler) FollowIndex(c *gin.Context) {
	viewer := middleware.UserFrom(c)
	page := pagination.ParsePage(c.Query("page"))
	pageObj, err := h.feedSvc.Feed(c.Request.Context(), viewer.ID, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "follow.html", gin.H{"Page": pageObj})
}

// ProfileFollow 建立关注边；自关注与重复关注都静默，总是跳回目标主页
func (h *Handler) ProfileFollow(c *gin.Context) {
	viewer := middleware.UserFrom(c)
	target, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(c)
			return
		}
		h.fail(c, err)
		return
	}
	if err := h.relSvc.Follow(c.Request.Context(), viewer.ID, target.ID); err != nil && !errors.Is(err, service.ErrFollowSelf) {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+target.Username+"/")
}

// ProfileUnfollow 删除关注边；边不存在同样静默
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	viewer := middleware.UserFrom(c)
	target, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(c)
			return
		}
		h.fail(c, err)
		return
	}
	if err := h.relSvc.Unfollow(c.Request.Context(), viewer.ID, target.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+target.Username+"/")
}
