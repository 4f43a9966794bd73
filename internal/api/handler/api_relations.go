package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

type followRequest struct {
	Username string `json:"username" binding:"required"`
}

// APIFollow 关注用户
// @Summary 关注用户（幂等）
// @Tags 关系链
// @Accept json
// @Produce json
// @Param request body followRequest true "目标用户名"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/follow [post]
func (h *Handler) APIFollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	viewer := middleware.UserFrom(c)
	target, err := h.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	if err := h.relSvc.Follow(c.Request.Context(), viewer.ID, target.ID); err != nil {
		if errors.Is(err, service.ErrFollowSelf) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// APIUnfollow 取消关注
// @Summary 取消关注（幂等）
// @Tags 关系链
// @Accept json
// @Produce json
// @Param request body followRequest true "目标用户名"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/unfollow [post]
func (h *Handler) APIUnfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	viewer := middleware.UserFrom(c)
	target, err := h.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	if err := h.relSvc.Unfollow(c.Request.Context(), viewer.ID, target.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}
