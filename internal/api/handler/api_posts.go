package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/pagination"
	"github.com/d60-Lab/yatube/pkg/response"
)

type postItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Group     string    `json:"group,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostItems(posts []*model.Post) []postItem {
	items := make([]postItem, 0, len(posts))
	for _, p := range posts {
		it := postItem{ID: p.ID, Text: p.Text, CreatedAt: p.CreatedAt}
		if p.Author != nil {
			it.Author = p.Author.Username
		}
		if p.Group != nil {
			it.Group = p.Group.Slug
		}
		items = append(items, it)
	}
	return items
}

func pagePayload(p *pagination.Page[*model.Post]) gin.H {
	return gin.H{
		"page":        p.Number,
		"total_pages": p.TotalPages,
		"total_items": p.TotalItems,
		"list":        toPostItems(p.Items),
	}
}

// APIListPosts 全站帖子分页列表
// @Summary 帖子列表
// @Tags 帖子
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/posts [get]
func (h *Handler) APIListPosts(c *gin.Context) {
	page := pagination.ParsePage(c.DefaultQuery("page", "1"))
	p, err := h.postSvc.ListAll(c.Request.Context(), page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, pagePayload(p))
}

// APIFeed 我关注的作者的帖子
// @Summary 关注流
// @Tags 帖子
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 401 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) APIFeed(c *gin.Context) {
	viewer := middleware.UserFrom(c)
	page := pagination.ParsePage(c.DefaultQuery("page", "1"))
	p, err := h.feedSvc.Feed(c.Request.Context(), viewer.ID, page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, pagePayload(p))
}
