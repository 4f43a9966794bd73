package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/form"
	"github.com/d60-Lab/yatube/internal/pagination"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// Index 全站帖子列表
func (h *Handler) Index(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	pageObj, err := h.postSvc.ListAll(c.Request.Context(), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Page": pageObj})
}

// GroupPosts 分组帖子列表；slug 未知 404
func (h *Handler) GroupPosts(c *gin.Context) {
	g, err := h.groups.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(c)
			return
		}
		h.fail(c, err)
		return
	}
	page := pagination.ParsePage(c.Query("page"))
	pageObj, err := h.postSvc.ListByGroup(c.Request.Context(), g.ID, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "group_list.html", gin.H{"Group": g, "Page": pageObj})
}

// Profile 作者主页：帖子分页 + 关注状态
func (h *Handler) Profile(c *gin.Context) {
	author, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(c)
			return
		}
		h.fail(c, err)
		return
	}
	page := pagination.ParsePage(c.Query("page"))
	pageObj, err := h.postSvc.ListByAuthor(c.Request.Context(), author.ID, page)
	if err != nil {
		h.fail(c, err)
		return
	}

	viewer := middleware.UserFrom(c)
	following := false
	if viewer != nil {
		following, err = h.relSvc.Following(c.Request.Context(), viewer.ID, author.ID)
		if err != nil {
			h.fail(c, err)
			return
		}
	}
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"Author":    author,
		"Page":      pageObj,
		"PostCount": pageObj.TotalItems,
		"Viewer":    viewer,
		"Following": following,
	})
}

// PostDetail 帖子详情 + 评论 + 作者发帖数
func (h *Handler) PostDetail(c *gin.Context) {
	detail, err := h.postSvc.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(c)
			return
		}
		h.fail(c, err)
		return
	}
	h.renderDetail(c, http.StatusOK, detail, &form.CommentForm{}, form.Errors{})
}

func (h *Handler) renderDetail(c *gin.Context, status int, detail *service.PostDetail, f *form.CommentForm, errs form.Errors) {
	viewer := middleware.UserFrom(c)
	c.HTML(status, "post_detail.html", gin.H{
		"Detail":  detail,
		"CanEdit": viewer != nil && viewer.ID == detail.Post.AuthorID,
		"Form":    f,
		"Errors":  errs,
	})
}

// PostCreateForm 发帖表单
func (h *Handler) PostCreateForm(c *gin.Context) {
	h.renderPostForm(c, http.StatusOK, &form.PostForm{}, form.Errors{}, false)
}

// PostCreate 发帖；成功跳到自己的主页
func (h *Handler) PostCreate(c *gin.Context) {
	viewer := middleware.UserFrom(c)
	f := &form.PostForm{Text: c.PostForm("text"), GroupSlug: c.PostForm("group")}
	errs := f.Validate()
	groupID := h.resolveGroup(c, f.GroupSlug, errs)
	if !errs.Empty() {
		h.renderPostForm(c, http.StatusOK, f, errs, false)
		return
	}

	image := h.saveImage(c)
	if _, err := h.postSvc.Create(c.Request.Context(), viewer.ID, f.Text, groupID, image); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+viewer.Username+"/")
}

// PostEditForm 编辑表单；非作者静默跳回详情页
func (h *Handler) PostEditForm(c *gin.Context) {
	viewer := middleware.UserFrom(c)
	p, err := h.postSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(c)
			return
		}
		h.fail(c, err)
		return
	}
	if p.AuthorID != viewer.ID {
		c.Redirect(http.StatusFound, "/posts/"+p.ID+"/")
		return
	}
	f := &form.PostForm{Text: p.Text}
	if p.Group != nil {
		f.GroupSlug = p.Group.Slug
	}
	h.renderPostForm(c, http.StatusOK, f, form.Errors{}, true)
}

// PostEdit 编辑提交；先查作者，非作者不进表单流程
func (h *Handler) PostEdit(c *gin.Context) {
	viewer := middleware.UserFrom(c)
	postID := c.Param("id")
	p, err := h.postSvc.Get(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(c)
			return
		}
		h.fail(c, err)
		return
	}
	if p.AuthorID != viewer.ID {
		c.Redirect(http.StatusFound, "/posts/"+postID+"/")
		return
	}

	f := &form.PostForm{Text: c.PostForm("text"), GroupSlug: c.PostForm("group")}
	errs := f.Validate()
	groupID := h.resolveGroup(c, f.GroupSlug, errs)
	if !errs.Empty() {
		h.renderPostForm(c, http.StatusOK, f, errs, true)
		return
	}

	image := h.saveImage(c)
	if _, err := h.postSvc.Edit(c.Request.Context(), postID, viewer.ID, f.Text, groupID, image); err != nil {
		// 服务层仍复核作者，并发下兜底
		if errors.Is(err, service.ErrNotAuthor) {
			c.Redirect(http.StatusFound, "/posts/"+postID+"/")
			return
		}
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+postID+"/")
}

// AddComment 评论提交；空文本重新渲染详情页并附错误
func (h *Handler) AddComment(c *gin.Context) {
	viewer := middleware.UserFrom(c)
	postID := c.Param("id")
	f := &form.CommentForm{Text: c.PostForm("text")}
	if errs := f.Validate(); !errs.Empty() {
		detail, err := h.postSvc.Detail(c.Request.Context(), postID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				h.NotFound(c)
				return
			}
			h.fail(c, err)
			return
		}
		h.renderDetail(c, http.StatusOK, detail, f, errs)
		return
	}
	if _, err := h.commentSvc.Add(c.Request.Context(), postID, viewer.ID, f.Text); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(c)
			return
		}
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+postID+"/")
}

func (h *Handler) renderPostForm(c *gin.Context, status int, f *form.PostForm, errs form.Errors, isEdit bool) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(status, "create_post.html", gin.H{
		"Form":   f,
		"Errors": errs,
		"Groups": groups,
		"IsEdit": isEdit,
	})
}

// resolveGroup slug → group ID；未知 slug 记为表单错误
func (h *Handler) resolveGroup(c *gin.Context, slug string, errs form.Errors) *string {
	if slug == "" {
		return nil
	}
	g, err := h.groups.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		errs["group"] = "Unknown group"
		return nil
	}
	return &g.ID
}

// saveImage 可选配图；存储未配置或没传文件都返回空串
func (h *Handler) saveImage(c *gin.Context) string {
	if h.images == nil {
		return ""
	}
	file, err := c.FormFile("image")
	if err != nil {
		return ""
	}
	rel, err := h.images.Save(file)
	if err != nil {
		logger.Warn("save image failed", zap.Error(err))
		return ""
	}
	return rel
}

func (h *Handler) fail(c *gin.Context, err error) {
	logger.Error("handler error", zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.String(http.StatusInternalServerError, "internal error")
}
