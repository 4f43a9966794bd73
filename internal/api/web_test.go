package api

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/internal/model"
)

func TestIndexPagination(t *testing.T) {
	s := newTestServer(t, false)
	ian := s.user(t, "ian")
	for i := 0; i < 13; i++ {
		s.post(t, ian, i, fmt.Sprintf("post number %d", i))
	}

	w := s.get(t, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	// 第一页 10 条，最新在前
	assert.Contains(t, w.Body.String(), "post number 12")
	assert.NotContains(t, w.Body.String(), "post number 2<")
	assert.Contains(t, w.Body.String(), "page 1 of 2")

	w = s.get(t, "/?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "post number 0")
	assert.Contains(t, w.Body.String(), "page 2 of 2")

	// 越界页码收敛到最后一页
	w = s.get(t, "/?page=42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "page 2 of 2")
}

func TestGroupListingAndUnknownSlug(t *testing.T) {
	s := newTestServer(t, false)
	ian := s.user(t, "ian")
	g := s.group(t, "Joy Division", "joy_division")
	p := s.post(t, ian, 0, "grouped post")
	require.NoError(t, s.db.Model(p).Update("group_id", g.ID).Error)
	s.post(t, ian, 1, "ungrouped post")

	w := s.get(t, "/group/joy_division/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "grouped post")
	assert.NotContains(t, w.Body.String(), "ungrouped post")

	w = s.get(t, "/group/no_such_group/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileShowsPostsAndFollowState(t *testing.T) {
	s := newTestServer(t, false)
	ian := s.user(t, "ian")
	kim := s.user(t, "kim")
	s.post(t, ian, 0, "ian writes")

	// 匿名：无关注按钮
	w := s.get(t, "/profile/ian/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ian writes")
	assert.NotContains(t, w.Body.String(), "/profile/ian/follow/")

	// 登录后未关注：显示 Follow
	w = s.get(t, "/profile/ian/", kim)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/profile/ian/follow/")

	w = s.get(t, "/profile/nobody/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostDetail(t *testing.T) {
	s := newTestServer(t, false)
	ian := s.user(t, "ian")
	p := s.post(t, ian, 0, "the post body")
	s.post(t, ian, 1, "another")

	w := s.get(t, "/posts/"+p.ID+"/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "the post body")
	// 作者发帖总数
	assert.Contains(t, w.Body.String(), "(2 posts)")

	w = s.get(t, "/posts/missing/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRequiresLogin(t *testing.T) {
	s := newTestServer(t, false)

	w := s.postForm(t, "/create/", url.Values{"text": {"sneaky"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fcreate%2F", w.Header().Get("Location"))

	var cnt int64
	require.NoError(t, s.db.Model(&model.Post{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestCreatePost(t *testing.T) {
	s := newTestServer(t, false)
	ian := s.user(t, "ian")
	s.group(t, "Joy Division", "joy_division")

	w := s.postForm(t, "/create/", url.Values{
		"text":  {"fresh post"},
		"group": {"joy_division"},
	}, ian)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/ian/", w.Header().Get("Location"))

	var p model.Post
	require.NoError(t, s.db.First(&p).Error)
	assert.Equal(t, "fresh post", p.Text)
	assert.Equal(t, ian.ID, p.AuthorID)
	require.NotNil(t, p.GroupID)

	// 空文本：不落库，重新渲染表单并附错误
	w = s.postForm(t, "/create/", url.Values{"text": {""}}, ian)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Post text is required")
	var cnt int64
	require.NoError(t, s.db.Model(&model.Post{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestEditOnlyByAuthor(t *testing.T) {
	s := newTestServer(t, false)
	ian := s.user(t, "ian")
	kim := s.user(t, "kim")
	p := s.post(t, ian, 0, "original text")

	// 非作者 GET：静默跳回详情，不渲染编辑表单
	w := s.get(t, "/posts/"+p.ID+"/edit/", kim)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+p.ID+"/", w.Header().Get("Location"))

	// 非作者 POST：内容不变，仍然重定向
	w = s.postForm(t, "/posts/"+p.ID+"/edit/", url.Values{"text": {"hijacked"}}, kim)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+p.ID+"/", w.Header().Get("Location"))
	var got model.Post
	require.NoError(t, s.db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, "original text", got.Text)

	// 非作者 POST 空文本：不回显编辑表单，同样静默重定向
	w = s.postForm(t, "/posts/"+p.ID+"/edit/", url.Values{"text": {""}}, kim)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+p.ID+"/", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "Edit post")

	// 作者编辑生效
	w = s.postForm(t, "/posts/"+p.ID+"/edit/", url.Values{"text": {"fixed"}}, ian)
	require.Equal(t, http.StatusFound, w.Code)
	require.NoError(t, s.db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, "fixed", got.Text)

	// 匿名 GET 带 next 跳登录
	w = s.get(t, "/posts/"+p.ID+"/edit/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/auth/login/?next=")
}

func TestCommentFlow(t *testing.T) {
	s := newTestServer(t, false)
	ian := s.user(t, "ian")
	kim := s.user(t, "kim")
	p := s.post(t, ian, 0, "commentable")

	// 匿名评论：跳登录带 next，计数不变
	w := s.postForm(t, "/posts/"+p.ID+"/comment/", url.Values{"text": {"anon"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "comment")
	assert.Zero(t, s.commentCount(t, p.ID))

	// 登录评论：计数 +1，绑定作者与帖子
	w = s.postForm(t, "/posts/"+p.ID+"/comment/", url.Values{"text": {"well said"}}, kim)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+p.ID+"/", w.Header().Get("Location"))
	assert.Equal(t, int64(1), s.commentCount(t, p.ID))
	var cmt model.Comment
	require.NoError(t, s.db.First(&cmt).Error)
	assert.Equal(t, kim.ID, cmt.AuthorID)
	assert.Equal(t, p.ID, cmt.PostID)

	// 空评论：重新渲染详情页带错误，不重定向，不落库
	w = s.postForm(t, "/posts/"+p.ID+"/comment/", url.Values{"text": {""}}, kim)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Comment text is required")
	assert.Equal(t, int64(1), s.commentCount(t, p.ID))
}

func TestUnknownRouteRenders404Page(t *testing.T) {
	s := newTestServer(t, false)
	w := s.get(t, "/definitely/not/a/route/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
}

func TestAboutPages(t *testing.T) {
	s := newTestServer(t, false)
	assert.Equal(t, http.StatusOK, s.get(t, "/about/author/", nil).Code)
	assert.Equal(t, http.StatusOK, s.get(t, "/about/tech/", nil).Code)
}
