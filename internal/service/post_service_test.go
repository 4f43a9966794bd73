package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/internal/repository"
)

func TestPostCreateAndDetail(t *testing.T) {
	env := setupEnv(t)
	posts := NewPostService(env.posts, env.comments, 10)
	comments := NewCommentService(env.posts, env.comments)
	ctx := context.Background()
	ian := env.user(t, "ian")
	kim := env.user(t, "kim")

	p, err := posts.Create(ctx, ian.ID, "first post", nil, "")
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)

	_, err = comments.Add(ctx, p.ID, kim.ID, "nice one")
	require.NoError(t, err)

	detail, err := posts.Detail(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "first post", detail.Post.Text)
	assert.Equal(t, int64(1), detail.AuthorPosts)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, kim.ID, detail.Comments[0].AuthorID)
	assert.Equal(t, int64(1), detail.CommentCount)
}

func TestPostEditAuthorOnly(t *testing.T) {
	env := setupEnv(t)
	posts := NewPostService(env.posts, env.comments, 10)
	ctx := context.Background()
	ian := env.user(t, "ian")
	kim := env.user(t, "kim")

	p, err := posts.Create(ctx, ian.ID, "original", nil, "")
	require.NoError(t, err)

	_, err = posts.Edit(ctx, p.ID, kim.ID, "hijacked", nil, "")
	assert.ErrorIs(t, err, ErrNotAuthor)

	got, err := posts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)

	edited, err := posts.Edit(ctx, p.ID, ian.ID, "fixed typo", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "fixed typo", edited.Text)
}

func TestPostListClampsPage(t *testing.T) {
	env := setupEnv(t)
	posts := NewPostService(env.posts, env.comments, 10)
	ctx := context.Background()
	ian := env.user(t, "ian")
	for i := 0; i < 13; i++ {
		env.post(t, ian, i)
	}

	page, err := posts.ListAll(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 2, page.TotalPages)

	page, err = posts.ListAll(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)

	// 越界页收敛到最后一页
	page, err = posts.ListAll(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Number)
	assert.Len(t, page.Items, 3)
}

func TestCommentOnMissingPost(t *testing.T) {
	env := setupEnv(t)
	comments := NewCommentService(env.posts, env.comments)
	ian := env.user(t, "ian")

	_, err := comments.Add(context.Background(), "missing", ian.ID, "hello?")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
