package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

type testEnv struct {
	db       *gorm.DB
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))
	return &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
		follows:  repository.NewFollowRepository(db),
	}
}

func (e *testEnv) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{ID: "u-" + username, Username: username, Password: "x"}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) post(t *testing.T, author *model.User, i int) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:        fmt.Sprintf("p-%s-%03d", author.Username, i),
		Text:      fmt.Sprintf("post %d", i),
		AuthorID:  author.ID,
		CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
	}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

func (e *testEnv) followCount(t *testing.T) int64 {
	t.Helper()
	cnt, err := e.follows.Count(context.Background())
	require.NoError(t, err)
	return cnt
}
