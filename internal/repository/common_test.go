package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		ID:       "u-" + username,
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPosts(t *testing.T, db *gorm.DB, author *model.User, n int) []*model.Post {
	t.Helper()
	base := time.Now()
	posts := make([]*model.Post, n)
	for i := 0; i < n; i++ {
		posts[i] = &model.Post{
			ID:       fmt.Sprintf("p-%s-%03d", author.Username, i),
			Text:     fmt.Sprintf("post %d by %s", i, author.Username),
			AuthorID: author.ID,
			// 后写的更新：i 越大时间越新
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, db.Create(posts[i]).Error)
	}
	return posts
}
