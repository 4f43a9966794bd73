package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/config"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/pagecache"
)

type testServer struct {
	engine  *gin.Engine
	db      *gorm.DB
	tokens  *auth.TokenManager
	redis   *miniredis.Miniredis // nil when cache disabled
	follows repository.FollowRepository
}

func newTestServer(t *testing.T, withCache bool) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))

	cache := pagecache.Disabled()
	var mr *miniredis.Miniredis
	if withCache {
		mr = miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		cache = pagecache.New(client)
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	users := repository.NewUserRepository(db)
	groups := repository.NewGroupRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	follows := repository.NewFollowRepository(db)

	h := handler.New(
		service.NewAuthService(users),
		service.NewPostService(posts, comments, 10),
		service.NewCommentService(posts, comments),
		service.NewRelationshipService(follows),
		service.NewFeedService(follows, posts, 10),
		groups, users, tokens, nil,
	)

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Auth.LoginRate = 100
	cfg.Auth.LoginBurst = 100

	engine, err := NewRouter(RouterDeps{
		Handler: h,
		Tokens:  tokens,
		Users:   users,
		Cache:   cache,
		PageTTL: 20 * time.Second,
		Cfg:     cfg,
	})
	require.NoError(t, err)

	return &testServer{engine: engine, db: db, tokens: tokens, redis: mr, follows: follows}
}

func (s *testServer) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{ID: "u-" + username, Username: username, Password: "x"}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

func (s *testServer) post(t *testing.T, author *model.User, i int, text string) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:        fmt.Sprintf("p-%s-%03d", author.Username, i),
		Text:      text,
		AuthorID:  author.ID,
		CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
	}
	require.NoError(t, s.db.Create(p).Error)
	return p
}

func (s *testServer) group(t *testing.T, title, slug string) *model.Group {
	t.Helper()
	g := &model.Group{ID: "g-" + slug, Title: title, Slug: slug}
	require.NoError(t, s.db.Create(g).Error)
	return g
}

// get 发起请求；as 非 nil 时携带该用户的会话 cookie
func (s *testServer) get(t *testing.T, path string, as *model.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.authorize(t, req, as)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) postForm(t *testing.T, path string, form url.Values, as *model.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.authorize(t, req, as)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) authorize(t *testing.T, req *http.Request, as *model.User) {
	t.Helper()
	if as == nil {
		return
	}
	token, err := s.tokens.Mint(as.ID)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
}

func (s *testServer) followCount(t *testing.T) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, s.db.Model(&model.Follow{}).Count(&cnt).Error)
	return cnt
}

func (s *testServer) commentCount(t *testing.T, postID string) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, s.db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&cnt).Error)
	return cnt
}
