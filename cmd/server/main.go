package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/api"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/config"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/internal/storage"
	"github.com/d60-Lab/yatube/pkg/logger"
	"github.com/d60-Lab/yatube/pkg/pagecache"
	"github.com/d60-Lab/yatube/pkg/tracing"
)

func main() {
	cfgPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	shutdownTracing, err := tracing.Init(context.Background(), "yatube", cfg.Tracing.Endpoint)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := openDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	cache := pagecache.Disabled()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		cache = pagecache.New(client)
	}

	images, err := storage.NewImageStore(cfg.Media.Root)
	if err != nil {
		return fmt.Errorf("init media store: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	users := repository.NewUserRepository(db)
	groups := repository.NewGroupRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	follows := repository.NewFollowRepository(db)

	h := handler.New(
		service.NewAuthService(users),
		service.NewPostService(posts, comments, cfg.Page.Size),
		service.NewCommentService(posts, comments),
		service.NewRelationshipService(follows),
		service.NewFeedService(follows, posts, cfg.Page.Size),
		groups, users, tokens, images,
	)

	r, err := api.NewRouter(api.RouterDeps{
		Handler:  h,
		Tokens:   tokens,
		Users:    users,
		Cache:    cache,
		PageTTL:  cfg.Cache.PageTTL,
		MediaDir: images.Root(),
		Cfg:      cfg,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
	return r.Run(cfg.Server.Addr)
}

func openDB(cfg config.DBConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{TranslateError: true}
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DSN), gcfg)
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.DSN), gcfg)
		if err != nil {
			return nil, err
		}
		// 评论随帖子级联删除依赖外键约束
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.Driver)
	}
}
