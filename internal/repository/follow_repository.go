package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/yatube/internal/model"
)

type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID string) error
	Delete(ctx context.Context, followerID, followeeID string) error
	Exists(ctx context.Context, followerID, followeeID string) (bool, error)
	ListFolloweeIDs(ctx context.Context, followerID string) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

// pair 限定一条有向边的 scope
func pair(followerID, followeeID string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("follower_id = ? AND followee_id = ?", followerID, followeeID)
	}
}

func (r *followRepository) Create(ctx context.Context, followerID, followeeID string) error {
	edge := model.Follow{ID: uuid.New().String(), FollowerID: followerID, FolloweeID: followeeID}
	// 幂等：重复关注不报错
	return translate(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error)
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) error {
	// 边不存在时也视为成功
	return translate(r.db.WithContext(ctx).Scopes(pair(followerID, followeeID)).Delete(&model.Follow{}).Error)
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	err := r.db.WithContext(ctx).Scopes(pair(followerID, followeeID)).
		Select("id").Take(&model.Follow{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, translate(err)
	}
	return true, nil
}

// ListFolloweeIDs 当前用户关注的全部作者 ID，feed 查询用
func (r *followRepository) ListFolloweeIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followee_id", &ids).Error
	return ids, translate(err)
}

func (r *followRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).Count(&cnt).Error
	return cnt, translate(err)
}
