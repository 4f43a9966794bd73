package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/yatube/internal/repository"
)

var (
	ErrFollowSelf = errors.New("cannot follow self")
)

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	Following(ctx context.Context, followerID, followeeID string) (bool, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
}

func NewRelationshipService(followRepo repository.FollowRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrFollowSelf
	}
	// 仓储层 ON CONFLICT DO NOTHING，重复关注天然幂等
	return s.followRepo.Create(ctx, followerID, followeeID)
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	return s.followRepo.Delete(ctx, followerID, followeeID)
}

func (s *relationshipService) Following(ctx context.Context, followerID, followeeID string) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followeeID)
}
