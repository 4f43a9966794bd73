package service

import (
	"context"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/pagination"
	"github.com/d60-Lab/yatube/internal/repository"
)

// FeedService 拉模式 feed：请求时现查关注集合再取帖子
type FeedService interface {
	Feed(ctx context.Context, userID string, page int) (*pagination.Page[*model.Post], error)
}

type feedService struct {
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
	pageSize   int
}

func NewFeedService(followRepo repository.FollowRepository, postRepo repository.PostRepository, pageSize int) FeedService {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	return &feedService{followRepo: followRepo, postRepo: postRepo, pageSize: pageSize}
}

func (s *feedService) Feed(ctx context.Context, userID string, page int) (*pagination.Page[*model.Post], error) {
	ids, err := s.followRepo.ListFolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		// 零关注：合法的空页，不是错误
		return pagination.NewPage[*model.Post](nil, 1, s.pageSize, 0), nil
	}
	if page < 1 {
		page = 1
	}
	items, total, err := s.postRepo.ListByAuthors(ctx, ids, pagination.Offset(page, s.pageSize), s.pageSize)
	if err != nil {
		return nil, err
	}
	clamped, _ := pagination.Clamp(page, total, s.pageSize)
	if clamped != page {
		page = clamped
		items, total, err = s.postRepo.ListByAuthors(ctx, ids, pagination.Offset(page, s.pageSize), s.pageSize)
		if err != nil {
			return nil, err
		}
	}
	return pagination.NewPage(items, page, s.pageSize, total), nil
}
