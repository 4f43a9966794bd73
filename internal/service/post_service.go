package service

import (
	"context"
	"errors"
	"time"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/pagination"
	"github.com/d60-Lab/yatube/internal/repository"
)

var (
	// ErrNotAuthor 非作者改帖；api 层静默跳回详情页
	ErrNotAuthor = errors.New("caller is not the author")
)

// PostDetail 详情页聚合：帖子 + 评论 + 作者发帖总数
type PostDetail struct {
	Post         *model.Post
	Comments     []*model.Comment
	AuthorPosts  int64
	CommentCount int64
}

// PostService 发帖 / 编辑 / 各列表视图
type PostService interface {
	Create(ctx context.Context, authorID, text string, groupID *string, image string) (*model.Post, error)
	Edit(ctx context.Context, postID, callerID, text string, groupID *string, image string) (*model.Post, error)
	Get(ctx context.Context, postID string) (*model.Post, error)
	Detail(ctx context.Context, postID string) (*PostDetail, error)
	ListAll(ctx context.Context, page int) (*pagination.Page[*model.Post], error)
	ListByGroup(ctx context.Context, groupID string, page int) (*pagination.Page[*model.Post], error)
	ListByAuthor(ctx context.Context, authorID string, page int) (*pagination.Page[*model.Post], error)
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	pageSize    int
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, pageSize int) PostService {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	return &postService{postRepo: postRepo, commentRepo: commentRepo, pageSize: pageSize}
}

func (s *postService) Create(ctx context.Context, authorID, text string, groupID *string, image string) (*model.Post, error) {
	now := time.Now()
	p := &model.Post{
		Text:      text,
		AuthorID:  authorID,
		GroupID:   groupID,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.postRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) Edit(ctx context.Context, postID, callerID, text string, groupID *string, image string) (*model.Post, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != callerID {
		return nil, ErrNotAuthor
	}
	p.Text = text
	p.GroupID = groupID
	if image != "" {
		p.Image = image
	}
	p.UpdatedAt = time.Now()
	if err := s.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) Get(ctx context.Context, postID string) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

func (s *postService) Detail(ctx context.Context, postID string) (*PostDetail, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	authorTotal, err := s.postRepo.CountByAuthor(ctx, p.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{
		Post:         p,
		Comments:     comments,
		AuthorPosts:  authorTotal,
		CommentCount: int64(len(comments)),
	}, nil
}

func (s *postService) ListAll(ctx context.Context, page int) (*pagination.Page[*model.Post], error) {
	return s.paged(ctx, page, s.postRepo.List)
}

func (s *postService) ListByGroup(ctx context.Context, groupID string, page int) (*pagination.Page[*model.Post], error) {
	return s.paged(ctx, page, func(ctx context.Context, offset, limit int) ([]*model.Post, int64, error) {
		return s.postRepo.ListByGroup(ctx, groupID, offset, limit)
	})
}

func (s *postService) ListByAuthor(ctx context.Context, authorID string, page int) (*pagination.Page[*model.Post], error) {
	return s.paged(ctx, page, func(ctx context.Context, offset, limit int) ([]*model.Post, int64, error) {
		return s.postRepo.ListByAuthor(ctx, authorID, offset, limit)
	})
}

type pagedQuery func(ctx context.Context, offset, limit int) ([]*model.Post, int64, error)

// paged 统一收敛页码：越界时用首轮返回的总数重算 offset 再查一次
func (s *postService) paged(ctx context.Context, page int, q pagedQuery) (*pagination.Page[*model.Post], error) {
	if page < 1 {
		page = 1
	}
	items, total, err := q(ctx, pagination.Offset(page, s.pageSize), s.pageSize)
	if err != nil {
		return nil, err
	}
	clamped, _ := pagination.Clamp(page, total, s.pageSize)
	if clamped != page {
		page = clamped
		items, total, err = q(ctx, pagination.Offset(page, s.pageSize), s.pageSize)
		if err != nil {
			return nil, err
		}
	}
	return pagination.NewPage(items, page, s.pageSize, total), nil
}
