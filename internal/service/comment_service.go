package service

import (
	"context"
	"time"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

// CommentService 评论只增不改；随帖子级联删除
type CommentService interface {
	Add(ctx context.Context, postID, authorID, text string) (*model.Comment, error)
}

type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewCommentService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{postRepo: postRepo, commentRepo: commentRepo}
}

func (s *commentService) Add(ctx context.Context, postID, authorID, text string) (*model.Comment, error) {
	// 先确认目标帖子还在
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	c := &model.Comment{
		Text:      text,
		PostID:    postID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
