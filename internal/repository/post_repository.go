package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
)

// PostRepository 帖子查询全部走显式过滤条件（作者 / 分组 / 关注集合）
// 分页列表同时返回总数，供上层算总页数
type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, offset, limit int) ([]*model.Post, int64, error)
	ListByGroup(ctx context.Context, groupID string, offset, limit int) ([]*model.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*model.Post, int64, error)
	ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*model.Post, int64, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	// author 不可变：只落文本 / 分组 / 配图
	return translate(r.db.WithContext(ctx).Model(p).
		Select("text", "group_id", "image", "updated_at").
		Updates(p).Error)
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	// comments 由外键级联清理
	return translate(r.db.WithContext(ctx).Delete(&model.Post{}, "id = ?", id).Error)
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *postRepository) List(ctx context.Context, offset, limit int) ([]*model.Post, int64, error) {
	return r.listWhere(ctx, r.db, offset, limit)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID string, offset, limit int) ([]*model.Post, int64, error) {
	return r.listWhere(ctx, r.db.Where("group_id = ?", groupID), offset, limit)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*model.Post, int64, error) {
	return r.listWhere(ctx, r.db.Where("author_id = ?", authorID), offset, limit)
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*model.Post, int64, error) {
	if len(authorIDs) == 0 {
		return nil, 0, nil
	}
	return r.listWhere(ctx, r.db.Where("author_id IN ?", authorIDs), offset, limit)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("author_id = ?", authorID).Count(&cnt).Error
	return cnt, translate(err)
}

func (r *postRepository) listWhere(ctx context.Context, q *gorm.DB, offset, limit int) ([]*model.Post, int64, error) {
	var cnt int64
	if err := q.WithContext(ctx).Model(&model.Post{}).Count(&cnt).Error; err != nil {
		return nil, 0, translate(err)
	}
	var res []*model.Post
	err := q.WithContext(ctx).
		Preload("Author").Preload("Group").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return res, cnt, nil
}
