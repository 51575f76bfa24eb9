package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plumeblog/plume/internal/model"
)

// PostFilter narrows a feed query. Zero value means "all posts".
// FollowedBy selects posts whose author is followed by the given user.
type PostFilter struct {
	GroupID    *uint
	AuthorID   string
	FollowedBy string
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	// List 按 pub_date 倒序分页（同一时间戳按 id 升序，保持插入顺序）
	List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, error)
	Count(ctx context.Context, f PostFilter) (int64, error)
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	// Updates with a map so a cleared group (nil GroupID) is written
	// out as NULL rather than skipped as a zero value. Associations are
	// omitted: a preloaded Group would otherwise re-save group_id.
	return r.db.WithContext(ctx).Model(post).Omit(clause.Associations).Updates(map[string]any{
		"text":      post.Text,
		"group_id":  post.GroupID,
		"image":     post.Image,
		"author_id": post.AuthorID,
	}).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	err := r.apply(r.db.WithContext(ctx), f).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *postRepository) Count(ctx context.Context, f PostFilter) (int64, error) {
	var cnt int64
	err := r.apply(r.db.WithContext(ctx), f).Model(&model.Post{}).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) apply(tx *gorm.DB, f PostFilter) *gorm.DB {
	if f.GroupID != nil {
		tx = tx.Where("group_id = ?", *f.GroupID)
	}
	if f.AuthorID != "" {
		tx = tx.Where("author_id = ?", f.AuthorID)
	}
	if f.FollowedBy != "" {
		sub := r.db.Model(&model.Follow{}).
			Select("author_id").
			Where("user_id = ?", f.FollowedBy)
		tx = tx.Where("author_id IN (?)", sub)
	}
	return tx
}
