package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/plumeblog/plume/internal/cache"
	"github.com/plumeblog/plume/internal/model"
	"github.com/plumeblog/plume/internal/policy"
	"github.com/plumeblog/plume/internal/repository"
)

// PostInput is the validated form payload for creating or editing a
// post. Any author identity in the request is ignored; the acting user
// is always the author.
type PostInput struct {
	Text    string `validate:"required"`
	GroupID *uint
	// Image is the already-stored media path, empty when no upload.
	Image string
}

// PublishService is the post/comment mutation service. It never
// deletes anything.
type PublishService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	groups   repository.GroupRepository
	cache    *cache.FeedCache
	validate *validator.Validate
}

func NewPublishService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	groups repository.GroupRepository,
	feedCache *cache.FeedCache,
) *PublishService {
	return &PublishService{
		posts:    posts,
		comments: comments,
		groups:   groups,
		cache:    feedCache,
		validate: validator.New(),
	}
}

// CreatePost persists a new post owned by actor. The group, when set,
// must exist. PubDate is server-assigned.
func (s *PublishService) CreatePost(ctx context.Context, actor *model.User, in PostInput) (*model.Post, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}
	post := &model.Post{
		AuthorID: actor.ID,
		Author:   *actor,
		GroupID:  in.GroupID,
		Text:     in.Text,
		Image:    in.Image,
		PubDate:  time.Now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	s.cache.InvalidateHome(ctx)
	return post, nil
}

// UpdatePost overwrites text, group and image of an existing post.
// Only the owning author may edit; the author field is re-asserted to
// actor so a tampered form cannot reassign ownership. An omitted group
// clears the association. An empty image keeps the current one.
func (s *PublishService) UpdatePost(ctx context.Context, actor *model.User, postID uint, in PostInput) (*model.Post, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !policy.CanEditPost(actor, post) {
		return nil, ErrForbidden
	}
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}
	post.Text = in.Text
	post.GroupID = in.GroupID
	post.Group = nil
	if in.Image != "" {
		post.Image = in.Image
	}
	post.AuthorID = actor.ID
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	s.cache.InvalidateHome(ctx)
	return post, nil
}

// CreateComment adds a comment by actor to an existing post. Comments
// are immutable once written.
func (s *PublishService) CreateComment(ctx context.Context, actor *model.User, postID uint, text string) (*model.Comment, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, notFoundOr(err)
	}
	comment := &model.Comment{
		PostID:   postID,
		AuthorID: actor.ID,
		Author:   *actor,
		Text:     text,
		Created:  time.Now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PublishService) validateInput(ctx context.Context, in PostInput) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: post text is required", ErrValidation)
	}
	if in.GroupID != nil {
		if _, err := s.groups.GetByID(ctx, *in.GroupID); err != nil {
			return fmt.Errorf("%w: unknown group", ErrValidation)
		}
	}
	return nil
}
