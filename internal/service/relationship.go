package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/plumeblog/plume/internal/model"
	"github.com/plumeblog/plume/internal/policy"
	"github.com/plumeblog/plume/internal/repository"
	"github.com/plumeblog/plume/pkg/logger"
)

// RelationshipService manages follow edges. Follow and Unfollow are
// idempotent: the resulting state converges regardless of call count,
// and self-follow or duplicate attempts are silent no-ops.
type RelationshipService interface {
	Follow(ctx context.Context, actor *model.User, targetUsername string) error
	Unfollow(ctx context.Context, actor *model.User, targetUsername string) error
}

type relationshipService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

func NewRelationshipService(follows repository.FollowRepository, users repository.UserRepository) RelationshipService {
	return &relationshipService{follows: follows, users: users}
}

func (s *relationshipService) Follow(ctx context.Context, actor *model.User, targetUsername string) error {
	if actor == nil {
		return ErrUnauthorized
	}
	target, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		return notFoundOr(err)
	}
	exists, err := s.follows.Exists(ctx, actor.ID, target.ID)
	if err != nil {
		return err
	}
	if !policy.CanFollow(actor, target, exists) {
		// no-op: self-follow or already following
		return nil
	}
	// The unique (user_id, author_id) index plus ON CONFLICT DO NOTHING
	// absorbs the race where two requests pass the Exists check.
	if err := s.follows.Create(ctx, actor.ID, target.ID); err != nil {
		return err
	}
	logger.Debug("follow created",
		zap.String("user", actor.Username), zap.String("author", target.Username))
	return nil
}

func (s *relationshipService) Unfollow(ctx context.Context, actor *model.User, targetUsername string) error {
	if actor == nil {
		return ErrUnauthorized
	}
	target, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		return notFoundOr(err)
	}
	if !policy.CanUnfollow(actor, target) {
		return nil
	}
	// deleting an absent edge is a no-op
	return s.follows.Delete(ctx, actor.ID, target.ID)
}
