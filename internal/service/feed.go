package service

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/plumeblog/plume/internal/cache"
	"github.com/plumeblog/plume/internal/model"
	"github.com/plumeblog/plume/internal/pagination"
	"github.com/plumeblog/plume/internal/repository"
)

// FeedPage is one ordered window of posts plus its page metadata.
type FeedPage struct {
	Posts []*model.Post   `json:"posts"`
	Page  pagination.Page `json:"page"`
}

// GroupPage is a group feed together with the resolved group.
type GroupPage struct {
	Group *model.Group
	FeedPage
}

// ProfilePage carries an author's feed plus the aggregates the profile
// view renders. Counts are computed on read, never maintained.
type ProfilePage struct {
	Author *model.User
	FeedPage
	PostCount      int64
	FollowerCount  int64
	FollowingCount int64
	// Following is true when the viewer follows the author; always
	// false for an unauthenticated viewer or the author themselves.
	Following bool
}

// PostDetailPage is a single post with its comments and the same
// author aggregates the profile view shows.
type PostDetailPage struct {
	Post           *model.Post
	Comments       []*model.Comment
	Author         *model.User
	PostCount      int64
	FollowerCount  int64
	FollowingCount int64
	Following      bool
}

// FeedService assembles the four paginated post feeds at read time.
type FeedService struct {
	posts    repository.PostRepository
	users    repository.UserRepository
	groups   repository.GroupRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository
	cache    *cache.FeedCache
	pageSize int
}

func NewFeedService(
	posts repository.PostRepository,
	users repository.UserRepository,
	groups repository.GroupRepository,
	comments repository.CommentRepository,
	follows repository.FollowRepository,
	feedCache *cache.FeedCache,
	pageSize int,
) *FeedService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &FeedService{
		posts:    posts,
		users:    users,
		groups:   groups,
		comments: comments,
		follows:  follows,
		cache:    feedCache,
		pageSize: pageSize,
	}
}

// PageSize exposes the configured feed window size.
func (s *FeedService) PageSize() int { return s.pageSize }

// Home returns the unfiltered feed, newest first, via the read-through
// cache when one is configured.
func (s *FeedService) Home(ctx context.Context, page int) (*FeedPage, error) {
	if data, ok := s.cache.GetHome(ctx, page); ok {
		var fp FeedPage
		if err := json.Unmarshal(data, &fp); err == nil {
			return &fp, nil
		}
	}

	fp, err := s.listPage(ctx, repository.PostFilter{}, page)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(fp); err == nil {
		s.cache.SetHome(ctx, page, payload)
	}
	return fp, nil
}

// Group returns the feed of one group, resolved by slug.
func (s *FeedService) Group(ctx context.Context, slug string, page int) (*GroupPage, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err)
	}
	fp, err := s.listPage(ctx, repository.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, err
	}
	return &GroupPage{Group: group, FeedPage: *fp}, nil
}

// Profile returns an author's feed with follower/following aggregates.
// viewer may be nil (anonymous).
func (s *FeedService) Profile(ctx context.Context, viewer *model.User, username string, page int) (*ProfilePage, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFoundOr(err)
	}
	fp, err := s.listPage(ctx, repository.PostFilter{AuthorID: author.ID}, page)
	if err != nil {
		return nil, err
	}
	agg, err := s.authorAggregates(ctx, viewer, author)
	if err != nil {
		return nil, err
	}
	return &ProfilePage{
		Author:         author,
		FeedPage:       *fp,
		PostCount:      fp.Page.TotalItems,
		FollowerCount:  agg.followers,
		FollowingCount: agg.following,
		Following:      agg.viewerFollows,
	}, nil
}

// Following returns posts authored by anyone the viewer follows. The
// router rejects anonymous access first; the nil check is a guard.
func (s *FeedService) Following(ctx context.Context, viewer *model.User, page int) (*FeedPage, error) {
	if viewer == nil {
		return nil, ErrUnauthorized
	}
	return s.listPage(ctx, repository.PostFilter{FollowedBy: viewer.ID}, page)
}

// PostDetail returns one post with comments, or ErrNotFound when the
// post does not exist or its author does not match the path username.
func (s *FeedService) PostDetail(ctx context.Context, viewer *model.User, username string, postID uint) (*PostDetailPage, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if post.Author.Username != username {
		return nil, ErrNotFound
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	postCount, err := s.posts.Count(ctx, repository.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		return nil, err
	}
	agg, err := s.authorAggregates(ctx, viewer, &post.Author)
	if err != nil {
		return nil, err
	}
	return &PostDetailPage{
		Post:           post,
		Comments:       comments,
		Author:         &post.Author,
		PostCount:      postCount,
		FollowerCount:  agg.followers,
		FollowingCount: agg.following,
		Following:      agg.viewerFollows,
	}, nil
}

func (s *FeedService) listPage(ctx context.Context, f repository.PostFilter, page int) (*FeedPage, error) {
	total, err := s.posts.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	pg, offset := pagination.Resolve(page, s.pageSize, total)
	posts, err := s.posts.List(ctx, f, offset, pg.Size)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: posts, Page: pg}, nil
}

type aggregates struct {
	followers     int64
	following     int64
	viewerFollows bool
}

func (s *FeedService) authorAggregates(ctx context.Context, viewer, author *model.User) (aggregates, error) {
	var agg aggregates
	var err error
	if agg.followers, err = s.follows.CountFollowers(ctx, author.ID); err != nil {
		return agg, err
	}
	if agg.following, err = s.follows.CountFollowing(ctx, author.ID); err != nil {
		return agg, err
	}
	if viewer != nil {
		if agg.viewerFollows, err = s.follows.Exists(ctx, viewer.ID, author.ID); err != nil {
			return agg, err
		}
	}
	return agg, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
