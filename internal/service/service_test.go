package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plumeblog/plume/internal/model"
	"github.com/plumeblog/plume/internal/repository"
)

// env bundles the repositories and services under test over one
// in-memory database.
type env struct {
	db       *gorm.DB
	users    repository.UserRepository
	groups   repository.GroupRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository

	feeds     *FeedService
	publish   *PublishService
	relations RelationshipService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))

	e := &env{
		db:       db,
		users:    repository.NewUserRepository(db),
		groups:   repository.NewGroupRepository(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
		follows:  repository.NewFollowRepository(db),
	}
	e.feeds = NewFeedService(e.posts, e.users, e.groups, e.comments, e.follows, nil, 10)
	e.publish = NewPublishService(e.posts, e.comments, e.groups, nil)
	e.relations = NewRelationshipService(e.follows, e.users)
	return e
}

func (e *env) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, PasswordHash: "x"}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *env) group(t *testing.T, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: slug, Slug: slug}
	require.NoError(t, e.groups.Create(context.Background(), g))
	return g
}

func (e *env) post(t *testing.T, author *model.User, text string, groupID *uint) *model.Post {
	t.Helper()
	p := &model.Post{
		AuthorID: author.ID,
		Author:   *author,
		GroupID:  groupID,
		Text:     text,
		PubDate:  nextPubDate(),
	}
	require.NoError(t, e.posts.Create(context.Background(), p))
	return p
}

var pubSeq int

// nextPubDate hands out strictly increasing timestamps so ordering
// assertions do not depend on wall-clock resolution.
func nextPubDate() time.Time {
	pubSeq++
	return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(pubSeq) * time.Second)
}

func (e *env) followCount(t *testing.T) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, e.db.Model(&model.Follow{}).Count(&cnt).Error)
	return cnt
}

func (e *env) postTexts(fp *FeedPage) []string {
	texts := make([]string, 0, len(fp.Posts))
	for _, p := range fp.Posts {
		texts = append(texts, p.Text)
	}
	return texts
}

func (e *env) seedPosts(t *testing.T, author *model.User, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		e.post(t, author, fmt.Sprintf("%s-%d", author.Username, i), nil)
	}
}
