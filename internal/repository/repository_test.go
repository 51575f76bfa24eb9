package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plumeblog/plume/internal/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{ID: "id-" + name, Username: name, PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestFollowCreateIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, a.ID, b.ID))
	require.NoError(t, repo.Create(ctx, a.ID, b.ID), "duplicate create must not error")

	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	require.Equal(t, int64(1), cnt, "unique pair index keeps exactly one edge")
}

func TestFollowDeleteIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, a.ID, b.ID))
	require.NoError(t, repo.Delete(ctx, a.ID, b.ID))
	require.NoError(t, repo.Delete(ctx, a.ID, b.ID), "deleting an absent edge is a no-op")

	exists, err := repo.Exists(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestFollowCounts(t *testing.T) {
	db := setupDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	c := seedUser(t, db, "carol")

	require.NoError(t, repo.Create(ctx, a.ID, c.ID))
	require.NoError(t, repo.Create(ctx, b.ID, c.ID))
	require.NoError(t, repo.Create(ctx, c.ID, a.ID))

	followers, err := repo.CountFollowers(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), followers)

	following, err := repo.CountFollowing(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), following)
}

func seedPosts(t *testing.T, db *gorm.DB, author *model.User, n int, groupID *uint) []*model.Post {
	t.Helper()
	repo := NewPostRepository(db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]*model.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &model.Post{
			AuthorID: author.ID,
			GroupID:  groupID,
			Text:     fmt.Sprintf("post %d", i),
			PubDate:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(context.Background(), p))
		posts = append(posts, p)
	}
	return posts
}

func TestPostListNewestFirst(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	seedPosts(t, db, a, 3, nil)

	res, err := repo.List(ctx, PostFilter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, res, 3)
	require.Equal(t, "post 2", res[0].Text)
	require.Equal(t, "post 0", res[2].Text)
}

func TestPostListTieBreakIsStable(t *testing.T) {
	db := setupDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	a := seedUser(t, db, "alice")

	same := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.Post{
			AuthorID: a.ID, Text: fmt.Sprintf("tied %d", i), PubDate: same,
		}))
	}

	res, err := repo.List(ctx, PostFilter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, res, 3)
	// equal timestamps keep insertion order
	require.Equal(t, "tied 0", res[0].Text)
	require.Equal(t, "tied 1", res[1].Text)
	require.Equal(t, "tied 2", res[2].Text)
}

func TestPostFilterByGroup(t *testing.T) {
	db := setupDB(t)
	postRepo := NewPostRepository(db)
	groupRepo := NewGroupRepository(db)
	ctx := context.Background()
	a := seedUser(t, db, "alice")

	g1 := &model.Group{Title: "One", Slug: "one"}
	g2 := &model.Group{Title: "Two", Slug: "two"}
	require.NoError(t, groupRepo.Create(ctx, g1))
	require.NoError(t, groupRepo.Create(ctx, g2))

	seedPosts(t, db, a, 2, &g1.ID)
	seedPosts(t, db, a, 3, &g2.ID)

	res, err := postRepo.List(ctx, PostFilter{GroupID: &g1.ID}, 0, 10)
	require.NoError(t, err)
	require.Len(t, res, 2)
	for _, p := range res {
		require.Equal(t, g1.ID, *p.GroupID)
	}

	cnt, err := postRepo.Count(ctx, PostFilter{GroupID: &g2.ID})
	require.NoError(t, err)
	require.Equal(t, int64(3), cnt)
}

func TestPostFilterFollowedBy(t *testing.T) {
	db := setupDB(t)
	postRepo := NewPostRepository(db)
	followRepo := NewFollowRepository(db)
	ctx := context.Background()
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	c := seedUser(t, db, "carol")

	seedPosts(t, db, b, 2, nil)
	seedPosts(t, db, c, 2, nil)
	require.NoError(t, followRepo.Create(ctx, a.ID, b.ID))

	res, err := postRepo.List(ctx, PostFilter{FollowedBy: a.ID}, 0, 10)
	require.NoError(t, err)
	require.Len(t, res, 2)
	for _, p := range res {
		require.Equal(t, b.ID, p.AuthorID, "only followed authors appear")
	}
}

func TestPostUpdateClearsGroup(t *testing.T) {
	db := setupDB(t)
	postRepo := NewPostRepository(db)
	groupRepo := NewGroupRepository(db)
	ctx := context.Background()
	a := seedUser(t, db, "alice")

	g := &model.Group{Title: "One", Slug: "one"}
	require.NoError(t, groupRepo.Create(ctx, g))
	posts := seedPosts(t, db, a, 1, &g.ID)

	// Reload through GetByID so the Group association is preloaded,
	// as it is when the publish service edits a post. The update must
	// not let the loaded association re-save group_id.
	p, err := postRepo.GetByID(ctx, posts[0].ID)
	require.NoError(t, err)
	require.NotNil(t, p.Group)
	p.GroupID = nil
	p.Text = "edited"
	require.NoError(t, postRepo.Update(ctx, p))

	got, err := postRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Nil(t, got.GroupID)
	require.Equal(t, "edited", got.Text)
}
