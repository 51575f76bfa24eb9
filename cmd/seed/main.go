// Seeds a local database with a few users, groups, posts and follow
// edges for manual testing.
package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/plumeblog/plume/config"
	"github.com/plumeblog/plume/internal/model"
	"github.com/plumeblog/plume/internal/repository"
	"github.com/plumeblog/plume/pkg/database"
	"github.com/plumeblog/plume/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	_ = logger.Init(cfg.LogLevel)
	db := must(database.InitDB(cfg))
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)

	hash := must(bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost))

	users := make([]*model.User, 0, 3)
	for _, name := range []string{"alice", "bob", "carol"} {
		u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: string(hash)}
		if err := userRepo.Create(ctx, u); err != nil {
			fmt.Println("user exists, skipping:", name)
			u = must(userRepo.GetByUsername(ctx, name))
		}
		users = append(users, u)
	}

	groups := []*model.Group{
		{Title: "Travel", Slug: "travel", Description: "Trips and places"},
		{Title: "Cooking", Slug: "cooking", Description: "Recipes and food"},
	}
	for _, g := range groups {
		if err := groupRepo.Create(ctx, g); err != nil {
			g2 := must(groupRepo.GetBySlug(ctx, g.Slug))
			*g = *g2
		}
	}

	for i := 0; i < 15; i++ {
		author := users[i%len(users)]
		post := &model.Post{
			AuthorID: author.ID,
			Text:     fmt.Sprintf("Seed post %d by %s", i+1, author.Username),
			PubDate:  time.Now().Add(-time.Duration(15-i) * time.Minute),
		}
		if i%3 == 0 {
			post.GroupID = &groups[i%len(groups)].ID
		}
		must(0, postRepo.Create(ctx, post))
	}

	must(0, followRepo.Create(ctx, users[0].ID, users[1].ID))
	must(0, followRepo.Create(ctx, users[1].ID, users[2].ID))

	fmt.Println("seeded: 3 users (password \"password\"), 2 groups, 15 posts, 2 follows")
}
