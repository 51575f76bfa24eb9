// Package policy holds the pure authorization predicates. These operate
// only on entities already loaded by the caller and never touch storage.
package policy

import "github.com/plumeblog/plume/internal/model"

// CanEditPost reports whether actor owns the post. A false result routes
// the caller to the read-only view; it is never an error.
func CanEditPost(actor *model.User, post *model.Post) bool {
	if actor == nil || post == nil {
		return false
	}
	return actor.Username == post.Author.Username
}

// CanFollow reports whether actor may create the follow edge to target.
// Self-follow and duplicate edges are disallowed; callers treat a false
// result as a no-op. The edge-existence check is passed in by the caller
// (the follow graph manager owns that lookup).
func CanFollow(actor, target *model.User, alreadyFollowing bool) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.ID == target.ID {
		return false
	}
	return !alreadyFollowing
}

// CanUnfollow is unconditional: removing an absent edge is a no-op.
func CanUnfollow(actor, target *model.User) bool {
	return actor != nil && target != nil
}
