package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plumeblog/plume/internal/api/middleware"
	"github.com/plumeblog/plume/internal/pagination"
	"github.com/plumeblog/plume/internal/service"
)

// Index renders the home feed.
func (h *Handler) Index(c *gin.Context) {
	page := pagination.ParseNumber(c.Query("page"))
	fp, err := h.feeds.Home(c.Request.Context(), page)
	if err != nil {
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"Feed": fp})
}

// GroupFeed renders one group's feed; unknown slugs are 404.
func (h *Handler) GroupFeed(c *gin.Context) {
	page := pagination.ParseNumber(c.Query("page"))
	gp, err := h.feeds.Group(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	h.render(c, http.StatusOK, "group.html", gin.H{"Group": gp.Group, "Feed": &gp.FeedPage})
}

// Profile renders an author's feed with follower aggregates.
func (h *Handler) Profile(c *gin.Context) {
	page := pagination.ParseNumber(c.Query("page"))
	viewer := middleware.CurrentUser(c)
	pp, err := h.feeds.Profile(c.Request.Context(), viewer, c.Param("username"), page)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	h.render(c, http.StatusOK, "profile.html", gin.H{"Profile": pp})
}

// FollowFeed renders posts from followed authors. The route is behind
// RequireAuth, so the viewer is always present here.
func (h *Handler) FollowFeed(c *gin.Context) {
	page := pagination.ParseNumber(c.Query("page"))
	viewer := middleware.CurrentUser(c)
	fp, err := h.feeds.Following(c.Request.Context(), viewer, page)
	if err != nil {
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	h.render(c, http.StatusOK, "follow.html", gin.H{"Feed": fp})
}
