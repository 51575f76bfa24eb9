package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plumeblog/plume/internal/api/middleware"
	"github.com/plumeblog/plume/internal/service"
)

// Follow creates the follow edge and returns to the profile. Self-
// follow and duplicates are silent no-ops inside the service.
func (h *Handler) Follow(c *gin.Context) {
	username := c.Param("username")
	actor := middleware.CurrentUser(c)
	if err := h.relations.Follow(c.Request.Context(), actor, username); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	c.Redirect(http.StatusFound, "/"+username)
}

// Unfollow removes the edge if present and returns to the profile.
func (h *Handler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	actor := middleware.CurrentUser(c)
	if err := h.relations.Unfollow(c.Request.Context(), actor, username); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	c.Redirect(http.StatusFound, "/"+username)
}
