package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plumeblog/plume/internal/api/middleware"
	"github.com/plumeblog/plume/internal/repository"
	"github.com/plumeblog/plume/internal/service"
	"github.com/plumeblog/plume/internal/storage"
)

// Handler carries the wired services for all routes.
type Handler struct {
	feeds     *service.FeedService
	publish   *service.PublishService
	relations service.RelationshipService
	auth      *service.AuthService
	groups    repository.GroupRepository
	media     *storage.MediaStore
}

func New(
	feeds *service.FeedService,
	publish *service.PublishService,
	relations service.RelationshipService,
	auth *service.AuthService,
	groups repository.GroupRepository,
	media *storage.MediaStore,
) *Handler {
	return &Handler{
		feeds:     feeds,
		publish:   publish,
		relations: relations,
		auth:      auth,
		groups:    groups,
		media:     media,
	}
}

// render merges the current user into every template payload.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = middleware.CurrentUser(c)
	c.HTML(status, name, data)
}

func (h *Handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.html", gin.H{"Path": c.Request.URL.Path})
}

// postID parses the :post_id path segment; a non-numeric id behaves
// like an unknown post.
func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
