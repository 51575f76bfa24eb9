package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plumeblog/plume/internal/api/middleware"
	"github.com/plumeblog/plume/internal/service"
	"github.com/plumeblog/plume/pkg/logger"
)

// PostDetail renders one post with its comments; 404 when the id is
// unknown or the author does not match the path username.
func (h *Handler) PostDetail(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		h.notFound(c)
		return
	}
	viewer := middleware.CurrentUser(c)
	dp, err := h.feeds.PostDetail(c.Request.Context(), viewer, c.Param("username"), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	h.render(c, http.StatusOK, "post.html", gin.H{"Detail": dp})
}

// NewPostForm renders the empty post form.
func (h *Handler) NewPostForm(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	h.render(c, http.StatusOK, "post_edit.html", gin.H{"IsNew": true, "Groups": groups})
}

// CreatePost handles the post form. Valid input redirects home;
// invalid input re-renders the form with the message and entered
// values, writing nothing.
func (h *Handler) CreatePost(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	in, err := h.postInput(c)
	if err != nil {
		h.renderPostForm(c, true, 0, in, "could not store the uploaded image")
		return
	}
	if _, err := h.publish.CreatePost(c.Request.Context(), actor, in); err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.renderPostForm(c, true, 0, in, err.Error())
			return
		}
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// EditPostForm renders the edit form, or redirects a non-author to the
// read-only detail view.
func (h *Handler) EditPostForm(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		h.notFound(c)
		return
	}
	username := c.Param("username")
	actor := middleware.CurrentUser(c)
	dp, err := h.feeds.PostDetail(c.Request.Context(), actor, username, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	if actor.Username != dp.Author.Username {
		c.Redirect(http.StatusFound, postPath(username, id))
		return
	}
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	h.render(c, http.StatusOK, "post_edit.html", gin.H{
		"IsNew":  false,
		"Groups": groups,
		"Post":   dp.Post,
	})
}

// UpdatePost applies the edit form. A non-author lands on the detail
// view with the post untouched; success redirects back to the edit
// view.
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		h.notFound(c)
		return
	}
	username := c.Param("username")
	actor := middleware.CurrentUser(c)
	in, err := h.postInput(c)
	if err != nil {
		h.renderPostForm(c, false, id, in, "could not store the uploaded image")
		return
	}
	if _, err := h.publish.UpdatePost(c.Request.Context(), actor, id, in); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			c.Redirect(http.StatusFound, postPath(username, id))
		case errors.Is(err, service.ErrNotFound):
			h.notFound(c)
		case errors.Is(err, service.ErrValidation):
			h.renderPostForm(c, false, id, in, err.Error())
		default:
			h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		}
		return
	}
	c.Redirect(http.StatusFound, postPath(username, id)+"/edit")
}

// AddComment stores a comment and returns to the detail view. An empty
// text writes nothing but still redirects back, matching the form flow.
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		h.notFound(c)
		return
	}
	username := c.Param("username")
	actor := middleware.CurrentUser(c)
	_, err := h.publish.CreateComment(c.Request.Context(), actor, id, c.PostForm("text"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		if !errors.Is(err, service.ErrValidation) {
			h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
			return
		}
	}
	c.Redirect(http.StatusFound, postPath(username, id))
}

// postInput collects the post form fields and stores an uploaded image
// when one is present.
func (h *Handler) postInput(c *gin.Context) (service.PostInput, error) {
	in := service.PostInput{Text: c.PostForm("text")}
	if raw := c.PostForm("group"); raw != "" {
		if gid, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(gid)
			in.GroupID = &id
		}
	}
	file, err := c.FormFile("image")
	if err != nil {
		// no upload
		return in, nil
	}
	src, err := file.Open()
	if err != nil {
		return in, err
	}
	defer src.Close()
	path, err := h.media.Save(src, file.Filename)
	if err != nil {
		logger.Warn("image store failed", zap.String("file", file.Filename), zap.Error(err))
		return in, err
	}
	in.Image = path
	return in, nil
}

func (h *Handler) renderPostForm(c *gin.Context, isNew bool, id uint, in service.PostInput, msg string) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	h.render(c, http.StatusOK, "post_edit.html", gin.H{
		"IsNew":  isNew,
		"PostID": id,
		"Groups": groups,
		"Error":  msg,
		"Text":   in.Text,
	})
}

func postPath(username string, id uint) string {
	return fmt.Sprintf("/%s/%d", username, id)
}
