package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AboutAuthor(c *gin.Context) {
	h.render(c, http.StatusOK, "about_author.html", gin.H{})
}

func (h *Handler) AboutTech(c *gin.Context) {
	h.render(c, http.StatusOK, "about_tech.html", gin.H{})
}
