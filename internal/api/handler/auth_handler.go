package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plumeblog/plume/internal/api/middleware"
	"github.com/plumeblog/plume/internal/service"
)

func (h *Handler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Next": c.Query("next")})
}

// Login verifies credentials, sets the session cookie and continues to
// the originally requested page when a safe next target is present.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	token, _, err := h.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.render(c, http.StatusOK, "login.html", gin.H{
				"Error":    "invalid username or password",
				"Username": username,
				"Next":     c.PostForm("next"),
			})
			return
		}
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	c.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, safeNext(c.PostForm("next")))
}

func (h *Handler) SignupForm(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", gin.H{})
}

func (h *Handler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	if _, err := h.auth.Signup(c.Request.Context(), username, email, password); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) || errors.Is(err, service.ErrValidation) {
			h.render(c, http.StatusOK, "signup.html", gin.H{
				"Error":    err.Error(),
				"Username": username,
				"Email":    email,
			})
			return
		}
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{})
		return
	}
	c.Redirect(http.StatusFound, "/auth/login")
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// safeNext only honors same-site relative targets, anything else goes
// to the home page.
func safeNext(next string) string {
	decoded, err := url.QueryUnescape(next)
	if err != nil || decoded == "" {
		return "/"
	}
	if !strings.HasPrefix(decoded, "/") || strings.HasPrefix(decoded, "//") {
		return "/"
	}
	return decoded
}
