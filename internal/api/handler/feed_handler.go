package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clubhouse/internal/api/middleware"
	"github.com/martijn/clubhouse/internal/core/service"
)

type FeedHandler struct {
	postService *service.PostService
}

func NewFeedHandler(postService *service.PostService) *FeedHandler {
	return &FeedHandler{postService: postService}
}

// Index handles GET /
func (h *FeedHandler) Index(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	user, _ := middleware.CurrentUser(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"User":  user,
		"Posts": posts,
	})
}
