package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clubhouse/internal/api/dto"
	"github.com/martijn/clubhouse/internal/api/middleware"
	"github.com/martijn/clubhouse/internal/core/repository"
	"github.com/martijn/clubhouse/internal/core/service"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// NewForm handles GET /new
func (h *PostHandler) NewForm(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.HTML(http.StatusOK, "post_form.html", gin.H{"User": user})
}

// Create handles POST /new. Submissions without a bound identity are
// rejected rather than attributed to nobody.
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/error")
		return
	}

	var form dto.PostForm
	_ = c.ShouldBind(&form)

	_, err := h.postService.Create(c.Request.Context(), user.Username, form.Message)
	if err != nil {
		if ve, okVE := service.AsValidationError(err); okVE {
			c.HTML(http.StatusOK, "post_form.html", gin.H{
				"User":   user,
				"Errors": ve.Messages(),
			})
			return
		}
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// ConfirmDelete handles GET /:id. Only an admin identity may see the
// confirmation page; everything else lands on the error page, with no
// distinction between unauthenticated and non-admin callers.
func (h *PostHandler) ConfirmDelete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok || !user.Admin {
		c.Redirect(http.StatusFound, "/error")
		return
	}

	post, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Redirect(http.StatusFound, "/error")
			return
		}
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.HTML(http.StatusOK, "delete_confirm.html", gin.H{
		"User": user,
		"Post": post,
	})
}

// Delete handles POST /:id. The admin gate applies here as well as on the
// confirmation page; a non-admin caller leaves the post untouched. Deleting
// an ID that no longer exists still redirects home.
func (h *PostHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok || !user.Admin {
		c.Redirect(http.StatusFound, "/error")
		return
	}

	if err := h.postService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.Redirect(http.StatusFound, "/")
}
