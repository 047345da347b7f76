package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clubhouse/internal/api/dto"
	"github.com/martijn/clubhouse/internal/api/middleware"
	"github.com/martijn/clubhouse/internal/core/service"
)

type TrialHandler struct {
	memberService *service.MemberService
}

func NewTrialHandler(memberService *service.MemberService) *TrialHandler {
	return &TrialHandler{memberService: memberService}
}

// Form handles GET /trial
func (h *TrialHandler) Form(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.HTML(http.StatusOK, "trial_form.html", gin.H{"User": user})
}

// Submit handles POST /trial. A membership upgrade needs a bound identity to
// upgrade; without one the request lands on the error page.
func (h *TrialHandler) Submit(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/error")
		return
	}

	var form dto.TrialForm
	_ = c.ShouldBind(&form)

	if err := h.memberService.Upgrade(c.Request.Context(), user.Username, form.Trial); err != nil {
		if ve, okVE := service.AsValidationError(err); okVE {
			c.HTML(http.StatusOK, "trial_form.html", gin.H{
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
