package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clubhouse/internal/api/dto"
	"github.com/martijn/clubhouse/internal/api/middleware"
	"github.com/martijn/clubhouse/internal/core/service"
)

type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
}

func NewAuthHandler(authService *service.AuthService, sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
	}
}

// SignUpForm handles GET /sign-up
func (h *AuthHandler) SignUpForm(c *gin.Context) {
	c.HTML(http.StatusOK, "sign_up_form.html", gin.H{})
}

// SignUp handles POST /sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var form dto.SignUpForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "sign_up_form.html", gin.H{
			"Errors": []string{"All fields are required"},
		})
		return
	}

	_, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username:  form.Username,
		Password:  form.Password,
		Confirm:   form.Confirm,
		Firstname: form.Firstname,
		Lastname:  form.Lastname,
	})
	if err != nil {
		if ve, ok := service.AsValidationError(err); ok {
			c.HTML(http.StatusOK, "sign_up_form.html", gin.H{
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

// LogIn handles POST /log-in. Success binds the session identity; failure
// redirects home with no visible error, same as success.
func (h *AuthHandler) LogIn(c *gin.Context) {
	var form dto.LogInForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	token, err := h.sessionService.Issue(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.SetCookie(middleware.SessionCookieName, token, int(service.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// LogOut handles GET /log-out
func (h *AuthHandler) LogOut(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := h.sessionService.Destroy(c.Request.Context(), token); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
