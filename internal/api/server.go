package api

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clubhouse/internal/api/handler"
	"github.com/martijn/clubhouse/internal/api/middleware"
	"github.com/martijn/clubhouse/internal/core/service"
	"github.com/martijn/clubhouse/pkg/config"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	logger *zap.Logger
}

// NewServer creates the web server: session binder around every request, the
// message-board route table, and the error boundary.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authService *service.AuthService,
	sessionService *service.SessionService,
	postService *service.PostService,
	memberService *service.MemberService,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.SessionMiddleware(sessionService))

	// Initialize handlers
	feedHandler := handler.NewFeedHandler(postService)
	authHandler := handler.NewAuthHandler(authService, sessionService)
	postHandler := handler.NewPostHandler(postService)
	trialHandler := handler.NewTrialHandler(memberService)

	router.GET("/", feedHandler.Index)
	router.GET("/new", postHandler.NewForm)
	router.POST("/new", postHandler.Create)
	router.GET("/trial", trialHandler.Form)
	router.POST("/trial", trialHandler.Submit)
	router.GET("/sign-up", authHandler.SignUpForm)
	router.POST("/sign-up", authHandler.SignUp)
	router.POST("/log-in", authHandler.LogIn)
	router.GET("/log-out", authHandler.LogOut)
	router.GET("/error", func(c *gin.Context) {
		c.HTML(http.StatusOK, "error.html", gin.H{})
	})

	// Admin delete flow, keyed by post ID. Static routes above take priority
	// over the parameter match.
	router.GET("/:id", postHandler.ConfirmDelete)
	router.POST("/:id", postHandler.Delete)

	return &Server{
		router: router,
		config: cfg,
		logger: logger,
	}
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.logger.Info("starting HTTPS server", zap.String("addr", addr))
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.logger.Info("starting HTTP server", zap.String("addr", addr))
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
