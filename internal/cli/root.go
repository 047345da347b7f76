package cli

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/martijn/clubhouse/internal/core/repository"
	"github.com/martijn/clubhouse/internal/core/service"
	"github.com/martijn/clubhouse/internal/infrastructure/redis"
	"github.com/martijn/clubhouse/internal/infrastructure/sqlite"
	"github.com/martijn/clubhouse/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clubhouse",
	Short: "Clubhouse - members-only message board",
	Long: `Clubhouse is a small message-board web application.

It provides:
- Sign-up and session-based log-in
- A shared feed of short text messages
- Membership upgrades via a trial code
- Admin-gated post deletion
- A CLI for user administration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/clubhouse/config.yml)")
}

// initServices initializes all services
func initServices() (*Services, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize database
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)

	// The session store is an injected interface; sqlite is the default,
	// redis is selected by config.
	var sessionRepo repository.SessionRepository
	var rdb *goredis.Client
	if cfg.SessionStore == "redis" {
		rdb, err = redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		sessionRepo = redis.NewSessionRepository(rdb)
	} else {
		sessionRepo = sqlite.NewSessionRepository(db)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo)
	sessionService := service.NewSessionService(sessionRepo, userRepo, cfg.SessionSecret, logger)
	sessionService.Start() // Start expired-session reaper
	postService := service.NewPostService(postRepo)
	memberService := service.NewMemberService(userRepo, cfg.TrialCode)

	return &Services{
		DB:             db,
		Redis:          rdb,
		Logger:         logger,
		UserRepo:       userRepo,
		PostRepo:       postRepo,
		SessionRepo:    sessionRepo,
		AuthService:    authService,
		SessionService: sessionService,
		PostService:    postService,
		MemberService:  memberService,
	}, nil
}

func newLogger() (*zap.Logger, error) {
	if cfg.IsDevMode() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Services holds all initialized services
type Services struct {
	DB             *sqlite.DB
	Redis          *goredis.Client
	Logger         *zap.Logger
	UserRepo       repository.UserRepository
	PostRepo       repository.PostRepository
	SessionRepo    repository.SessionRepository
	AuthService    *service.AuthService
	SessionService *service.SessionService
	PostService    *service.PostService
	MemberService  *service.MemberService
}

// Close closes all resources
func (s *Services) Close() {
	if s.SessionService != nil {
		s.SessionService.Stop()
	}
	if s.Redis != nil {
		s.Redis.Close()
	}
	if s.DB != nil {
		s.DB.Close()
	}
	if s.Logger != nil {
		_ = s.Logger.Sync()
	}
}
