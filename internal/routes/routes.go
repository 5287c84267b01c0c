package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/example/trmops/internal/config"
	"github.com/example/trmops/internal/directory"
	"github.com/example/trmops/internal/handlers"
	"github.com/example/trmops/internal/middleware"
	"github.com/example/trmops/internal/otp"
	"github.com/example/trmops/internal/services"
	"github.com/example/trmops/internal/session"
)

// Deps carries everything Register needs. DB and Cache are optional; the
// remaining overrides exist for tests and fall back to production values.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Cache     *redis.Client
	Logger    *logrus.Logger
	Generator otp.Generator
	Gateway   services.DeliveryGateway
	Directory directory.Directory
	Now       func() time.Time
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, deps Deps) error {
	cfg := deps.Config
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	challenges, err := otp.NewChallengeStore(otp.ChallengeStoreConfig{
		Secret: cfg.SessionSecret,
		Secure: cfg.IsProduction(),
		Now:    now,
	})
	if err != nil {
		return err
	}

	sessions, err := session.NewManager(session.ManagerConfig{
		Secret: cfg.SessionSecret,
		Secure: cfg.IsProduction(),
		Now:    now,
	})
	if err != nil {
		return err
	}

	generator := deps.Generator
	if generator == nil {
		generator = otp.NewGenerator()
	}

	gateway := deps.Gateway
	if gateway == nil {
		gateway = services.NewDeliveryGateway(cfg.AfricasTalking, deps.Logger)
	}

	dir, err := buildDirectory(deps)
	if err != nil {
		return err
	}

	authHandler := handlers.NewAuthHandler(handlers.AuthDeps{
		Generator:  generator,
		Gateway:    gateway,
		Challenges: challenges,
		Verifier:   otp.NewVerifier(challenges, now),
		Directory:  dir,
		Sessions:   sessions,
		Promoter:   session.NewPromoter(sessions, challenges),
		Logger:     deps.Logger,
		Now:        now,
	})
	areaHandler := handlers.NewAreaHandler(sessions)
	userHandler := handlers.NewUserHandler(dir)

	loginThrottle := middleware.OTPRateLimit(deps.Cache, cfg.OTPRateLimitPerMinute, authHandler.LoginRateKey)
	resendThrottle := middleware.OTPRateLimit(deps.Cache, cfg.OTPRateLimitPerMinute, authHandler.ResendRateKey)
	requireSession := middleware.RequireSession(sessions)

	app.Get("/health", handlers.Health(cfg.GatewayConfigured()))
	app.Get("/", areaHandler.Root)

	// Login flow
	app.Post("/login", loginThrottle, authHandler.Login)
	app.Get("/login/verify", authHandler.VerifyPage)
	app.Post("/login/verify", resendThrottle, authHandler.Verify)
	app.Post("/logout", authHandler.Logout)

	app.Get("/me", requireSession, areaHandler.Me)

	// Role areas; admins pass every role check.
	admin := app.Group("/admin", requireSession, middleware.RequireRole(session.RoleAdmin))
	admin.Get("/", areaHandler.Landing("admin"))
	admin.Get("/users", userHandler.ListUsers)
	admin.Put("/users", userHandler.UpsertUser)

	app.Get("/ops/tasks", requireSession,
		middleware.RequireRole(session.RoleMaintenanceOperative, session.RoleFacilityManager),
		areaHandler.Landing("ops_tasks"))
	app.Get("/ops", requireSession, middleware.RequireRole(session.RoleFacilityManager), areaHandler.Landing("ops"))
	app.Get("/security", requireSession, middleware.RequireRole(session.RoleSecurityGuard), areaHandler.Landing("security"))
	app.Get("/tenant", requireSession, middleware.RequireRole(session.RoleTenantManager), areaHandler.Landing("tenant"))

	return nil
}

// buildDirectory prefers the database-backed directory and seeds it from config.
func buildDirectory(deps Deps) (directory.Directory, error) {
	dir := deps.Directory
	switch {
	case dir != nil:
	case deps.DB != nil:
		dir = directory.NewGormDirectory(deps.DB, deps.Config.DefaultRole)
	default:
		dir = directory.NewMemoryDirectory(deps.Config.DefaultRole)
	}

	users, err := directory.ParseSeed(deps.Config.DirectorySeed)
	if err != nil {
		return nil, err
	}
	if err := directory.Seed(context.Background(), dir, users); err != nil {
		return nil, err
	}
	if len(users) > 0 {
		deps.Logger.WithField("entries", len(users)).Info("directory seeded")
	}
	return dir, nil
}
