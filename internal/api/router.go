package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/locker-access-backend/internal/access"
	accessHttp "github.com/nekogravitycat/locker-access-backend/internal/access/http"
	"github.com/nekogravitycat/locker-access-backend/internal/audit"
	auditHttp "github.com/nekogravitycat/locker-access-backend/internal/audit/http"
	"github.com/nekogravitycat/locker-access-backend/internal/auth"
	"github.com/nekogravitycat/locker-access-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/locker-access-backend/internal/booking/http"
	"github.com/nekogravitycat/locker-access-backend/internal/location"
	locHttp "github.com/nekogravitycat/locker-access-backend/internal/location/http"
	"github.com/nekogravitycat/locker-access-backend/internal/locker"
	lockerHttp "github.com/nekogravitycat/locker-access-backend/internal/locker/http"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/clock"
	"github.com/nekogravitycat/locker-access-backend/internal/user"
	userHttp "github.com/nekogravitycat/locker-access-backend/internal/user/http"
)

// Config collects everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated allowed origins in production

	UserService     user.Service
	LocationService location.Service
	LockerService   locker.Service
	BookingService  booking.Service
	AccessService   access.Service
	AuditService    audit.Service

	JWTManager *auth.JWTManager
	Clock      clock.Clock
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for all
// modules. CORS answers preflight OPTIONS requests before any auth or
// business logic runs.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Logger logs request information to the console; Recovery captures
	// panics and returns a 500 instead of crashing the server.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // local frontend
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware validates the bearer JWT; adminMiddleware further
	// requires system admin privileges.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireSystemAdmin(cfg.UserService)

	userHandler := userHttp.NewUserHandler(cfg.UserService, cfg.JWTManager)
	locHandler := locHttp.NewHandler(cfg.LocationService)
	lockerHandler := lockerHttp.NewHandler(cfg.LockerService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService)
	accessHandler := accessHttp.NewHandler(cfg.AccessService, cfg.Clock)
	auditHandler := auditHttp.NewHandler(cfg.AuditService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		locHttp.RegisterRoutes(v1, locHandler, authMiddleware, adminMiddleware)
		lockerHttp.RegisterRoutes(v1, lockerHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		accessHttp.RegisterRoutes(v1, accessHandler, authMiddleware)
		auditHttp.RegisterRoutes(v1, auditHandler, authMiddleware, adminMiddleware)
	}

	return r
}
