package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/locker-access-backend/internal/access"
	"github.com/nekogravitycat/locker-access-backend/internal/actuation"
	"github.com/nekogravitycat/locker-access-backend/internal/api"
	"github.com/nekogravitycat/locker-access-backend/internal/audit"
	"github.com/nekogravitycat/locker-access-backend/internal/auth"
	"github.com/nekogravitycat/locker-access-backend/internal/booking"
	"github.com/nekogravitycat/locker-access-backend/internal/location"
	"github.com/nekogravitycat/locker-access-backend/internal/locker"
	"github.com/nekogravitycat/locker-access-backend/internal/pkg/clock"
	"github.com/nekogravitycat/locker-access-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction        bool
	ProdOrigins         string
	DBPool              *pgxpool.Pool
	JWTSecret           string
	JWTTTL              time.Duration
	BcryptCost          int
	AuditDeniedAttempts bool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	clk := clock.System{}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Location Module
	locRepo := location.NewPgxRepository(cfg.DBPool)
	locService := location.NewService(locRepo)

	// Locker Module
	lockerRepo := locker.NewPgxRepository(cfg.DBPool)
	lockerService := locker.NewService(lockerRepo, locService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, lockerService, clk)

	// Audit Module
	auditRepo := audit.NewPgxRepository(cfg.DBPool)
	auditService := audit.NewService(auditRepo)

	// Access Module
	channel := actuation.NewLogChannel()
	accessService := access.NewService(bookingService, auditService, channel, cfg.AuditDeniedAttempts)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		LocationService: locService,
		LockerService:   lockerService,
		BookingService:  bookingService,
		AccessService:   accessService,
		AuditService:    auditService,
		JWTManager:      jwtManager,
		Clock:           clk,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
