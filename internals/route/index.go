package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "absensiku_backend/internals/middlewares/auth"
	routeDetails "absensiku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	// Semua endpoint protokol absensi butuh principal ter-autentikasi
	// (JWT dari identity provider eksternal)
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Attendance routes...")
	routeDetails.AttendanceRoutes(private, db)
}
