package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/sessions/controller"
)

// AttendanceSessionRoutes: lifecycle sesi + mint QR. Guard role ada di dalam
// controller (list dipakai dua role).
func AttendanceSessionRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceSessionController(db)

	sessions := r.Group("/sessions")
	sessions.Post("/", ctrl.CreateSession)
	sessions.Get("/", ctrl.ListSessions)
	sessions.Get("/active", ctrl.ActiveSession)
	sessions.Get("/:id", ctrl.SessionDetail)
	sessions.Patch("/:id", ctrl.EndSession)
	sessions.Get("/:id/qr", ctrl.MintQRToken)
}
