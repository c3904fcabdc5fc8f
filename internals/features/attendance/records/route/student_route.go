package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/records/controller"
	"absensiku_backend/internals/middlewares"
)

// AttendanceRoutes: mark + riwayat kehadiran student
func AttendanceRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)

	attendance := r.Group("/attendance")
	attendance.Post("/", middlewares.MarkAttendanceRateLimiter(), ctrl.MarkAttendance)
	attendance.Get("/", ctrl.AttendanceHistory)
}
