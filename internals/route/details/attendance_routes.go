// internals/route/details/attendance_routes.go
package details

import (
	RecordRoutes "absensiku_backend/internals/features/attendance/records/route"
	SessionRoutes "absensiku_backend/internals/features/attendance/sessions/route"
	TokenRoutes "absensiku_backend/internals/features/attendance/tokens/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== ATTENDANCE ===================== */
// Seluruh protokol absensi QR: lifecycle sesi (professor), resolve token
// (student), mark + riwayat (student)
func AttendanceRoutes(r fiber.Router, db *gorm.DB) {
	SessionRoutes.AttendanceSessionRoutes(r, db)
	TokenRoutes.QRResolveRoutes(r, db)
	RecordRoutes.AttendanceRoutes(r, db)
}
