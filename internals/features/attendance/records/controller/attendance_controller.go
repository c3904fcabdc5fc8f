package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/records/dto"
	"absensiku_backend/internals/features/attendance/records/service"
	helper "absensiku_backend/internals/helpers"
	helperAuth "absensiku_backend/internals/helpers/auth"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

var validate = validator.New()

/* ===================== MARK ===================== */
// POST /api/u/attendance
func (ctrl *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	studentID, err := helperAuth.RequireStudent(c, "absen")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	result, err := service.NewAttendanceMarker(ctrl.DB).Mark(studentID, &req)
	if err != nil {
		var tooFar *service.TooFarError
		if errors.As(err, &tooFar) {
			return helper.JsonErrorWithFields(c, fiber.StatusBadRequest, "Terlalu jauh dari kelas", fiber.Map{
				"distance":    tooFar.Distance,
				"maxDistance": tooFar.MaxDistance,
			})
		}
		return helper.FromFiberError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

/* ===================== HISTORY ===================== */
// GET /api/u/attendance
// Riwayat kehadiran student yang sedang login, terbaru dulu.
func (ctrl *AttendanceController) AttendanceHistory(c *fiber.Ctx) error {
	studentID, err := helperAuth.RequireStudent(c, "riwayat absensi")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	type historyRow struct {
		ID             uuid.UUID `gorm:"column:attendance_record_id"`
		SessionID      uuid.UUID `gorm:"column:attendance_session_id"`
		SubjectName    string    `gorm:"column:attendance_session_subject_name"`
		SessionDate    time.Time `gorm:"column:attendance_session_created_at"`
		MarkedAt       time.Time `gorm:"column:attendance_record_marked_at"`
		DistanceMeters float64   `gorm:"column:attendance_record_distance_meters"`
	}
	var rows []historyRow
	if err := ctrl.DB.Table("attendance_records").
		Select("attendance_records.attendance_record_id, attendance_sessions.attendance_session_id, attendance_sessions.attendance_session_subject_name, attendance_sessions.attendance_session_created_at, attendance_records.attendance_record_marked_at, attendance_records.attendance_record_distance_meters").
		Joins("JOIN attendance_sessions ON attendance_sessions.attendance_session_id = attendance_records.attendance_record_session_id").
		Where("attendance_records.attendance_record_student_id = ?", studentID).
		Order("attendance_records.attendance_record_marked_at DESC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat absensi")
	}

	items := make([]dto.AttendanceHistoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.AttendanceHistoryItem{
			ID:             r.ID,
			SessionID:      r.SessionID,
			SubjectName:    r.SubjectName,
			SessionDate:    r.SessionDate,
			MarkedAt:       r.MarkedAt,
			DistanceMeters: int(r.DistanceMeters + 0.5),
		})
	}
	return c.JSON(items)
}
