package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/configs"
	qrservice "absensiku_backend/internals/features/attendance/qr/service"
	"absensiku_backend/internals/features/attendance/sessions/dto"
	"absensiku_backend/internals/features/attendance/sessions/model"
	tokenservice "absensiku_backend/internals/features/attendance/tokens/service"
	helper "absensiku_backend/internals/helpers"
	helperAuth "absensiku_backend/internals/helpers/auth"
)

type AttendanceSessionController struct {
	DB *gorm.DB
}

func NewAttendanceSessionController(db *gorm.DB) *AttendanceSessionController {
	return &AttendanceSessionController{DB: db}
}

var validate = validator.New()

/* ===================== CREATE ===================== */
// POST /api/u/sessions
// Satu sesi aktif per professor; secret di-generate di sini dan tidak pernah
// keluar ke klien.
func (ctrl *AttendanceSessionController) CreateSession(c *fiber.Ctx) error {
	professorID, err := helperAuth.RequireProfessor(c, "buat sesi absensi")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateAttendanceSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// Cek sesi aktif yang belum berakhir
	var existing model.AttendanceSessionModel
	err = ctrl.DB.
		Where("attendance_session_professor_id = ? AND attendance_session_is_active = ?", professorID, true).
		Take(&existing).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Anda masih punya sesi yang aktif")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sesi")
	}

	secret, err := qrservice.GenerateSessionSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sesi")
	}

	session := req.ToModel(professorID, secret, time.Now().Add(configs.SessionDuration))
	if err := ctrl.DB.Create(&session).Error; err != nil {
		// Dua POST hampir bersamaan bisa sama-sama lolos pre-check; yang kalah
		// ditangkap partial unique index di storage
		if isDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Anda masih punya sesi yang aktif")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sesi")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ToResponse(&session))
}

/* ===================== LIST ===================== */
// GET /api/u/sessions
// Professor: sesi miliknya + jumlah hadir. Student: sesi yang pernah dihadiri.
func (ctrl *AttendanceSessionController) ListSessions(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if helperAuth.GetRoleFromToken(c) == "professor" {
		var sessions []model.AttendanceSessionModel
		if err := ctrl.DB.
			Where("attendance_session_professor_id = ?", userID).
			Order("attendance_session_created_at DESC").
			Find(&sessions).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
		}

		items := make([]dto.AttendanceSessionListItem, 0, len(sessions))
		for i := range sessions {
			s := &sessions[i]
			items = append(items, dto.AttendanceSessionListItem{
				ID:              s.AttendanceSessionID,
				SubjectName:     s.AttendanceSessionSubjectName,
				CreatedAt:       s.AttendanceSessionCreatedAt,
				ExpiresAt:       s.AttendanceSessionExpiresAt,
				IsActive:        s.AttendanceSessionIsActive,
				AttendanceCount: ctrl.countRecords(s.AttendanceSessionID),
			})
		}
		return c.JSON(items)
	}

	// Student: riwayat sesi yang dihadiri (pull-based, di-refresh klien)
	type attendedRow struct {
		ID             uuid.UUID `gorm:"column:attendance_session_id" json:"id"`
		SubjectName    string    `gorm:"column:attendance_session_subject_name" json:"subjectName"`
		MarkedAt       time.Time `gorm:"column:attendance_record_marked_at" json:"markedAt"`
		DistanceMeters float64   `gorm:"column:attendance_record_distance_meters" json:"distanceMeters"`
	}
	var rows []attendedRow
	if err := ctrl.DB.Table("attendance_records").
		Select("attendance_sessions.attendance_session_id, attendance_sessions.attendance_session_subject_name, attendance_records.attendance_record_marked_at, attendance_records.attendance_record_distance_meters").
		Joins("JOIN attendance_sessions ON attendance_sessions.attendance_session_id = attendance_records.attendance_record_session_id").
		Where("attendance_records.attendance_record_student_id = ?", userID).
		Order("attendance_records.attendance_record_marked_at DESC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	return c.JSON(rows)
}

/* ===================== ACTIVE ===================== */
// GET /api/u/sessions/active
func (ctrl *AttendanceSessionController) ActiveSession(c *fiber.Ctx) error {
	professorID, err := helperAuth.RequireProfessor(c, "lihat sesi aktif")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var session model.AttendanceSessionModel
	err = ctrl.DB.
		Where("attendance_session_professor_id = ? AND attendance_session_is_active = ?", professorID, true).
		Take(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"session": nil})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi aktif")
	}

	return c.JSON(fiber.Map{
		"session": fiber.Map{
			"id":              session.AttendanceSessionID,
			"subjectName":     session.AttendanceSessionSubjectName,
			"createdAt":       session.AttendanceSessionCreatedAt,
			"expiresAt":       session.AttendanceSessionExpiresAt,
			"attendanceCount": ctrl.countRecords(session.AttendanceSessionID),
		},
	})
}

/* ===================== DETAIL ===================== */
// GET /api/u/sessions/:id
// Hanya professor pemilik; daftar hadir memuat id student saja (profil student
// milik identity provider, tidak disimpan di sini).
func (ctrl *AttendanceSessionController) SessionDetail(c *fiber.Ctx) error {
	professorID, err := helperAuth.RequireProfessor(c, "lihat detail sesi")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	session, ferr := ctrl.loadOwnedSession(c.Params("id"), professorID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	type recordRow struct {
		StudentID      uuid.UUID `gorm:"column:attendance_record_student_id"`
		MarkedAt       time.Time `gorm:"column:attendance_record_marked_at"`
		DistanceMeters float64   `gorm:"column:attendance_record_distance_meters"`
	}
	var rows []recordRow
	if err := ctrl.DB.Table("attendance_records").
		Select("attendance_record_student_id, attendance_record_marked_at, attendance_record_distance_meters").
		Where("attendance_record_session_id = ?", session.AttendanceSessionID).
		Order("attendance_record_marked_at ASC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil detail sesi")
	}

	students := make([]dto.SessionAttendeeItem, 0, len(rows))
	for _, r := range rows {
		students = append(students, dto.SessionAttendeeItem{
			StudentID:      r.StudentID,
			MarkedAt:       r.MarkedAt,
			DistanceMeters: int(r.DistanceMeters + 0.5),
		})
	}

	return c.JSON(dto.AttendanceSessionDetailResponse{
		ID:              session.AttendanceSessionID,
		SubjectName:     session.AttendanceSessionSubjectName,
		CreatedAt:       session.AttendanceSessionCreatedAt,
		ExpiresAt:       session.AttendanceSessionExpiresAt,
		IsActive:        session.AttendanceSessionIsActive,
		AttendanceCount: int64(len(students)),
		Students:        students,
	})
}

/* ===================== END ===================== */
// PATCH /api/u/sessions/:id
// Mengakhiri sesi. Mengakhiri sesi yang sudah berakhir = no-op sukses dengan
// state saat ini (transisi Ended terminal, tidak pernah balik Active).
func (ctrl *AttendanceSessionController) EndSession(c *fiber.Ctx) error {
	professorID, err := helperAuth.RequireProfessor(c, "akhiri sesi")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	session, ferr := ctrl.loadOwnedSession(c.Params("id"), professorID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	if session.AttendanceSessionIsActive {
		if err := ctrl.DB.Model(&model.AttendanceSessionModel{}).
			Where("attendance_session_id = ?", session.AttendanceSessionID).
			Update("attendance_session_is_active", false).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengakhiri sesi")
		}
		session.AttendanceSessionIsActive = false
	}

	return c.JSON(fiber.Map{
		"id":              session.AttendanceSessionID,
		"subjectName":     session.AttendanceSessionSubjectName,
		"isActive":        session.AttendanceSessionIsActive,
		"attendanceCount": ctrl.countRecords(session.AttendanceSessionID),
	})
}

/* ===================== MINT QR ===================== */
// GET /api/u/sessions/:id/qr
// Dipanggil display layer tiap interval refresh: mint payload bertanda tangan,
// bungkus jadi short token. Token lama tetap resolvable sampai TTL-nya sendiri.
func (ctrl *AttendanceSessionController) MintQRToken(c *fiber.Ctx) error {
	professorID, err := helperAuth.RequireProfessor(c, "generate QR")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	session, ferr := ctrl.loadOwnedSession(c.Params("id"), professorID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	// Expiry pasif: sesi lewat expires_at diperlakukan sudah berakhir
	if !session.IsEffectivelyActive(time.Now()) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Sesi sudah tidak aktif")
	}

	payload, err := qrservice.GeneratePayload(session.AttendanceSessionID.String(), session.AttendanceSessionSecret)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal generate QR")
	}

	token, err := tokenservice.NewTokenStore(ctrl.DB).Put(payload)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal generate QR")
	}

	return c.JSON(fiber.Map{
		"token":          token,
		"refreshSeconds": int(configs.QRRefreshInterval().Seconds()),
	})
}

/* ===================== HELPERS ===================== */

// loadOwnedSession: parse id, 404 kalau tidak ada, 403 kalau bukan pemilik.
func (ctrl *AttendanceSessionController) loadOwnedSession(rawID string, professorID uuid.UUID) (*model.AttendanceSessionModel, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
	}

	var session model.AttendanceSessionModel
	if err := ctrl.DB.
		Where("attendance_session_id = ?", id).
		Take(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return nil, err
	}

	if session.AttendanceSessionProfessorID != professorID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Bukan pemilik sesi ini")
	}
	return &session, nil
}

// Deteksi unique violation Postgres (kode "23505")
// tanpa import pgx/pgconn biar portable: cek substring
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "23505")
}

func (ctrl *AttendanceSessionController) countRecords(sessionID uuid.UUID) int64 {
	var count int64
	_ = ctrl.DB.Table("attendance_records").
		Where("attendance_record_session_id = ?", sessionID).
		Count(&count).Error
	return count
}
