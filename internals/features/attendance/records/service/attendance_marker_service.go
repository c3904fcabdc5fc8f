package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiku_backend/internals/configs"
	geoservice "absensiku_backend/internals/features/attendance/geo/service"
	qrservice "absensiku_backend/internals/features/attendance/qr/service"
	"absensiku_backend/internals/features/attendance/records/dto"
	"absensiku_backend/internals/features/attendance/records/model"
	sessmodel "absensiku_backend/internals/features/attendance/sessions/model"
)

// TooFarError membawa jarak terhitung + batas konfigurasi; keduanya wajib
// di-disclose ke klien (student sudah tahu lokasinya sendiri).
type TooFarError struct {
	Distance    int
	MaxDistance int
}

func (e *TooFarError) Error() string {
	return fmt.Sprintf("terlalu jauh dari kelas (%d m, maksimum %d m)", e.Distance, e.MaxDistance)
}

// SessionFinder & RecordStore: jahitan ke datastore, dipisah supaya alur
// verifikasi bisa dites tanpa Postgres.
type SessionFinder interface {
	FindByID(id uuid.UUID) (*sessmodel.AttendanceSessionModel, error)
}

type RecordStore interface {
	Exists(sessionID, studentID uuid.UUID) (bool, error)
	Create(rec *model.AttendanceRecordModel) error
}

// AttendanceMarker menjalankan urutan verifikasi penuh sebelum commit:
// sesi → signature → aktif/expiry pasif → freshness → duplikat → jarak → insert.
// Race duplikat ditutup oleh unique constraint di Create, bukan pre-check saja.
type AttendanceMarker struct {
	Sessions    SessionFinder
	Records     RecordStore
	MaxDistance float64
	Freshness   time.Duration
}

func NewAttendanceMarker(db *gorm.DB) *AttendanceMarker {
	return &AttendanceMarker{
		Sessions:    &gormSessionFinder{db: db},
		Records:     &gormRecordStore{db: db},
		MaxDistance: configs.MaxDistanceMeters(),
		Freshness:   configs.QRValidity(),
	}
}

func (m *AttendanceMarker) Mark(studentID uuid.UUID, req *dto.MarkAttendanceRequest) (*dto.MarkAttendanceResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
	}

	// 1) Load sesi
	session, err := m.Sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return nil, err
	}

	// 2) Verifikasi signature terhadap secret sesi (constant-time)
	payload := &qrservice.QRPayload{
		SessionID: req.SessionID,
		Timestamp: req.Timestamp,
		Nonce:     req.Nonce,
		Signature: req.Signature,
	}
	if !qrservice.VerifyPayload(payload, session.AttendanceSessionSecret) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "QR tidak valid")
	}

	// 3) Sesi harus aktif; lewat expires_at = berakhir walau flag belum di-flip
	if !session.IsEffectivelyActive(time.Now()) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Sesi sudah berakhir")
	}

	// 4) Freshness payload (jendela sendiri, bukan TTL short token)
	if !qrservice.IsTimestampFresh(req.Timestamp, m.Freshness) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "QR sudah kadaluarsa. Silakan scan kode yang baru.")
	}

	// 5) Pre-check duplikat (constraint storage tetap penjaga terakhir)
	exists, err := m.Records.Exists(sessionID, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Anda sudah absen di sesi ini")
	}

	// 6) Jarak great-circle dari anchor sesi
	distance := geoservice.DistanceMeters(
		session.AttendanceSessionLatitude, session.AttendanceSessionLongitude,
		req.StudentLatitude, req.StudentLongitude,
	)
	if distance > m.MaxDistance {
		return nil, &TooFarError{
			Distance:    roundMeters(distance),
			MaxDistance: int(m.MaxDistance),
		}
	}

	// 7) Commit; dua submit bersamaan untuk (sesi, student) yang sama akan
	// diserialisasi di unique constraint — tepat satu yang berhasil
	rec := model.AttendanceRecordModel{
		AttendanceRecordSessionID:        sessionID,
		AttendanceRecordStudentID:        studentID,
		AttendanceRecordStudentLatitude:  req.StudentLatitude,
		AttendanceRecordStudentLongitude: req.StudentLongitude,
		AttendanceRecordDistanceMeters:   distance,
	}
	if err := m.Records.Create(&rec); err != nil {
		if isDuplicateKey(err) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Anda sudah absen di sesi ini")
		}
		return nil, err
	}

	markedAt := rec.AttendanceRecordMarkedAt
	if markedAt.IsZero() {
		markedAt = time.Now()
	}
	return &dto.MarkAttendanceResponse{
		Message:     "Absensi berhasil dicatat",
		SubjectName: session.AttendanceSessionSubjectName,
		Distance:    roundMeters(distance),
		MarkedAt:    markedAt,
	}, nil
}

func roundMeters(d float64) int {
	return int(d + 0.5)
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

/* ===================== GORM IMPL ===================== */

type gormSessionFinder struct{ db *gorm.DB }

func (f *gormSessionFinder) FindByID(id uuid.UUID) (*sessmodel.AttendanceSessionModel, error) {
	var session sessmodel.AttendanceSessionModel
	if err := f.db.
		Where("attendance_session_id = ?", id).
		Take(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

type gormRecordStore struct{ db *gorm.DB }

func (s *gormRecordStore) Exists(sessionID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_session_id = ? AND attendance_record_student_id = ?", sessionID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormRecordStore) Create(rec *model.AttendanceRecordModel) error {
	return s.db.Create(rec).Error
}
