package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceSessionModel: sesi absensi milik satu professor, ber-anchor
// geolokasi, time-boxed 2 jam. Secret tidak pernah diserialisasi ke klien.
type AttendanceSessionModel struct {
	AttendanceSessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_session_id" json:"attendance_session_id"`

	// Partial unique index: maksimal satu baris is_active=true per professor.
	// Pre-check di controller saja rawan race dua POST hampir bersamaan.
	AttendanceSessionProfessorID uuid.UUID `gorm:"type:uuid;not null;index;index:uq_attendance_sessions_active_professor,unique,where:attendance_session_is_active;column:attendance_session_professor_id" json:"attendance_session_professor_id"`
	AttendanceSessionSubjectName string    `gorm:"not null;column:attendance_session_subject_name" json:"attendance_session_subject_name"`

	AttendanceSessionLatitude  float64 `gorm:"not null;column:attendance_session_latitude"  json:"attendance_session_latitude"`
	AttendanceSessionLongitude float64 `gorm:"not null;column:attendance_session_longitude" json:"attendance_session_longitude"`

	// Secret HMAC per-sesi; immutable selama umur sesi
	AttendanceSessionSecret string `gorm:"not null;column:attendance_session_secret" json:"-"`

	AttendanceSessionIsActive bool `gorm:"not null;default:true;column:attendance_session_is_active" json:"attendance_session_is_active"`

	AttendanceSessionCreatedAt time.Time `gorm:"column:attendance_session_created_at;autoCreateTime" json:"attendance_session_created_at"`
	AttendanceSessionExpiresAt time.Time `gorm:"not null;column:attendance_session_expires_at" json:"attendance_session_expires_at"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }

func (m *AttendanceSessionModel) IsExpired(now time.Time) bool {
	return now.After(m.AttendanceSessionExpiresAt)
}

// IsEffectivelyActive: expiry pasif — sesi yang lewat expires_at diperlakukan
// seperti sudah berakhir walau flag belum di-flip.
func (m *AttendanceSessionModel) IsEffectivelyActive(now time.Time) bool {
	return m.AttendanceSessionIsActive && !m.IsExpired(now)
}
