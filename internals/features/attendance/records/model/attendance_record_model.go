package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecordModel: satu record per (sesi, student), dijaga unique index
// di storage — pre-check aplikasi saja rawan race dua submit hampir bersamaan.
type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordSessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_records_session_student;column:attendance_record_session_id" json:"attendance_record_session_id"`
	AttendanceRecordStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_records_session_student;index;column:attendance_record_student_id" json:"attendance_record_student_id"`

	AttendanceRecordStudentLatitude  float64 `gorm:"not null;column:attendance_record_student_latitude"  json:"attendance_record_student_latitude"`
	AttendanceRecordStudentLongitude float64 `gorm:"not null;column:attendance_record_student_longitude" json:"attendance_record_student_longitude"`
	AttendanceRecordDistanceMeters   float64 `gorm:"not null;column:attendance_record_distance_meters"   json:"attendance_record_distance_meters"`

	AttendanceRecordMarkedAt time.Time `gorm:"column:attendance_record_marked_at;autoCreateTime" json:"attendance_record_marked_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
