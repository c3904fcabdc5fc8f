package dto

import (
	"time"

	"github.com/google/uuid"

	m "absensiku_backend/internals/features/attendance/sessions/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Create (JSON) — butuh GPS professor saat itu
type CreateAttendanceSessionRequest struct {
	SubjectName string  `json:"subjectName" validate:"required,min=2,max=120"`
	Latitude    float64 `json:"latitude"    validate:"latitude"`
	Longitude   float64 `json:"longitude"   validate:"longitude"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type AttendanceSessionResponse struct {
	ID          uuid.UUID `json:"id"`
	SubjectName string    `json:"subjectName"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	IsActive    bool      `json:"isActive"`
}

type AttendanceSessionListItem struct {
	ID              uuid.UUID `json:"id"`
	SubjectName     string    `json:"subjectName"`
	CreatedAt       time.Time `json:"createdAt"`
	ExpiresAt       time.Time `json:"expiresAt"`
	IsActive        bool      `json:"isActive"`
	AttendanceCount int64     `json:"attendanceCount"`
}

type SessionAttendeeItem struct {
	StudentID      uuid.UUID `json:"studentId"`
	MarkedAt       time.Time `json:"markedAt"`
	DistanceMeters int       `json:"distanceMeters"`
}

type AttendanceSessionDetailResponse struct {
	ID              uuid.UUID             `json:"id"`
	SubjectName     string                `json:"subjectName"`
	CreatedAt       time.Time             `json:"createdAt"`
	ExpiresAt       time.Time             `json:"expiresAt"`
	IsActive        bool                  `json:"isActive"`
	AttendanceCount int64                 `json:"attendanceCount"`
	Students        []SessionAttendeeItem `json:"students"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateAttendanceSessionRequest) ToModel(professorID uuid.UUID, secret string, expiresAt time.Time) m.AttendanceSessionModel {
	return m.AttendanceSessionModel{
		AttendanceSessionProfessorID: professorID,
		AttendanceSessionSubjectName: r.SubjectName,
		AttendanceSessionLatitude:    r.Latitude,
		AttendanceSessionLongitude:   r.Longitude,
		AttendanceSessionSecret:      secret,
		AttendanceSessionIsActive:    true,
		AttendanceSessionExpiresAt:   expiresAt,
	}
}

func ToResponse(s *m.AttendanceSessionModel) AttendanceSessionResponse {
	return AttendanceSessionResponse{
		ID:          s.AttendanceSessionID,
		SubjectName: s.AttendanceSessionSubjectName,
		CreatedAt:   s.AttendanceSessionCreatedAt,
		ExpiresAt:   s.AttendanceSessionExpiresAt,
		IsActive:    s.AttendanceSessionIsActive,
	}
}
