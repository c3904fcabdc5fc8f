package dto

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Mark (JSON) — payload hasil resolve + GPS student
type MarkAttendanceRequest struct {
	SessionID        string  `json:"sessionId" validate:"required"`
	Timestamp        int64   `json:"timestamp" validate:"required"`
	Nonce            string  `json:"nonce"     validate:"required"`
	Signature        string  `json:"signature" validate:"required"`
	StudentLatitude  float64 `json:"studentLatitude"  validate:"latitude"`
	StudentLongitude float64 `json:"studentLongitude" validate:"longitude"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

// Sukses 201
type MarkAttendanceResponse struct {
	Message     string    `json:"message"`
	SubjectName string    `json:"subjectName"`
	Distance    int       `json:"distance"`
	MarkedAt    time.Time `json:"markedAt"`
}

// Riwayat student
type AttendanceHistoryItem struct {
	ID             uuid.UUID `json:"id"`
	SessionID      uuid.UUID `json:"sessionId"`
	SubjectName    string    `json:"subjectName"`
	SessionDate    time.Time `json:"sessionDate"`
	MarkedAt       time.Time `json:"markedAt"`
	DistanceMeters int       `json:"distanceMeters"`
}
