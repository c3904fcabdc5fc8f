package model

import (
	"time"

	"gorm.io/datatypes"
)

// QRShortTokenModel: indirection layer QR. Token pendek (8 char) dipetakan ke
// payload bertanda tangan, disimpan di Postgres bersama — BUKAN map in-process —
// supaya token yang di-mint instance A tetap terbaca oleh request di instance B.
type QRShortTokenModel struct {
	QRShortTokenToken     string         `gorm:"primaryKey;column:qr_short_token_token" json:"qr_short_token_token"`
	QRShortTokenPayload   datatypes.JSON `gorm:"not null;column:qr_short_token_payload" json:"qr_short_token_payload"`
	QRShortTokenCreatedAt time.Time      `gorm:"not null;column:qr_short_token_created_at" json:"qr_short_token_created_at"`
	QRShortTokenExpiresAt time.Time      `gorm:"not null;index;column:qr_short_token_expires_at" json:"qr_short_token_expires_at"`
}

func (QRShortTokenModel) TableName() string { return "qr_short_tokens" }

func (m *QRShortTokenModel) IsExpired(now time.Time) bool {
	return now.After(m.QRShortTokenExpiresAt)
}
