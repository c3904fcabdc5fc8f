package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"absensiku_backend/internals/configs"
	qrservice "absensiku_backend/internals/features/attendance/qr/service"
	"absensiku_backend/internals/features/attendance/tokens/model"
)

// ErrTokenNotFound: token tidak ada ATAU sudah lewat TTL — sengaja tidak
// dibedakan dari sisi pemanggil.
var ErrTokenNotFound = errors.New("token tidak ditemukan")

// TokenStore menyimpan pemetaan short token → payload di datastore bersama.
// Get adalah pure read (tidak consume-once); banyak mahasiswa boleh resolve
// token yang sama bersamaan.
type TokenStore struct {
	DB  *gorm.DB
	TTL time.Duration
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{DB: db, TTL: configs.QRTokenTTL()}
}

// generateShortToken: 6 byte random → base64url 8 karakter
func generateShortToken() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Put menyimpan payload di bawah token baru; expires_at = created_at + TTL.
func (s *TokenStore) Put(payload *qrservice.QRPayload) (string, error) {
	token, err := generateShortToken()
	if err != nil {
		return "", err
	}

	raw, err := sonic.Marshal(payload)
	if err != nil {
		return "", err
	}

	now := time.Now()
	row := model.QRShortTokenModel{
		QRShortTokenToken:     token,
		QRShortTokenPayload:   raw,
		QRShortTokenCreatedAt: now,
		QRShortTokenExpiresAt: now.Add(s.TTL),
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return "", err
	}
	return token, nil
}

// Get me-resolve token ke payload. Token absen atau kadaluarsa sama-sama
// ErrTokenNotFound; row kadaluarsa dihapus best-effort (sweep tetap jadi
// pembersih utama).
func (s *TokenStore) Get(token string) (*qrservice.QRPayload, error) {
	var row model.QRShortTokenModel
	if err := s.DB.Where("qr_short_token_token = ?", token).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	if row.IsExpired(time.Now()) {
		_ = s.DB.Where("qr_short_token_token = ?", token).
			Delete(&model.QRShortTokenModel{}).Error
		return nil, ErrTokenNotFound
	}

	var payload qrservice.QRPayload
	if err := sonic.Unmarshal(row.QRShortTokenPayload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Invalidate menghapus token secara eksplisit; idempotent.
func (s *TokenStore) Invalidate(token string) error {
	return s.DB.Where("qr_short_token_token = ?", token).
		Delete(&model.QRShortTokenModel{}).Error
}

// SweepExpired menghapus semua row lewat expiry; aman berjalan paralel dengan
// Get/Put di instance mana pun (delete idempotent & komutatif).
func (s *TokenStore) SweepExpired() (int64, error) {
	res := s.DB.Where("qr_short_token_expires_at <= ?", time.Now()).
		Delete(&model.QRShortTokenModel{})
	return res.RowsAffected, res.Error
}
