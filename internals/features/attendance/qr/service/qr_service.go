package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// QRPayload: isi QR setelah short token di-resolve. Wire shape persis:
// timestamp epoch millis, nonce hex, signature hex HMAC-SHA256.
type QRPayload struct {
	SessionID string `json:"sessionId"`
	Timestamp int64  `json:"timestamp"`
	Nonce     string `json:"nonce"`
	Signature string `json:"signature"`
}

// GenerateSessionSecret: secret per-sesi, 32 byte random → hex 64 char.
// Immutable selama umur sesi, tidak pernah dikirim ke klien.
func GenerateSessionSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func generateNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// signature = HMAC-SHA256(secret, "sessionId:timestampMillis:nonce") → hex.
// Deterministik untuk tuple yang sama.
func computeSignature(sessionID string, timestamp int64, nonce, secret string) string {
	data := fmt.Sprintf("%s:%d:%s", sessionID, timestamp, nonce)
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(data))
	return hex.EncodeToString(m.Sum(nil))
}

// GeneratePayload mint payload baru: timestamp sekarang (ms) + nonce segar +
// signature. Dipanggil tiap refresh QR; tiap payload independen.
func GeneratePayload(sessionID, secret string) (*QRPayload, error) {
	nonce, err := generateNonce()
	if err != nil {
		return nil, err
	}
	timestamp := time.Now().UnixMilli()
	return &QRPayload{
		SessionID: sessionID,
		Timestamp: timestamp,
		Nonce:     nonce,
		Signature: computeSignature(sessionID, timestamp, nonce, secret),
	}, nil
}

// VerifyPayload menghitung ulang signature dari field payload sendiri dan
// membandingkan constant-time. Panjang berbeda tidak short-circuit variable-time.
func VerifyPayload(p *QRPayload, secret string) bool {
	if p == nil {
		return false
	}
	expected := computeSignature(p.SessionID, p.Timestamp, p.Nonce, secret)
	return hmac.Equal([]byte(p.Signature), []byte(expected))
}

// IsTimestampFresh: now - ts < maxAge. Timestamp dari masa depan tidak ditolak
// di sini (delta negatif juga < maxAge); clock skew kecil antar device dibiarkan.
func IsTimestampFresh(timestampMillis int64, maxAge time.Duration) bool {
	return time.Now().UnixMilli()-timestampMillis < maxAge.Milliseconds()
}
