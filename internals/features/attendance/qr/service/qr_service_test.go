package service

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "5aa93d8ddbdd17601e24ce76e2f42536cf12ef4ca45ba74fd2eef7ad8b4f0a1b"

func TestGenerateSessionSecret(t *testing.T) {
	s1, err := GenerateSessionSecret()
	require.NoError(t, err)
	s2, err := GenerateSessionSecret()
	require.NoError(t, err)

	assert.Len(t, s1, 64)
	assert.NotEqual(t, s1, s2)

	_, err = hex.DecodeString(s1)
	assert.NoError(t, err, "secret harus hex valid")
}

func TestGeneratePayload_Shape(t *testing.T) {
	p, err := GeneratePayload("sesi-123", testSecret)
	require.NoError(t, err)

	assert.Equal(t, "sesi-123", p.SessionID)
	assert.InDelta(t, time.Now().UnixMilli(), p.Timestamp, 2000)
	assert.Len(t, p.Nonce, 32)
	assert.Len(t, p.Signature, 64) // hex dari HMAC-SHA256

	_, err = hex.DecodeString(p.Signature)
	assert.NoError(t, err)
}

func TestVerifyPayload_RoundTrip(t *testing.T) {
	p, err := GeneratePayload("sesi-123", testSecret)
	require.NoError(t, err)

	assert.True(t, VerifyPayload(p, testSecret))
}

func TestVerifyPayload_WrongSecret(t *testing.T) {
	p, err := GeneratePayload("sesi-123", testSecret)
	require.NoError(t, err)

	assert.False(t, VerifyPayload(p, "secret-lain"))
}

func TestVerifyPayload_MutatedFields(t *testing.T) {
	base, err := GeneratePayload("sesi-123", testSecret)
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(p *QRPayload)
	}{
		{"sessionId", func(p *QRPayload) { p.SessionID = "sesi-999" }},
		{"timestamp", func(p *QRPayload) { p.Timestamp++ }},
		{"nonce", func(p *QRPayload) { p.Nonce = "deadbeefdeadbeefdeadbeefdeadbeef" }},
		{"signature", func(p *QRPayload) { p.Signature = "00" + p.Signature[2:] }},
		{"signature pendek", func(p *QRPayload) { p.Signature = p.Signature[:10] }},
		{"signature kosong", func(p *QRPayload) { p.Signature = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := *base
			tc.mutate(&p)
			assert.False(t, VerifyPayload(&p, testSecret))
		})
	}
}

func TestVerifyPayload_Nil(t *testing.T) {
	assert.False(t, VerifyPayload(nil, testSecret))
}

func TestVerifyPayload_Deterministic(t *testing.T) {
	p, err := GeneratePayload("sesi-123", testSecret)
	require.NoError(t, err)

	// verifikasi berulang atas payload yang sama selalu true
	for i := 0; i < 5; i++ {
		assert.True(t, VerifyPayload(p, testSecret))
	}
}

func TestIsTimestampFresh(t *testing.T) {
	now := time.Now().UnixMilli()

	assert.True(t, IsTimestampFresh(now, 5*time.Minute))
	assert.True(t, IsTimestampFresh(now-299_000, 5*time.Minute))
	assert.False(t, IsTimestampFresh(now-300_000, 5*time.Minute))
	assert.False(t, IsTimestampFresh(now-10*60_000, 5*time.Minute))

	// perilaku yang disengaja: timestamp masa depan lolos check ini
	// (delta negatif < maxAge) — lihat DESIGN.md
	assert.True(t, IsTimestampFresh(now+60_000, 5*time.Minute))
}
