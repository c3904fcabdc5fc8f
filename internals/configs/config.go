package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

// =======================
// KONFIG PROTOKOL ABSENSI
// =======================

// Durasi sesi absensi: konstanta 2 jam (belum configurable).
const SessionDuration = 2 * time.Hour

// MaxDistanceMeters: radius maksimum mahasiswa dari anchor sesi (default 100 m).
func MaxDistanceMeters() float64 {
	return float64(getEnvInt("ATTENDANCE_MAX_DISTANCE_METERS", 100))
}

// QRValidity: jendela freshness payload bertanda tangan (default 300 detik).
// Independen dari TTL short token.
func QRValidity() time.Duration {
	return time.Duration(getEnvInt("QR_VALIDITY_SECONDS", 300)) * time.Second
}

// QRTokenTTL: umur short token di store (default 300 detik). Sengaja lebih
// panjang dari interval refresh supaya kode yang masih tampil di proyektor
// tetap bisa di-resolve.
func QRTokenTTL() time.Duration {
	return time.Duration(getEnvInt("QR_TOKEN_TTL_SECONDS", 300)) * time.Second
}

// QRRefreshInterval: interval rotasi QR di display layer (default 30 detik).
// Dikirim ke klien, server tidak memakainya untuk validasi.
func QRRefreshInterval() time.Duration {
	return time.Duration(getEnvInt("QR_REFRESH_INTERVAL_SECONDS", 30)) * time.Second
}
