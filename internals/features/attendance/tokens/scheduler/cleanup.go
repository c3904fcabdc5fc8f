package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/tokens/service"
)

// StartTokenSweepScheduler menjalankan pembersihan qr_short_tokens secara
// periodik. Boleh jalan di instance mana pun tanpa koordinasi.
func StartTokenSweepScheduler(db *gorm.DB) {
	go func() {
		// Interval dari env (default: 60 detik)
		intervalSec := 60
		if val := os.Getenv("QR_SWEEP_INTERVAL_SECONDS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalSec = parsed
			}
		}

		store := service.NewTokenStore(db)
		for {
			count, err := store.SweepExpired()
			if err != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus token QR kadaluarsa: %v", err)
			} else if count > 0 {
				log.Printf("[CLEANUP] %d token QR kadaluarsa dihapus", count)
			}

			time.Sleep(time.Duration(intervalSec) * time.Second)
		}
	}()
}
