package service

import (
	"math"

	"absensiku_backend/internals/configs"
)

// Radius bumi (meter) untuk haversine
const earthRadiusMeters = 6371000.0

// DistanceMeters menghitung jarak great-circle (haversine) antara dua koordinat,
// dalam meter. Validasi range lat/lng adalah tanggung jawab layer input.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// IsWithinProximity: true jika jarak masih di dalam radius konfigurasi
// (ATTENDANCE_MAX_DISTANCE_METERS, default 100 m).
func IsWithinProximity(distanceMeters float64) bool {
	return distanceMeters <= configs.MaxDistanceMeters()
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
