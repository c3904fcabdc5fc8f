package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError mengubah error hasil service/transaction (biasanya *fiber.Error)
// menjadi response JSON konsisten via helper.JsonError.
// Jika bukan *fiber.Error, fallback ke 500 dengan pesan generik (pesan asli
// tidak dibocorkan ke klien).
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

// GlobalErrorHandler dipasang di fiber.Config.ErrorHandler: error yang lolos
// sampai framework (mis. 401/403 dari middleware auth) tetap keluar dengan
// wire shape {"error": ...}, bukan text/plain bawaan Fiber.
func GlobalErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
