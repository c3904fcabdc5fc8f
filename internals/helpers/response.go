package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ✅ Error Response sederhana — wire contract klien: {"error": "..."}
func JsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// ✅ Error Response advance, untuk TooFar yang wajib membawa jarak terhitung
// (disclosure disengaja: mahasiswa sudah tahu lokasinya sendiri)
func JsonErrorWithFields(c *fiber.Ctx, code int, message string, fields fiber.Map) error {
	body := fiber.Map{"error": message}
	for k, v := range fields {
		body[k] = v
	}
	return c.Status(code).JSON(body)
}

// ✅ Khusus error validasi (validator.v10): ambil pesan pertama, sisanya detail
func JsonValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return JsonError(c, fiber.StatusBadRequest, "Input tidak valid")
	}

	errorsMap := make(map[string]string)
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag() // bisa diganti jadi pesan kustom
	}

	return JsonErrorWithFields(c, fiber.StatusBadRequest, "Validasi gagal", fiber.Map{
		"fields": errorsMap,
	})
}
