package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/tokens/service"
	helper "absensiku_backend/internals/helpers"
	helperAuth "absensiku_backend/internals/helpers/auth"
)

type ResolveController struct {
	DB *gorm.DB
}

func NewResolveController(db *gorm.DB) *ResolveController {
	return &ResolveController{DB: db}
}

type resolveRequest struct {
	Token string `json:"token"`
}

/* ===================== RESOLVE ===================== */
// POST /api/u/qr/resolve
// Mahasiswa menukar short token hasil scan dengan payload lengkap.
// Token absen dan token kadaluarsa dijawab identik.
func (ctrl *ResolveController) ResolveQRToken(c *fiber.Ctx) error {
	if _, err := helperAuth.RequireStudent(c, "resolve QR"); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if strings.TrimSpace(req.Token) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Token wajib diisi")
	}

	payload, err := service.NewTokenStore(ctrl.DB).Get(strings.TrimSpace(req.Token))
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest,
				"QR tidak valid atau sudah kadaluarsa. Silakan scan kode yang baru.")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal resolve QR")
	}

	return c.JSON(fiber.Map{
		"sessionId": payload.SessionID,
		"timestamp": payload.Timestamp,
		"nonce":     payload.Nonce,
		"signature": payload.Signature,
	})
}
