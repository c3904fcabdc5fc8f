package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"absensiku_backend/internals/constants"
)

// Kunci Locals yang dihydrate middleware AuthJWT
const (
	LocUserID = "user_id"
	LocRole   = "role"
)

// GetUserIDFromToken mengembalikan principal id (UUID) hasil verifikasi JWT.
// 401 jika tidak ada / bukan UUID — middleware seharusnya sudah menolak lebih awal.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(strings.TrimSpace(v))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak valid")
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRole).(string); ok {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return ""
}

// RequireProfessor: 403 jika principal bukan professor.
func RequireProfessor(c *fiber.Ctx, feature string) (uuid.UUID, error) {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, err
	}
	if GetRoleFromToken(c) != constants.RoleProfessor {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, constants.RoleErrorProfessor(feature))
	}
	return id, nil
}

// RequireStudent: 403 jika principal bukan student.
func RequireStudent(c *fiber.Ctx, feature string) (uuid.UUID, error) {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, err
	}
	if GetRoleFromToken(c) != constants.RoleStudent {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, constants.RoleErrorStudent(feature))
	}
	return id, nil
}
