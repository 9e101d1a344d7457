package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequireRole menolak request bila role di token tidak cocok
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocRole).(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Akses ditolak untuk role ini")
	}
}

// StudentIDFromLocals ambil student_id (UUID) hasil hydrate AuthJWT
func StudentIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	s, _ := c.Locals(LocStudentID).(string)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Student profile not found")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "student_id tidak valid")
	}
	return id, nil
}
