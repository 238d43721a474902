// file: internals/helpers/token.go
package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by the auth middleware.
const (
	LocalsUserID = "user_id"
	LocalsRoles  = "user_roles"
)

var ErrNoUserInContext = errors.New("no authenticated user in request context")

// GetUserIDFromLocals returns the authenticated user's id stored by the
// auth middleware.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocalsUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrNoUserInContext
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoUserInContext
	}
	return id, nil
}

func GetRolesFromLocals(c *fiber.Ctx) []string {
	switch v := c.Locals(LocalsRoles).(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return strings.Split(v, ",")
	default:
		return nil
	}
}

// IsInRole reports whether the caller carries the given role claim.
// This is the only role oracle the billing code consults.
func IsInRole(c *fiber.Ctx, role string) bool {
	for _, r := range GetRolesFromLocals(c) {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}
