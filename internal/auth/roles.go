package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/complaint-portal/pkg/util/errorutil"
)

// RequireAuthenticated ensures a logged-in caller.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller holds the admin capability. Admin and
// department-head are independent flags; neither implies the other.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if !principal.User.IsAdmin {
			return apperrors.NewForbidden("admin required")
		}
		return c.Next()
	}
}

// RequireDepartmentHead ensures the caller holds the department-head capability.
func RequireDepartmentHead() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if !principal.User.IsDepartmentHead {
			return apperrors.NewForbidden("department head required")
		}
		return c.Next()
	}
}
