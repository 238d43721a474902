// file: internals/route/details/user_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "hoaportal_backend/internals/features/users/controller"
)

// AdminUserRoutes mounts member administration under /api/a.
func AdminUserRoutes(r fiber.Router, db *gorm.DB) {
	users := userController.NewUserController(db)

	r.Get("/users", users.List)
	r.Get("/users/:id", users.GetByID)
	r.Put("/users/:id", users.Update)
}
