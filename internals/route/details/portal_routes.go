// file: internals/route/details/portal_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	documentController "hoaportal_backend/internals/features/documents/controller"
	taskController "hoaportal_backend/internals/features/tasks/controller"
)

// MemberPortalRoutes exposes the read-only portal content under /api/u.
func MemberPortalRoutes(r fiber.Router, db *gorm.DB) {
	documents := documentController.NewDocumentController(db)
	tasks := taskController.NewAdminTaskController(db)

	r.Get("/documents", documents.List)
	r.Get("/tasks", tasks.List)
}

// AdminPortalRoutes exposes the content-management surface under /api/a.
func AdminPortalRoutes(r fiber.Router, db *gorm.DB) {
	documents := documentController.NewDocumentController(db)
	tasks := taskController.NewAdminTaskController(db)

	r.Post("/documents", documents.Upload)
	r.Delete("/documents/:id", documents.Delete)

	r.Get("/tasks", tasks.List)
	r.Post("/tasks", tasks.Create)
	r.Put("/tasks/:id", tasks.Update)
	r.Delete("/tasks/:id", tasks.Delete)
	r.Post("/tasks/:id/complete", tasks.Complete)
	r.Get("/tasks/:id/completions", tasks.Completions)
}
