// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	constants "hoaportal_backend/internals/constants"
	"hoaportal_backend/internals/helpers/mailer"
	authMiddleware "hoaportal_backend/internals/middlewares/auth"
	routeDetails "hoaportal_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()
	mail := mailer.NewFromEnv()

	BaseRoutes(app)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	routeDetails.PublicRoutes(public, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AUTH group...")
	auth := app.Group("/api/auth")
	routeDetails.AuthRoutes(auth, db)

	// ===================== MEMBER (/api/u) =====================
	log.Println("[INFO] Setting up MEMBER group...")
	member := app.Group("/api/u", authMiddleware.AuthMiddleware())
	routeDetails.MemberBillingRoutes(member, db)
	routeDetails.MemberPortalRoutes(member, db)

	// ===================== ADMIN (/api/a) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles("admin or manager role required", constants.AdminAndAbove...),
	)
	routeDetails.AdminBillingRoutes(admin, db, mail)
	routeDetails.AdminPortalRoutes(admin, db)
	routeDetails.AdminUserRoutes(admin, db)
}
