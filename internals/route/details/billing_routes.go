// file: internals/route/details/billing_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingController "hoaportal_backend/internals/features/billing/controller"
	"hoaportal_backend/internals/helpers/mailer"
)

// MemberBillingRoutes mounts the self-service billing views under /api/u.
func MemberBillingRoutes(r fiber.Router, db *gorm.DB) {
	my := billingController.NewMyBillingController(db)
	gateway := billingController.NewGatewayController(db)

	r.Get("/invoices", my.MyInvoices)
	r.Get("/payments", my.MyPayments)
	r.Get("/credits", my.MyCredits)
	r.Get("/statement", my.MyStatement)
	r.Post("/invoices/:id/checkout", gateway.Checkout)
}

// AdminBillingRoutes mounts the ledger-mutating surface under /api/a.
func AdminBillingRoutes(r fiber.Router, db *gorm.DB, mail mailer.Mailer) {
	invoices := billingController.NewInvoiceController(db, mail)
	payments := billingController.NewPaymentController(db, mail)
	credits := billingController.NewCreditController(db)
	gateway := billingController.NewGatewayController(db)

	r.Get("/invoices", invoices.List)
	r.Post("/invoices", invoices.Create)
	r.Get("/invoices/:id", invoices.GetByID)
	r.Post("/invoices/:id/void", invoices.Void)
	r.Post("/invoices/:id/apply-credits", invoices.ApplyCredits)
	r.Post("/members/:user_id/late-fee", invoices.ApplyLateFee)

	r.Get("/payments", payments.List)
	r.Post("/payments", payments.Record)
	r.Post("/payments/:id/void", payments.Void)

	r.Get("/credits", credits.List)
	r.Post("/credits", credits.Grant)
	r.Get("/credits/:id/applications", credits.Applications)

	r.Get("/gateway-events", gateway.Events)
}

// PublicRoutes carries the unauthenticated surface: the payment gateway
// webhook. Midtrans authenticates itself via the signature key.
func PublicRoutes(r fiber.Router, db *gorm.DB) {
	gateway := billingController.NewGatewayController(db)
	r.Post("/payments/notification", gateway.Notification)
	r.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}
