package router

import (
	"github.com/labstack/echo/v4"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/handler"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/middleware"
)

// AdminRole is the only role allowed on the dashboard routes.
const AdminRole = "ADMIN"

// RegisterAdmin registers the staff login and the dashboard endpoints.
// Everything except login requires a valid JWT carrying AdminRole.
func RegisterAdmin(e *echo.Echo, auth *handler.AuthHandler, subs *handler.SubmissionHandler,
	contacts *handler.ContactHandler, uploads *handler.UploadHandler, payments *handler.PaymentHandler,
	jwtSecret string, limit echo.MiddlewareFunc) {
	e.POST("/v1/admin/login", auth.Login, limit)

	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(AdminRole),
	)

	// ---- Leads ----
	g.GET("/submissions", subs.List)
	g.GET("/submissions/:id", subs.Get)
	g.GET("/contacts", contacts.List)

	// ---- Documents ----
	g.GET("/uploads", uploads.List)
	g.DELETE("/uploads/:id", uploads.Delete)

	// ---- Payments ----
	g.GET("/payments/:sessionId", payments.Get)
}
