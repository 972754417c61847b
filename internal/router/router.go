package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/handler"
)

// RegisterRoutes registers the health and crawler endpoints.  When
// redirectWWW is set, bare-host requests are sent to the www origin first.
func RegisterRoutes(e *echo.Echo, siteURL string, redirectWWW bool) {
	if redirectWWW {
		e.Pre(echomw.WWWRedirect())
	}
	e.GET("/healthz", handler.Health)
	e.GET("/robots.txt", handler.Robots(siteURL))
}

// RegisterIntake registers the lead-capture endpoints.  Every route shares
// the limiter; uploads additionally get a body cap sized for a full batch.
func RegisterIntake(e *echo.Echo, contacts *handler.ContactHandler, subs *handler.SubmissionHandler,
	uploads *handler.UploadHandler, limit echo.MiddlewareFunc, uploadBodyLimit string) {
	g := e.Group("/v1", limit)
	g.POST("/contacts", contacts.Create)
	g.POST("/form-submissions", subs.Create)
	g.POST("/uploads", uploads.Create, echomw.BodyLimit(uploadBodyLimit))
}

// RegisterPublic registers the read-only content and pricing endpoints.
// Responses go through the shared cache.
func RegisterPublic(e *echo.Echo, content *handler.ContentHandler, co *handler.CheckoutHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	g.GET("/services", content.ListServices)
	g.GET("/services/:slug", content.GetService)
	g.GET("/blog", content.ListBlogPosts)
	g.GET("/blog/:slug", content.GetBlogPost)
	g.GET("/case-studies", content.ListCaseStudies)
	g.GET("/case-studies/:slug", content.GetCaseStudy)
	g.GET("/pricing", co.Prices)
	g.GET("/pricing/:serviceType", co.Quote)
}
