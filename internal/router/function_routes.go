package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/handler"
)

// functionCORS lets the static site call the functions from any origin.
// Preflight requests are answered by the middleware before the handler.
var functionCORS = echomw.CORSWithConfig(echomw.CORSConfig{
	AllowOrigins: []string{"*"},
	AllowMethods: []string{http.MethodPost, http.MethodOptions},
	AllowHeaders: []string{"authorization", "x-client-info", "apikey", echo.HeaderContentType},
})

// RegisterFunctions registers the endpoints the browser and Stripe call
// directly under /functions.  The webhook is authenticated by its signature
// and is kept out of the limiter so retries from Stripe are never dropped.
func RegisterFunctions(e *echo.Echo, co *handler.CheckoutHandler, notify *handler.NotifyHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/functions", functionCORS)
	browser := []string{http.MethodPost, http.MethodOptions}
	g.Match(browser, "/create-checkout-session", co.CreateSession, limit)
	g.Match(browser, "/send-answer-notification", notify.SendAnswerNotification, limit)
	g.POST("/stripe-webhook", co.Webhook)
}
