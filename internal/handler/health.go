package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness check.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Robots serves robots.txt pointing crawlers at the sitemap and away from
// the admin and function routes.
func Robots(siteURL string) echo.HandlerFunc {
	body := "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /v1/admin/\n" +
		"Disallow: /functions/\n" +
		"\n" +
		"Sitemap: " + siteURL + "/sitemap.xml\n"
	return func(c echo.Context) error {
		return c.String(http.StatusOK, body)
	}
}
