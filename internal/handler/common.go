package handler // handler holds the echo handlers for every public and admin route

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/queue"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/repository"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

// requestTimeout bounds every store call made while serving a request.
const requestTimeout = 5 * time.Second

// LeadPublisher announces stored leads.  Failures never affect the response.
type LeadPublisher interface {
	PublishLead(ctx context.Context, ev queue.LeadSubmittedEvent) error
}

func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// respondError maps validation errors to 400, ErrNotFound to 404 and
// ErrConflict to 409.  Anything else is logged and hidden behind msg.
func respondError(c echo.Context, err error, msg string, fields ...zap.Field) error {
	var ve *validate.Error
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	}
	logger.Get().Error(msg, append(fields, zap.Error(err), zap.String("path", c.Path()))...)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

// publish sends ev in the background so the broker round trip stays off
// the request path.
func publish(p LeadPublisher, ev queue.LeadSubmittedEvent) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := p.PublishLead(ctx, ev); err != nil {
			logger.Get().Warn("publish lead event", zap.String("lead_id", ev.ID), zap.Error(err))
		}
	}()
}

// queryLimit reads ?limit= clamped to [1, max], defaulting to def.
func queryLimit(c echo.Context, def, max int) int {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
