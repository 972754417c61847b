package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
)

// ContentStore reads published marketing content.
type ContentStore interface {
	ListServices(ctx context.Context) ([]*model.Service, error)
	GetService(ctx context.Context, slug string) (*model.Service, error)
	ListBlogPosts(ctx context.Context, limit int) ([]*model.BlogPost, error)
	GetBlogPost(ctx context.Context, slug string) (*model.BlogPost, error)
	ListCaseStudies(ctx context.Context, limit int) ([]*model.CaseStudy, error)
	GetCaseStudy(ctx context.Context, slug string) (*model.CaseStudy, error)
}

// ContentHandler serves the read-only public pages' data.
type ContentHandler struct{ Store ContentStore }

func NewContentHandler(store ContentStore) *ContentHandler { return &ContentHandler{Store: store} }

func (h *ContentHandler) ListServices(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	rows, err := h.Store.ListServices(ctx)
	if err != nil {
		return respondError(c, err, "Failed to load services")
	}
	if rows == nil {
		rows = []*model.Service{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ContentHandler) GetService(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	s, err := h.Store.GetService(ctx, c.Param("slug"))
	if err != nil {
		return respondError(c, err, "Failed to load service")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *ContentHandler) ListBlogPosts(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	rows, err := h.Store.ListBlogPosts(ctx, queryLimit(c, 20, 100))
	if err != nil {
		return respondError(c, err, "Failed to load blog posts")
	}
	if rows == nil {
		rows = []*model.BlogPost{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ContentHandler) GetBlogPost(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Store.GetBlogPost(ctx, c.Param("slug"))
	if err != nil {
		return respondError(c, err, "Failed to load blog post")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ContentHandler) ListCaseStudies(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	rows, err := h.Store.ListCaseStudies(ctx, queryLimit(c, 20, 100))
	if err != nil {
		return respondError(c, err, "Failed to load case studies")
	}
	if rows == nil {
		rows = []*model.CaseStudy{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ContentHandler) GetCaseStudy(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	cs, err := h.Store.GetCaseStudy(ctx, c.Param("slug"))
	if err != nil {
		return respondError(c, err, "Failed to load case study")
	}
	return c.JSON(http.StatusOK, cs)
}
