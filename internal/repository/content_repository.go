package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/database"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
)

// ContentRepo reads the published marketing content: services, blog posts
// and case studies.  Unpublished rows are never returned.
type ContentRepo struct{ db *database.DB }

func NewContentRepo(db *database.DB) *ContentRepo { return &ContentRepo{db: db} }

const serviceColumns = `id, slug, title, short_description, full_description, base_price_usd, features, faqs, category`

// ListServices returns published services ordered by title.
func (r *ContentRepo) ListServices(ctx context.Context) ([]*model.Service, error) {
	q := `SELECT ` + serviceColumns + ` FROM services WHERE is_published = TRUE ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetService returns ErrNotFound for unknown or unpublished slugs.
func (r *ContentRepo) GetService(ctx context.Context, slug string) (*model.Service, error) {
	q := r.db.Rebind(`SELECT ` + serviceColumns + ` FROM services WHERE slug = ? AND is_published = TRUE`)
	s, err := scanService(r.db.QueryRowContext(ctx, q, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

func scanService(row rowScanner) (*model.Service, error) {
	var (
		s              model.Service
		features, faqs []byte
		short, full    sql.NullString
		category       sql.NullString
	)
	if err := row.Scan(&s.ID, &s.Slug, &s.Title, &short, &full, &s.BasePriceUSD, &features, &faqs, &category); err != nil {
		return nil, err
	}
	s.ShortDescription, s.FullDescription, s.Category = short.String, full.String, category.String
	if len(features) > 0 {
		if err := json.Unmarshal(features, &s.Features); err != nil {
			return nil, err
		}
	}
	if len(faqs) > 0 {
		if err := json.Unmarshal(faqs, &s.FAQs); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

const blogColumns = `id, slug, title, excerpt, content, author, published_at`

// ListBlogPosts returns published posts, newest first.
func (r *ContentRepo) ListBlogPosts(ctx context.Context, limit int) ([]*model.BlogPost, error) {
	q := r.db.Rebind(`SELECT ` + blogColumns + ` FROM blog_posts WHERE is_published = TRUE ORDER BY published_at DESC LIMIT ?`)
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.BlogPost
	for rows.Next() {
		p := new(model.BlogPost)
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.Author, &p.PublishedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetBlogPost returns ErrNotFound for unknown or unpublished slugs.
func (r *ContentRepo) GetBlogPost(ctx context.Context, slug string) (*model.BlogPost, error) {
	q := r.db.Rebind(`SELECT ` + blogColumns + ` FROM blog_posts WHERE slug = ? AND is_published = TRUE`)
	var p model.BlogPost
	err := r.db.QueryRowContext(ctx, q, slug).Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.Author, &p.PublishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const caseStudyColumns = `id, slug, title, summary, content, outcome, published_at`

// ListCaseStudies returns published case studies, newest first.
func (r *ContentRepo) ListCaseStudies(ctx context.Context, limit int) ([]*model.CaseStudy, error) {
	q := r.db.Rebind(`SELECT ` + caseStudyColumns + ` FROM case_studies WHERE is_published = TRUE ORDER BY published_at DESC LIMIT ?`)
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.CaseStudy
	for rows.Next() {
		c := new(model.CaseStudy)
		if err := rows.Scan(&c.ID, &c.Slug, &c.Title, &c.Summary, &c.Content, &c.Outcome, &c.PublishedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCaseStudy returns ErrNotFound for unknown or unpublished slugs.
func (r *ContentRepo) GetCaseStudy(ctx context.Context, slug string) (*model.CaseStudy, error) {
	q := r.db.Rebind(`SELECT ` + caseStudyColumns + ` FROM case_studies WHERE slug = ? AND is_published = TRUE`)
	var c model.CaseStudy
	err := r.db.QueryRowContext(ctx, q, slug).Scan(&c.ID, &c.Slug, &c.Title, &c.Summary, &c.Content, &c.Outcome, &c.PublishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
