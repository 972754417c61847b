package model

import "time"

// FAQ is one question/answer pair shown on a service page.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Service is a published offering such as a Nexus Letter.  Rows are authored
// elsewhere; this service only reads them.
type Service struct {
	ID               string   `json:"id"`                // services.id
	Slug             string   `json:"slug"`              // services.slug
	Title            string   `json:"title"`             // services.title
	ShortDescription string   `json:"short_description"` // services.short_description
	FullDescription  string   `json:"full_description"`  // services.full_description
	BasePriceUSD     float64  `json:"base_price_usd"`    // services.base_price_usd
	Features         []string `json:"features"`          // services.features (JSON)
	FAQs             []FAQ    `json:"faqs"`              // services.faqs (JSON)
	Category         string   `json:"category"`          // services.category
}

// BlogPost is a published article.
type BlogPost struct {
	ID          string    `json:"id"`           // blog_posts.id
	Slug        string    `json:"slug"`         // blog_posts.slug
	Title       string    `json:"title"`        // blog_posts.title
	Excerpt     string    `json:"excerpt"`      // blog_posts.excerpt
	Content     string    `json:"content"`      // blog_posts.content
	Author      string    `json:"author"`       // blog_posts.author
	PublishedAt time.Time `json:"published_at"` // blog_posts.published_at
}

// CaseStudy is a published client outcome.
type CaseStudy struct {
	ID          string    `json:"id"`           // case_studies.id
	Slug        string    `json:"slug"`         // case_studies.slug
	Title       string    `json:"title"`        // case_studies.title
	Summary     string    `json:"summary"`      // case_studies.summary
	Content     string    `json:"content"`      // case_studies.content
	Outcome     string    `json:"outcome"`      // case_studies.outcome
	PublishedAt time.Time `json:"published_at"` // case_studies.published_at
}
