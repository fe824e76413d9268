// Package store persists site content and contact submissions behind a
// driver-agnostic interface with SQLite and Postgres implementations.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/model"
)

// TrekFilter narrows trek listings.
type TrekFilter struct {
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for the site backend.
type Store interface {
	// Treks
	TreksByNamePrefix(ctx context.Context, prefix string, limit int) ([]model.TrekCandidate, error)
	TreksBySearchTerm(ctx context.Context, term string, limit int) ([]model.TrekCandidate, error)
	GetTrek(ctx context.Context, id int64) (*model.Trek, error)
	ListFeaturedTreks(ctx context.Context) ([]model.Trek, error)
	ListTreks(ctx context.Context, filter TrekFilter) ([]model.Trek, int, error)
	ListTreksByTag(ctx context.Context, tag string) ([]model.Trek, error)
	TrekCategories(ctx context.Context) ([]string, error)
	RelatedTreks(ctx context.Context, trekID int64, limit int) ([]model.Trek, error)
	UpsertTrek(ctx context.Context, t *model.Trek) error

	// Contacts
	CreateContact(ctx context.Context, c *model.Contact) error
	ListContacts(ctx context.Context, limit, offset int) ([]model.Contact, error)

	// Content
	ListFAQs(ctx context.Context) ([]model.FAQ, error)
	ListBlogs(ctx context.Context, limit, offset int) ([]model.Blog, int, error)
	ListFeaturedBlogs(ctx context.Context, limit int) ([]model.Blog, error)
	ListTestimonials(ctx context.Context, featuredOnly bool, limit int) ([]model.Testimonial, error)
	ListBanners(ctx context.Context) ([]model.HomepageBanner, error)
	ListTeamMembers(ctx context.Context) ([]model.TeamMember, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// New creates a Store for the configured driver.
func New(ctx context.Context, driver, databaseURL string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(databaseURL)
	case "postgres":
		return NewPostgres(ctx, databaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
