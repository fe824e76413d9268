// Package content serves the site's listing and page payloads, caching hot
// reads in front of the store.
package content

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/cache"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/model"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/store"
)

// Cache TTLs per payload. Featured treks churn with pinning changes; FAQ and
// team content is near-static.
const (
	featuredTreksTTL = 10 * time.Minute
	blogsTTL         = 30 * time.Minute
	categoriesTTL    = time.Hour
	faqTTL           = time.Hour
	teamTTL          = time.Hour
	bannersTTL       = time.Hour
)

const (
	keyFeaturedTreks  = "featured_treks"
	keyTrekCategories = "trek_categories"
	keyFAQCategories  = "faq_categories"
	keyBanners        = "homepage_banners"
	keyTeamMembers    = "team_members"
	blogsPerPage      = 6
	homeTreksPerPage  = 8
)

// FAQGroup is the homepage FAQ accordion: one category with its ordered
// questions.
type FAQGroup struct {
	Category string      `json:"category"`
	Items    []model.FAQ `json:"items"`
}

// HomePage is the aggregate payload behind the homepage endpoint. The trek
// section is paginated; everything else rides along whole.
type HomePage struct {
	Banners        []model.HomepageBanner `json:"banners"`
	FeaturedTreks  []model.Trek           `json:"featured_treks"`
	TrekPage       int                    `json:"trek_page"`
	TrekTotalPages int                    `json:"trek_total_pages"`
	FeaturedBlogs  []model.Blog           `json:"featured_blogs"`
	Testimonials   []model.Testimonial    `json:"testimonials"`
	FAQGroups      []FAQGroup             `json:"faq_groups"`
}

// BlogPage is one page of the blog listing.
type BlogPage struct {
	Blogs      []model.Blog `json:"blogs"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Total      int          `json:"total"`
}

// Service reads site content through the cache.
type Service struct {
	store store.Store
	cache cache.Cache
}

// NewService creates a content Service.
func NewService(st store.Store, c cache.Cache) *Service {
	return &Service{store: st, cache: c}
}

// FeaturedTreks returns the pinned-first trek listing, cached for 10 minutes.
func (s *Service) FeaturedTreks(ctx context.Context) ([]model.Trek, error) {
	if v, ok := s.cache.Get(keyFeaturedTreks); ok {
		return v.([]model.Trek), nil
	}
	treks, err := s.store.ListFeaturedTreks(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "content: featured treks")
	}
	s.cache.Set(keyFeaturedTreks, treks, featuredTreksTTL)
	return treks, nil
}

// TrekCategories returns the distinct trek categories, cached for an hour.
func (s *Service) TrekCategories(ctx context.Context) ([]string, error) {
	if v, ok := s.cache.Get(keyTrekCategories); ok {
		return v.([]string), nil
	}
	categories, err := s.store.TrekCategories(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "content: trek categories")
	}
	s.cache.Set(keyTrekCategories, categories, categoriesTTL)
	return categories, nil
}

// FAQGroups returns FAQs grouped by category, preserving the store's
// category-then-order sorting.
func (s *Service) FAQGroups(ctx context.Context) ([]FAQGroup, error) {
	if v, ok := s.cache.Get(keyFAQCategories); ok {
		return v.([]FAQGroup), nil
	}
	faqs, err := s.store.ListFAQs(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "content: faqs")
	}
	var groups []FAQGroup
	for _, f := range faqs {
		if len(groups) == 0 || groups[len(groups)-1].Category != f.Category {
			groups = append(groups, FAQGroup{Category: f.Category})
		}
		last := &groups[len(groups)-1]
		last.Items = append(last.Items, f)
	}
	s.cache.Set(keyFAQCategories, groups, faqTTL)
	return groups, nil
}

// Blogs returns one page of the blog listing, newest first. Pages are
// 1-indexed; out-of-range pages clamp to the first page.
func (s *Service) Blogs(ctx context.Context, page int) (*BlogPage, error) {
	if page < 1 {
		page = 1
	}
	key := fmt.Sprintf("blogs_page_%d", page)
	if v, ok := s.cache.Get(key); ok {
		return v.(*BlogPage), nil
	}
	blogs, total, err := s.store.ListBlogs(ctx, blogsPerPage, (page-1)*blogsPerPage)
	if err != nil {
		return nil, eris.Wrap(err, "content: blogs")
	}
	totalPages := (total + blogsPerPage - 1) / blogsPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	result := &BlogPage{Blogs: blogs, Page: page, TotalPages: totalPages, Total: total}
	s.cache.Set(key, result, blogsTTL)
	return result, nil
}

// Banners returns the active homepage banners in display order.
func (s *Service) Banners(ctx context.Context) ([]model.HomepageBanner, error) {
	if v, ok := s.cache.Get(keyBanners); ok {
		return v.([]model.HomepageBanner), nil
	}
	banners, err := s.store.ListBanners(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "content: banners")
	}
	s.cache.Set(keyBanners, banners, bannersTTL)
	return banners, nil
}

// TeamMembers returns the about-page staff bios in display order.
func (s *Service) TeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	if v, ok := s.cache.Get(keyTeamMembers); ok {
		return v.([]model.TeamMember), nil
	}
	members, err := s.store.ListTeamMembers(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "content: team members")
	}
	s.cache.Set(keyTeamMembers, members, teamTTL)
	return members, nil
}

// HomePage assembles the homepage payload from the cached pieces. page
// selects an 8-trek window of the featured listing; out-of-range pages clamp
// to the first.
func (s *Service) HomePage(ctx context.Context, page int) (*HomePage, error) {
	banners, err := s.Banners(ctx)
	if err != nil {
		return nil, err
	}
	treks, err := s.FeaturedTreks(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := (len(treks) + homeTreksPerPage - 1) / homeTreksPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		page = 1
	}
	start := (page - 1) * homeTreksPerPage
	end := start + homeTreksPerPage
	if end > len(treks) {
		end = len(treks)
	}
	treks = treks[start:end]
	blogs, err := s.store.ListFeaturedBlogs(ctx, 3)
	if err != nil {
		return nil, eris.Wrap(err, "content: featured blogs")
	}
	testimonials, err := s.store.ListTestimonials(ctx, true, 6)
	if err != nil {
		return nil, eris.Wrap(err, "content: testimonials")
	}
	groups, err := s.FAQGroups(ctx)
	if err != nil {
		return nil, err
	}
	return &HomePage{
		Banners:        banners,
		FeaturedTreks:  treks,
		TrekPage:       page,
		TrekTotalPages: totalPages,
		FeaturedBlogs:  blogs,
		Testimonials:   testimonials,
		FAQGroups:      groups,
	}, nil
}
