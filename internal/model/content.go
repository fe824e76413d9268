package model

import "time"

// Blog is a marketing blog article. Content bodies live in the admin system;
// the site API serves listing fields only.
type Blog struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Excerpt    string    `json:"excerpt,omitempty"`
	Author     string    `json:"author"`
	ImageURL   string    `json:"image_url,omitempty"`
	IsFeatured bool      `json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
}

// FAQ is a single question/answer pair grouped by category on the homepage.
type FAQ struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
}

// Testimonial is a customer quote, optionally featured on the homepage.
type Testimonial struct {
	ID         int64  `json:"id"`
	Author     string `json:"author"`
	Quote      string `json:"quote"`
	TrekName   string `json:"trek_name,omitempty"`
	IsFeatured bool   `json:"is_featured"`
}

// HomepageBanner is a rotating hero banner.
type HomepageBanner struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	TargetURL string `json:"target_url,omitempty"`
	IsActive  bool   `json:"is_active"`
	Order     int    `json:"order"`
}

// TeamMember is a staff bio shown on the about page.
type TeamMember struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	PhotoURL string `json:"photo_url,omitempty"`
	Order    int    `json:"order"`
}
