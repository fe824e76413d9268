// Package web exposes the public HTTP surface: search, suggestions, contact
// submission and the content listing API.
package web

import (
	"fmt"
	"net/url"
)

// Links builds site-relative paths for search results and suggestions.
type Links struct{}

// TrekDetailPath returns the detail-page path for a trek.
func (Links) TrekDetailPath(id int64) string {
	return fmt.Sprintf("/treks/%d", id)
}

// SearchPath returns the full-search path for a raw query.
func (Links) SearchPath(query string) string {
	return "/search?q=" + url.QueryEscape(query)
}
