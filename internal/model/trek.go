package model

import "time"

// Difficulty levels for a trek listing.
const (
	DifficultyEasy     = "easy"
	DifficultyModerate = "moderate"
	DifficultyHard     = "hard"
)

// Trek is a trek listing card shown on the site and considered during search.
type Trek struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	State       string    `json:"state"`
	Difficulty  string    `json:"difficulty,omitempty"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Activities  []string  `json:"activities,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsPinned    bool      `json:"is_pinned"`
	PinPriority int       `json:"pin_priority"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrekCandidate is the read-only projection of a trek used by search scoring.
type TrekCandidate struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// Candidate returns the search projection of the trek.
func (t *Trek) Candidate() TrekCandidate {
	return TrekCandidate{ID: t.ID, Name: t.Name, State: t.State}
}
