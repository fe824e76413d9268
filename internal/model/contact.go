package model

import "time"

// Contact user types recognized by the email pipeline. Anything else falls
// through to the generic acknowledgement flow.
const (
	UserTypeTrekker   = "trekker"
	UserTypeOrganizer = "organizer"
)

// Contact is a stored contact-form submission.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	UserType  string    `json:"user_type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
