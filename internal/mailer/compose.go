package mailer

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/classify"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/model"
)

const (
	homeLink    = "https://www.aorbotreks.com"
	treksLink   = "https://www.aorbotreks.com/treks"
	partnerLink = "https://partner.aorbotreks.com"
)

// trekLinks maps a detected category to its curated explore page.
var trekLinks = map[classify.Category]string{
	classify.Adventure: "https://www.aorbotreks.com/travel-your-way/?tag=adventure",
	classify.Camping:   "https://www.aorbotreks.com/travel-your-way/?tag=camping",
	classify.Nature:    "https://www.aorbotreks.com/travel-your-way/?tag=nature",
	classify.Beach:     "https://www.aorbotreks.com/travel-your-way/?tag=beach",
	classify.Spiritual: "https://www.aorbotreks.com/travel-your-way/?tag=spiritual",
	classify.Weekend:   "https://www.aorbotreks.com/travel-your-way/?tag=weekend",
}

// Submission is the contact-form input the email pipeline reads. TrekCategory,
// when set, overrides keyword detection on the message.
type Submission struct {
	Name         string
	Email        string
	Mobile       string
	UserType     string
	Message      string
	TrekCategory string
}

// Email is a fully composed message ready for transport.
type Email struct {
	To        string
	Subject   string
	PlainBody string
	HTMLBody  string
}

var titleCaser = cases.Title(language.English)

// Compose builds the acknowledgement email for a submission. Rendering errors
// are returned synchronously so the caller can surface them; delivery happens
// later via the dispatcher.
func (m *Mailer) Compose(sub Submission) (*Email, error) {
	category, detected := classify.Category(sub.TrekCategory), sub.TrekCategory != ""
	if !detected {
		category, detected = classify.Detect(sub.Message)
	}

	data := TemplateData{
		Name:          sub.Name,
		Email:         sub.Email,
		Message:       sub.Message,
		CategoryLabel: "Our Featured",
		Link:          homeLink,
		Year:          time.Now().Year(),
	}
	if detected {
		data.Category = string(category)
		data.CategoryLabel = titleCaser.String(string(category))
	}

	var templateName, subject string
	switch sub.UserType {
	case model.UserTypeTrekker:
		templateName = "trekker.html"
		if detected {
			subject = data.CategoryLabel + " Treks – Aorbo Treks"
			if link, ok := trekLinks[category]; ok {
				data.Link = link
			} else {
				data.Link = treksLink
			}
		} else {
			subject = "Explore Treks – Aorbo Treks"
			data.Link = treksLink
		}
	case model.UserTypeOrganizer:
		templateName = "organizer.html"
		subject = "Partnership Request – Aorbo Treks"
		data.Link = partnerLink
	default:
		templateName = "default.html"
		subject = "We've Received Your Query – Aorbo Treks"
		data.Link = homeLink
	}

	html, err := m.renderer.Render(templateName, data)
	if err != nil {
		return nil, err
	}
	return &Email{
		To:        sub.Email,
		Subject:   subject,
		PlainBody: "Hi " + sub.Name + ",\n\nThank you for contacting Aorbo Treks. Our team will get back to you shortly.\n\n" + data.Link + "\n",
		HTMLBody:  html,
	}, nil
}
