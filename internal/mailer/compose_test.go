package mailer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T) *Mailer {
	t.Helper()
	renderer, err := NewRenderer()
	require.NoError(t, err)
	return New(renderer, nil)
}

func TestCompose_TrekkerDetectsBeach(t *testing.T) {
	m := newTestMailer(t)

	email, err := m.Compose(Submission{
		Name:     "Asha",
		Email:    "asha@example.com",
		UserType: "trekker",
		Message:  "looking for a beach trip",
	})
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", email.To)
	assert.Equal(t, "Beach Treks – Aorbo Treks", email.Subject)
	assert.Contains(t, email.HTMLBody, "https://www.aorbotreks.com/travel-your-way/?tag=beach")
	assert.Contains(t, email.HTMLBody, "Beach")
	assert.Contains(t, email.HTMLBody, "Asha")
	assert.Contains(t, email.PlainBody, "Thank you for contacting Aorbo Treks")
}

func TestCompose_TrekkerExplicitCategoryOverridesMessage(t *testing.T) {
	m := newTestMailer(t)

	email, err := m.Compose(Submission{
		Name:         "Asha",
		Email:        "asha@example.com",
		UserType:     "trekker",
		Message:      "looking for a beach trip",
		TrekCategory: "spiritual",
	})
	require.NoError(t, err)

	assert.Equal(t, "Spiritual Treks – Aorbo Treks", email.Subject)
	assert.Contains(t, email.HTMLBody, "?tag=spiritual")
}

func TestCompose_TrekkerNoCategory(t *testing.T) {
	m := newTestMailer(t)

	email, err := m.Compose(Submission{
		Name:     "Ravi",
		Email:    "ravi@example.com",
		UserType: "trekker",
		Message:  "hello there",
	})
	require.NoError(t, err)

	assert.Equal(t, "Explore Treks – Aorbo Treks", email.Subject)
	assert.Contains(t, email.HTMLBody, "Our Featured")
	assert.Contains(t, email.HTMLBody, "https://www.aorbotreks.com/treks")
}

func TestCompose_TrekkerUnmappedCategoryFallsBackToTreksLink(t *testing.T) {
	m := newTestMailer(t)

	email, err := m.Compose(Submission{
		Name:         "Ravi",
		Email:        "ravi@example.com",
		UserType:     "trekker",
		Message:      "hello",
		TrekCategory: "volcano",
	})
	require.NoError(t, err)

	assert.Equal(t, "Volcano Treks – Aorbo Treks", email.Subject)
	assert.Contains(t, email.HTMLBody, "https://www.aorbotreks.com/treks")
}

func TestCompose_Organizer(t *testing.T) {
	m := newTestMailer(t)

	email, err := m.Compose(Submission{
		Name:     "Priya",
		Email:    "priya@example.com",
		UserType: "organizer",
		Message:  "we run camping trips", // category must not change the organizer flow
	})
	require.NoError(t, err)

	assert.Equal(t, "Partnership Request – Aorbo Treks", email.Subject)
	assert.Contains(t, email.HTMLBody, "https://partner.aorbotreks.com")
	assert.Contains(t, email.HTMLBody, "partnering")
}

func TestCompose_UnknownUserTypeGetsDefault(t *testing.T) {
	m := newTestMailer(t)

	email, err := m.Compose(Submission{
		Name:     "Sam",
		Email:    "sam@example.com",
		UserType: "press",
		Message:  "interview request",
	})
	require.NoError(t, err)

	assert.Equal(t, "We've Received Your Query – Aorbo Treks", email.Subject)
	assert.Contains(t, email.HTMLBody, "https://www.aorbotreks.com")
}

func TestCompose_IncludesCurrentYear(t *testing.T) {
	m := newTestMailer(t)

	email, err := m.Compose(Submission{
		Name:     "Sam",
		Email:    "sam@example.com",
		UserType: "trekker",
		Message:  "weekend getaway",
	})
	require.NoError(t, err)

	assert.Contains(t, email.HTMLBody, fmt.Sprintf("%d Aorbo Treks", time.Now().Year()))
}
