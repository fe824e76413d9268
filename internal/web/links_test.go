package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinks_TrekDetailPath(t *testing.T) {
	assert.Equal(t, "/treks/42", Links{}.TrekDetailPath(42))
}

func TestLinks_SearchPathEscapesQuery(t *testing.T) {
	assert.Equal(t, "/search?q=Shimla+Valley", Links{}.SearchPath("Shimla Valley"))
	assert.Equal(t, "/search?q=best+%26+top", Links{}.SearchPath("best & top"))
}
