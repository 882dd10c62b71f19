package docset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLink(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"/basics.html", "/basics.html"},
		{"/basics", "/basics.html"},
		{"/basics.md", "/basics.html"},
		{"basics.md", "/basics.html"},
		{"/basics.html#setup", "/basics.html"},
		{"/basics?x=1", "/basics.html"},
		{"/api/", "/api/"},
		{"/api/README.md", "/api/"},
		{"/api/index.html", "/api/"},
		{"/api/readme", "/api/"},
		{"/README.md", "/"},
		{"/", "/"},
		{"/a/../b.md", "/b.html"},
		{"/files/manual.pdf", "/files/manual.pdf"},
		{"#top", ""},
		{"", ""},
		{"  /concept  ", "/concept.html"},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLink(tt.link))
		})
	}
}

func TestRouteForFile(t *testing.T) {
	assert.Equal(t, "/", RouteForFile("README.md"))
	assert.Equal(t, "/", RouteForFile("index.md"))
	assert.Equal(t, "/basics.html", RouteForFile("basics.md"))
	assert.Equal(t, "/api/", RouteForFile("api/README.md"))
	assert.Equal(t, "/api/errors.html", RouteForFile("api/errors.md"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Getting Started", "getting-started"},
		{"Café au lait", "cafe-au-lait"},
		{"  API: Errors & Codes  ", "api-errors-codes"},
		{"2. Installation", "_2-installation"},
		{"snake_case name", "snake_case-name"},
		{"Основы", "основы"},
		{"???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.text))
		})
	}
}
