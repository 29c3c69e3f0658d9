package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocator_ObjectKey(t *testing.T) {
	loc := newLocator("https://cdn.rkhub.test", "https://s3.rkhub.test", "media")

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "public domain", url: "https://cdn.rkhub.test/gallery/a.png", expected: "gallery/a.png"},
		{name: "api endpoint", url: "https://s3.rkhub.test/media/gallery/b.jpg", expected: "gallery/b.jpg"},
		{name: "foreign url", url: "https://images.example.com/c.jpg", expected: ""},
		{name: "bare prefix", url: "https://cdn.rkhub.test/", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, loc.objectKey(tt.url))
		})
	}
}

func TestLocator_URL(t *testing.T) {
	loc := newLocator("https://cdn.rkhub.test/", "", "")

	assert.Equal(t, "https://cdn.rkhub.test/gallery/a.png", loc.url("gallery/a.png"))
	assert.Equal(t, "", loc.objectKey("https://s3.rkhub.test/media/gallery/a.png"))
}

func TestLocator_RoundTrip(t *testing.T) {
	loc := newLocator("https://cdn.rkhub.test", "https://s3.rkhub.test/", "media")

	assert.Equal(t, "gallery/thumbnails/x.jpg", loc.objectKey(loc.url("gallery/thumbnails/x.jpg")))
}
