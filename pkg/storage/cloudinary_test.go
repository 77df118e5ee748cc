package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v123456789/avatars/sample.webp", "avatars/sample"},
		{"https://res.cloudinary.com/demo/image/upload/avatars/sample.webp", "avatars/sample"},
		{"https://res.cloudinary.com/demo/image/upload/v1/deep/nested/file.png", "deep/nested/file"},
		{"https://example.com/no/upload/segment.png", "segment"},
		{"not a url at all", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractPublicID(tt.url), tt.url)
	}
}
