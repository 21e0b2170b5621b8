package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusbot/internal/domain"
	"focusbot/internal/service"
)

func TestVideoService_Embed(t *testing.T) {
	embed, err := service.NewVideoService().Embed("  https://youtu.be/dQw4w9WgXcQ ")

	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", embed.VideoID)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0", embed.EmbedURL)
	assert.Contains(t, embed.EmbedHTML, "<iframe")
}

func TestVideoService_Embed_Invalid(t *testing.T) {
	_, err := service.NewVideoService().Embed("https://example.com")
	assert.ErrorIs(t, err, domain.ErrInvalidVideoURL)
}
