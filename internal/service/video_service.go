package service

import (
	"strings"

	"focusbot/internal/domain"
	"focusbot/internal/video"
)

// VideoService defines the video embed contract.
type VideoService interface {
	Embed(url string) (*domain.VideoEmbed, error)
}

type videoService struct{}

// NewVideoService creates a new VideoService implementation.
func NewVideoService() VideoService {
	return &videoService{}
}

func (s *videoService) Embed(url string) (*domain.VideoEmbed, error) {
	id, ok := video.ExtractID(strings.TrimSpace(url))
	if !ok {
		return nil, domain.ErrInvalidVideoURL
	}
	return &domain.VideoEmbed{
		VideoID:   id,
		EmbedURL:  video.EmbedURL(id),
		EmbedHTML: video.EmbedHTML(id),
	}, nil
}
