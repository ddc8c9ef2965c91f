package in_mem

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
)

func (s *InMemStorer) CreateVideo(ctx context.Context, video domain.Video) (*domain.Video, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	video.ID = s.nextID("videos")
	if video.PublishedAt.IsZero() {
		video.PublishedAt = s.now()
	}
	s.videos[video.ID] = video
	return &video, nil
}

func (s *InMemStorer) GetVideo(ctx context.Context, id int64) (*domain.Video, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	video, ok := s.videos[id]
	if !ok {
		return nil, fmt.Errorf("video %d: %w", id, storage.ErrNotFound)
	}
	return &video, nil
}

func (s *InMemStorer) ListVideos(ctx context.Context, filter domain.VideoFilter) ([]domain.Video, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	videos := make([]domain.Video, 0, len(s.videos))
	for _, v := range s.videos {
		if filter.Match(v) {
			videos = append(videos, v)
		}
	}
	storage.SortVideosByRecency(videos)
	return videos, nil
}

func (s *InMemStorer) UpdateVideo(ctx context.Context, id int64, patch domain.VideoPatch) (*domain.Video, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	video, ok := s.videos[id]
	if !ok {
		return nil, fmt.Errorf("video %d: %w", id, storage.ErrNotFound)
	}
	video = video.Apply(patch)
	s.videos[id] = video
	return &video, nil
}

func (s *InMemStorer) DeleteVideo(ctx context.Context, id int64) (bool, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if _, ok := s.videos[id]; !ok {
		return false, nil
	}
	delete(s.videos, id)
	return true, nil
}
