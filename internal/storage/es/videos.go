package es

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

func (e *Storer) CreateVideo(ctx context.Context, video domain.Video) (*domain.Video, error) {
	id, err := e.nextID(ctx, "videos")
	if err != nil {
		return nil, err
	}

	video.ID = id
	if video.PublishedAt.IsZero() {
		video.PublishedAt = time.Now()
	}

	if err := e.put(ctx, e.indices.videos, docID(id), toVideoDocument(video)); err != nil {
		return nil, err
	}
	return &video, nil
}

func (e *Storer) GetVideo(ctx context.Context, id int64) (*domain.Video, error) {
	var doc videoDocument
	found, err := e.get(ctx, e.indices.videos, docID(id), &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("video %d: %w", id, storage.ErrNotFound)
	}
	v := doc.toDomain()
	return &v, nil
}

func (e *Storer) ListVideos(ctx context.Context, filter domain.VideoFilter) ([]domain.Video, error) {
	var filters []types.Query
	if filter.Language != "" {
		filters = append(filters, termQuery("language", string(filter.Language)))
	}
	if filter.Category != "" {
		filters = append(filters, termQuery("category", filter.Category))
	}

	hits, err := e.search(ctx, e.indices.videos, filterQuery(filters...), allHits, desc("published_at"), desc("id"))
	if err != nil {
		return nil, err
	}

	docs, err := decodeHits[videoDocument](hits)
	if err != nil {
		return nil, err
	}
	videos := make([]domain.Video, 0, len(docs))
	for _, d := range docs {
		videos = append(videos, d.toDomain())
	}
	return videos, nil
}

func (e *Storer) UpdateVideo(ctx context.Context, id int64, patch domain.VideoPatch) (*domain.Video, error) {
	var updated domain.Video
	err := e.compareAndSwap(ctx, e.indices.videos, docID(id), func(source json.RawMessage) (any, error) {
		var doc videoDocument
		if err := json.Unmarshal(source, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal video %d: %w", id, err)
		}
		updated = doc.toDomain().Apply(patch)
		return toVideoDocument(updated), nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *Storer) DeleteVideo(ctx context.Context, id int64) (bool, error) {
	return e.remove(ctx, e.indices.videos, docID(id))
}
