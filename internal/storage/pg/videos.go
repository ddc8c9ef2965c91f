package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/jackc/pgx/v5"
)

const videoColumns = `id, title, thumbnail_url, video_url, duration, published_at, language, category, author, description`

func scanVideo(row pgx.Row) (domain.Video, error) {
	var v domain.Video
	var lang string
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.ThumbnailURL,
		&v.VideoURL,
		&v.Duration,
		&v.PublishedAt,
		&lang,
		&v.Category,
		&v.Author,
		&v.Description,
	)
	v.Language = domain.Language(lang)
	return v, err
}

func (s *Storer) CreateVideo(ctx context.Context, video domain.Video) (*domain.Video, error) {
	if video.PublishedAt.IsZero() {
		video.PublishedAt = time.Now()
	}

	cmd := `
		INSERT INTO videos (title, thumbnail_url, video_url, duration, published_at, language, category, author, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + videoColumns

	created, err := scanVideo(s.db.QueryRow(ctx, cmd,
		video.Title,
		video.ThumbnailURL,
		video.VideoURL,
		video.Duration,
		video.PublishedAt,
		string(video.Language),
		video.Category,
		video.Author,
		video.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert video: %w", err)
	}
	return &created, nil
}

func (s *Storer) GetVideo(ctx context.Context, id int64) (*domain.Video, error) {
	v, err := scanVideo(s.db.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "video %d", id)
	}
	return &v, nil
}

func (s *Storer) ListVideos(ctx context.Context, filter domain.VideoFilter) ([]domain.Video, error) {
	q := `
		SELECT ` + videoColumns + `
		FROM videos
		WHERE ($1 = '' OR language = $1)
		  AND ($2 = '' OR category = $2)
		ORDER BY published_at DESC, id DESC
	`
	rows, err := s.db.Query(ctx, q, string(filter.Language), filter.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	videos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Video, error) {
		return scanVideo(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan videos: %w", err)
	}
	return videos, nil
}

func (s *Storer) UpdateVideo(ctx context.Context, id int64, patch domain.VideoPatch) (*domain.Video, error) {
	cmd := `
		UPDATE videos SET
			title         = COALESCE($2, title),
			thumbnail_url = COALESCE($3, thumbnail_url),
			video_url     = COALESCE($4, video_url),
			duration      = COALESCE($5, duration),
			published_at  = COALESCE($6, published_at),
			language      = COALESCE($7, language),
			category      = COALESCE($8, category),
			author        = COALESCE($9, author),
			description   = COALESCE($10, description)
		WHERE id = $1
		RETURNING ` + videoColumns

	v, err := scanVideo(s.db.QueryRow(ctx, cmd,
		id,
		patch.Title,
		patch.ThumbnailURL,
		patch.VideoURL,
		patch.Duration,
		patch.PublishedAt,
		langPtr(patch.Language),
		patch.Category,
		patch.Author,
		patch.Description,
	))
	if err != nil {
		return nil, notFound(err, "update video %d", id)
	}
	return &v, nil
}

func (s *Storer) DeleteVideo(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete video %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
