package storage

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

type ArticleStore interface {
	CreateArticle(ctx context.Context, article domain.Article) (*domain.Article, error)
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	// ListArticles returns matching articles, most recently published first.
	ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	UpdateArticle(ctx context.Context, id int64, patch domain.ArticlePatch) (*domain.Article, error)
	DeleteArticle(ctx context.Context, id int64) (bool, error)
	// IncrementArticleViews adds exactly one view; ErrNotFound when the article is missing.
	IncrementArticleViews(ctx context.Context, id int64) error
	MostViewedArticles(ctx context.Context, lang domain.Language, limit int) ([]domain.Article, error)
	CategoryCounts(ctx context.Context, lang domain.Language) (map[string]int64, error)
}

type PollStore interface {
	// CreatePoll stores the poll with a zero tally for every option.
	CreatePoll(ctx context.Context, poll domain.Poll) (*domain.Poll, error)
	GetPoll(ctx context.Context, id int64) (*domain.Poll, error)
	ListPolls(ctx context.Context, filter domain.PollFilter) ([]domain.Poll, error)
	UpdatePoll(ctx context.Context, id int64, patch domain.PollPatch) (*domain.Poll, error)
	DeletePoll(ctx context.Context, id int64) (bool, error)
	// VotePoll atomically adds one vote to option. It returns ErrNotFound when
	// the poll is missing or option is not one of its options.
	VotePoll(ctx context.Context, id int64, option string) (*domain.Poll, error)
}

type VideoStore interface {
	CreateVideo(ctx context.Context, video domain.Video) (*domain.Video, error)
	GetVideo(ctx context.Context, id int64) (*domain.Video, error)
	ListVideos(ctx context.Context, filter domain.VideoFilter) ([]domain.Video, error)
	UpdateVideo(ctx context.Context, id int64, patch domain.VideoPatch) (*domain.Video, error)
	DeleteVideo(ctx context.Context, id int64) (bool, error)
}

type UserStore interface {
	// CreateUser returns ErrConflict when the username is taken.
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

type CategoryStore interface {
	// CreateCategory returns ErrConflict when the name is taken in that language.
	CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	ListCategories(ctx context.Context, lang domain.Language) ([]domain.Category, error)
	// DeleteCategory removes the category together with its subcategories.
	DeleteCategory(ctx context.Context, id int64) (bool, error)
	// CreateSubcategory returns ErrNotFound when the parent category is missing.
	CreateSubcategory(ctx context.Context, sub domain.Subcategory) (*domain.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id int64) (bool, error)
}

type Store interface {
	ArticleStore
	PollStore
	VideoStore
	UserStore
	CategoryStore

	Healthy(ctx context.Context) bool
	Close() error
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

var SupportedTypes = []Type{InMem, PG, ES}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
