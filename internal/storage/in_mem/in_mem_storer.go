package in_mem

import (
	"context"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
)

// InMemStorer keeps every entity in process memory. One lock serializes all
// writes, which makes votes and view increments atomic.
type InMemStorer struct {
	storageLock sync.RWMutex

	articles      map[int64]domain.Article
	polls         map[int64]domain.Poll
	videos        map[int64]domain.Video
	users         map[int64]domain.User
	categories    map[int64]domain.Category
	subcategories map[int64]domain.Subcategory

	seq map[string]int64
	now func() time.Time
}

type Option func(*InMemStorer)

// WithClock overrides the timestamp source used for createdAt/publishedAt defaults.
func WithClock(now func() time.Time) Option {
	return func(s *InMemStorer) {
		s.now = now
	}
}

func NewInMemStorer(opts ...Option) *InMemStorer {
	s := &InMemStorer{
		articles:      make(map[int64]domain.Article),
		polls:         make(map[int64]domain.Poll),
		videos:        make(map[int64]domain.Video),
		users:         make(map[int64]domain.User),
		categories:    make(map[int64]domain.Category),
		subcategories: make(map[int64]domain.Subcategory),
		seq:           make(map[string]int64),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// nextID must be called with storageLock held for writing.
func (s *InMemStorer) nextID(entity string) int64 {
	s.seq[entity]++
	return s.seq[entity]
}

func (s *InMemStorer) Healthy(ctx context.Context) bool {
	return true
}

func (s *InMemStorer) Close() error {
	return nil
}
