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

// voteScript is a noop for unknown options so the tally never gains keys
// outside the option list.
const voteScript = `
if (!ctx._source.options.contains(params.option)) {
  ctx.op = 'noop';
} else {
  if (ctx._source.results == null) {
    ctx._source.results = new HashMap();
  }
  def current = ctx._source.results.get(params.option);
  ctx._source.results.put(params.option, (current == null ? 0L : (long) current) + 1L);
}`

func (e *Storer) CreatePoll(ctx context.Context, poll domain.Poll) (*domain.Poll, error) {
	id, err := e.nextID(ctx, "polls")
	if err != nil {
		return nil, err
	}

	poll.ID = id
	poll.Results = domain.NewResults(poll.Options)
	if poll.CreatedAt.IsZero() {
		poll.CreatedAt = time.Now()
	}

	if err := e.put(ctx, e.indices.polls, docID(id), toPollDocument(poll)); err != nil {
		return nil, err
	}
	created := poll.Clone()
	return &created, nil
}

func (e *Storer) GetPoll(ctx context.Context, id int64) (*domain.Poll, error) {
	var doc pollDocument
	found, err := e.get(ctx, e.indices.polls, docID(id), &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("poll %d: %w", id, storage.ErrNotFound)
	}
	p := doc.toDomain()
	return &p, nil
}

func (e *Storer) ListPolls(ctx context.Context, filter domain.PollFilter) ([]domain.Poll, error) {
	var filters []types.Query
	if filter.Language != "" {
		filters = append(filters, termQuery("language", string(filter.Language)))
	}
	if filter.Active != nil {
		filters = append(filters, termQuery("active", *filter.Active))
	}

	hits, err := e.search(ctx, e.indices.polls, filterQuery(filters...), allHits, desc("created_at"), desc("id"))
	if err != nil {
		return nil, err
	}

	docs, err := decodeHits[pollDocument](hits)
	if err != nil {
		return nil, err
	}
	polls := make([]domain.Poll, 0, len(docs))
	for _, d := range docs {
		polls = append(polls, d.toDomain())
	}
	return polls, nil
}

func (e *Storer) UpdatePoll(ctx context.Context, id int64, patch domain.PollPatch) (*domain.Poll, error) {
	var updated domain.Poll
	err := e.compareAndSwap(ctx, e.indices.polls, docID(id), func(source json.RawMessage) (any, error) {
		var doc pollDocument
		if err := json.Unmarshal(source, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal poll %d: %w", id, err)
		}
		updated = doc.toDomain().Apply(patch)
		return toPollDocument(updated), nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *Storer) DeletePoll(ctx context.Context, id int64) (bool, error) {
	return e.remove(ctx, e.indices.polls, docID(id))
}

func (e *Storer) VotePoll(ctx context.Context, id int64, option string) (*domain.Poll, error) {
	res, err := e.scriptedUpdate(ctx, e.indices.polls, docID(id), voteScript, map[string]any{"option": option})
	if err != nil {
		return nil, err
	}
	if res == "noop" {
		return nil, fmt.Errorf("poll %d option %q: %w", id, option, storage.ErrNotFound)
	}
	return e.GetPoll(ctx, id)
}
