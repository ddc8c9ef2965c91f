package in_mem

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
)

func (s *InMemStorer) CreatePoll(ctx context.Context, poll domain.Poll) (*domain.Poll, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	poll = poll.Clone()
	poll.ID = s.nextID("polls")
	if poll.CreatedAt.IsZero() {
		poll.CreatedAt = s.now()
	}
	poll.Results = domain.NewResults(poll.Options)
	s.polls[poll.ID] = poll

	out := poll.Clone()
	return &out, nil
}

func (s *InMemStorer) GetPoll(ctx context.Context, id int64) (*domain.Poll, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	poll, ok := s.polls[id]
	if !ok {
		return nil, fmt.Errorf("poll %d: %w", id, storage.ErrNotFound)
	}
	out := poll.Clone()
	return &out, nil
}

func (s *InMemStorer) ListPolls(ctx context.Context, filter domain.PollFilter) ([]domain.Poll, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	polls := make([]domain.Poll, 0, len(s.polls))
	for _, p := range s.polls {
		if filter.Match(p) {
			polls = append(polls, p.Clone())
		}
	}
	storage.SortPollsByRecency(polls)
	return polls, nil
}

func (s *InMemStorer) UpdatePoll(ctx context.Context, id int64, patch domain.PollPatch) (*domain.Poll, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	poll, ok := s.polls[id]
	if !ok {
		return nil, fmt.Errorf("poll %d: %w", id, storage.ErrNotFound)
	}
	poll = poll.Clone().Apply(patch)
	s.polls[id] = poll

	out := poll.Clone()
	return &out, nil
}

func (s *InMemStorer) DeletePoll(ctx context.Context, id int64) (bool, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if _, ok := s.polls[id]; !ok {
		return false, nil
	}
	delete(s.polls, id)
	return true, nil
}

func (s *InMemStorer) VotePoll(ctx context.Context, id int64, option string) (*domain.Poll, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	poll, ok := s.polls[id]
	if !ok {
		return nil, fmt.Errorf("poll %d: %w", id, storage.ErrNotFound)
	}
	if !poll.HasOption(option) {
		return nil, fmt.Errorf("poll %d option %q: %w", id, option, storage.ErrNotFound)
	}
	poll.Results[option]++

	out := poll.Clone()
	return &out, nil
}
