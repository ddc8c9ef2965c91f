// Package voting records ballots against polls held by a storage.PollStore.
package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
)

// ClosedPollPolicy decides what happens to a ballot cast on an inactive poll.
type ClosedPollPolicy string

const (
	AcceptClosed ClosedPollPolicy = "accept"
	RejectClosed ClosedPollPolicy = "reject"
)

func ParseClosedPollPolicy(s string) (ClosedPollPolicy, error) {
	switch ClosedPollPolicy(s) {
	case "":
		return RejectClosed, nil
	case AcceptClosed, RejectClosed:
		return ClosedPollPolicy(s), nil
	default:
		return "", fmt.Errorf("invalid closed poll policy %q, expected %q or %q", s, AcceptClosed, RejectClosed)
	}
}

var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrUnknownOption = errors.New("option is not part of the poll")
	ErrPollClosed    = errors.New("poll is closed")
)

type Engine struct {
	polls  storage.PollStore
	policy ClosedPollPolicy
}

func NewEngine(polls storage.PollStore, policy ClosedPollPolicy) *Engine {
	if policy == "" {
		policy = RejectClosed
	}
	return &Engine{polls: polls, policy: policy}
}

func (e *Engine) Policy() ClosedPollPolicy {
	return e.policy
}

// Vote adds exactly one ballot for option. The increment itself is delegated
// to the store, which applies it atomically.
func (e *Engine) Vote(ctx context.Context, pollID int64, option string) (*domain.Poll, error) {
	poll, err := e.polls.GetPoll(ctx, pollID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("poll %d: %w", pollID, ErrPollNotFound)
		}
		return nil, err
	}

	if !poll.HasOption(option) {
		return nil, fmt.Errorf("poll %d option %q: %w", pollID, option, ErrUnknownOption)
	}
	if !poll.Active && e.policy == RejectClosed {
		return nil, fmt.Errorf("poll %d: %w", pollID, ErrPollClosed)
	}

	updated, err := e.polls.VotePoll(ctx, pollID, option)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// the poll was deleted or its options changed since the read
			if _, getErr := e.polls.GetPoll(ctx, pollID); errors.Is(getErr, storage.ErrNotFound) {
				return nil, fmt.Errorf("poll %d: %w", pollID, ErrPollNotFound)
			}
			return nil, fmt.Errorf("poll %d option %q: %w", pollID, option, ErrUnknownOption)
		}
		return nil, err
	}

	slog.Debug("vote recorded", "poll_id", pollID, "option", option, "total", updated.TotalVotes())
	return updated, nil
}

func (e *Engine) Results(ctx context.Context, pollID int64) (*domain.PollResults, error) {
	poll, err := e.polls.GetPoll(ctx, pollID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("poll %d: %w", pollID, ErrPollNotFound)
		}
		return nil, err
	}
	summary := poll.Summary()
	return &summary, nil
}
