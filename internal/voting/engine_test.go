package voting

import (
	"context"
	"sync"
	"testing"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPoll(t *testing.T, store *in_mem.InMemStorer, active bool) *domain.Poll {
	t.Helper()
	p, err := store.CreatePoll(context.Background(), domain.Poll{
		Question: "Which one?",
		Options:  []string{"A", "B"},
		Active:   active,
		Language: domain.LanguageEnglish,
	})
	require.NoError(t, err)
	return p
}

func TestParseClosedPollPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ClosedPollPolicy
		wantErr bool
	}{
		{in: "", want: RejectClosed},
		{in: "reject", want: RejectClosed},
		{in: "accept", want: AcceptClosed},
		{in: "maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClosedPollPolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_ConcurrentVotesAreNotLost(t *testing.T) {
	store := in_mem.NewInMemStorer()
	engine := NewEngine(store, RejectClosed)
	poll := newPoll(t, store, true)

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Vote(context.Background(), poll.ID, "A")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.GetPoll(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.Results["A"])
	assert.Equal(t, int64(0), got.Results["B"])
}

func TestEngine_RepeatVotesIncreaseByOne(t *testing.T) {
	store := in_mem.NewInMemStorer()
	engine := NewEngine(store, RejectClosed)
	poll := newPoll(t, store, true)

	for want := int64(1); want <= 3; want++ {
		got, err := engine.Vote(context.Background(), poll.ID, "B")
		require.NoError(t, err)
		assert.Equal(t, want, got.Results["B"])
	}
}

func TestEngine_UnknownOptionLeavesResultsUnchanged(t *testing.T) {
	store := in_mem.NewInMemStorer()
	engine := NewEngine(store, RejectClosed)
	poll := newPoll(t, store, true)

	_, err := engine.Vote(context.Background(), poll.ID, "C")
	assert.ErrorIs(t, err, ErrUnknownOption)

	got, err := store.GetPoll(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"A": 0, "B": 0}, got.Results)
}

func TestEngine_MissingPoll(t *testing.T) {
	engine := NewEngine(in_mem.NewInMemStorer(), RejectClosed)

	_, err := engine.Vote(context.Background(), 42, "A")
	assert.ErrorIs(t, err, ErrPollNotFound)

	_, err = engine.Results(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPollNotFound)
}

func TestEngine_ClosedPollPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  ClosedPollPolicy
		wantErr error
		want    int64
	}{
		{name: "reject", policy: RejectClosed, wantErr: ErrPollClosed, want: 0},
		{name: "accept", policy: AcceptClosed, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := in_mem.NewInMemStorer()
			engine := NewEngine(store, tt.policy)
			poll := newPoll(t, store, false)

			_, err := engine.Vote(context.Background(), poll.ID, "A")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			got, err := store.GetPoll(context.Background(), poll.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Results["A"])
		})
	}
}

func TestEngine_Results(t *testing.T) {
	store := in_mem.NewInMemStorer()
	engine := NewEngine(store, RejectClosed)
	poll := newPoll(t, store, true)

	for _, o := range []string{"A", "A", "B"} {
		_, err := engine.Vote(context.Background(), poll.ID, o)
		require.NoError(t, err)
	}

	res, err := engine.Results(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.TotalVotes)
	assert.Equal(t, []domain.OptionResult{
		{Option: "A", Votes: 2, Percentage: 67},
		{Option: "B", Votes: 1, Percentage: 33},
	}, res.Options)
}
