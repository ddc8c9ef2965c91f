package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/jackc/pgx/v5"
)

const pollColumns = `id, question, options, results, active, created_at, language`

func scanPoll(row pgx.Row) (domain.Poll, error) {
	var p domain.Poll
	var optionsJSON, resultsJSON []byte
	var lang string

	if err := row.Scan(&p.ID, &p.Question, &optionsJSON, &resultsJSON, &p.Active, &p.CreatedAt, &lang); err != nil {
		return p, err
	}
	if err := json.Unmarshal(optionsJSON, &p.Options); err != nil {
		return p, fmt.Errorf("failed to unmarshal poll options: %w", err)
	}
	if err := json.Unmarshal(resultsJSON, &p.Results); err != nil {
		return p, fmt.Errorf("failed to unmarshal poll results: %w", err)
	}
	p.Language = domain.Language(lang)
	return p, nil
}

func marshalPollState(p domain.Poll) (options, results []byte, err error) {
	options, err = json.Marshal(p.Options)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal poll options: %w", err)
	}
	results, err = json.Marshal(p.Results)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal poll results: %w", err)
	}
	return options, results, nil
}

func (s *Storer) CreatePoll(ctx context.Context, poll domain.Poll) (*domain.Poll, error) {
	if poll.CreatedAt.IsZero() {
		poll.CreatedAt = time.Now()
	}
	poll.Results = domain.NewResults(poll.Options)

	optionsJSON, resultsJSON, err := marshalPollState(poll)
	if err != nil {
		return nil, err
	}

	cmd := `
		INSERT INTO polls (question, options, results, active, created_at, language)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + pollColumns

	created, err := scanPoll(s.db.QueryRow(ctx, cmd,
		poll.Question, optionsJSON, resultsJSON, poll.Active, poll.CreatedAt, string(poll.Language)))
	if err != nil {
		return nil, fmt.Errorf("failed to insert poll: %w", err)
	}
	return &created, nil
}

func (s *Storer) GetPoll(ctx context.Context, id int64) (*domain.Poll, error) {
	p, err := scanPoll(s.db.QueryRow(ctx, `SELECT `+pollColumns+` FROM polls WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "poll %d", id)
	}
	return &p, nil
}

func (s *Storer) ListPolls(ctx context.Context, filter domain.PollFilter) ([]domain.Poll, error) {
	q := `
		SELECT ` + pollColumns + `
		FROM polls
		WHERE ($1 = '' OR language = $1)
		  AND ($2::boolean IS NULL OR active = $2)
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.db.Query(ctx, q, string(filter.Language), filter.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}

	polls, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Poll, error) {
		return scanPoll(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan polls: %w", err)
	}
	return polls, nil
}

// UpdatePoll locks the row so that votes landing during an options change
// are reconciled against the new option set rather than lost.
func (s *Storer) UpdatePoll(ctx context.Context, id int64, patch domain.PollPatch) (*domain.Poll, error) {
	var updated domain.Poll

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		current, err := scanPoll(tx.QueryRow(ctx, `SELECT `+pollColumns+` FROM polls WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return notFound(err, "poll %d", id)
		}

		next := current.Apply(patch)
		optionsJSON, resultsJSON, err := marshalPollState(next)
		if err != nil {
			return err
		}

		cmd := `
			UPDATE polls SET question = $2, options = $3, results = $4, active = $5, language = $6
			WHERE id = $1
			RETURNING ` + pollColumns
		updated, err = scanPoll(tx.QueryRow(ctx, cmd,
			id, next.Question, optionsJSON, resultsJSON, next.Active, string(next.Language)))
		if err != nil {
			return fmt.Errorf("failed to update poll %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Storer) DeletePoll(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete poll %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Storer) VotePoll(ctx context.Context, id int64, option string) (*domain.Poll, error) {
	cmd := `
		UPDATE polls
		SET results = jsonb_set(
			results,
			ARRAY[$2::text],
			to_jsonb(COALESCE((results ->> $2::text)::bigint, 0) + 1)
		)
		WHERE id = $1 AND options @> jsonb_build_array($2::text)
		RETURNING ` + pollColumns

	p, err := scanPoll(s.db.QueryRow(ctx, cmd, id, option))
	if err != nil {
		return nil, notFound(err, "vote poll %d option %q", id, option)
	}
	return &p, nil
}

var _ storage.Store = (*Storer)(nil)
