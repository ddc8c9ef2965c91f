package domain

import (
	"slices"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/pkg/utils"
)

type Poll struct {
	ID        int64            `json:"id"`
	Question  string           `json:"question"`
	Options   []string         `json:"options"`
	Results   map[string]int64 `json:"results"`
	Active    bool             `json:"active"`
	CreatedAt time.Time        `json:"createdAt"`
	Language  Language         `json:"language"`
}

type PollPatch struct {
	Question *string   `json:"question,omitempty"`
	Options  []string  `json:"options,omitempty"`
	Active   *bool     `json:"active,omitempty"`
	Language *Language `json:"language,omitempty"`
}

func (p PollPatch) IsEmpty() bool {
	return p.Question == nil && p.Options == nil && p.Active == nil && p.Language == nil
}

// NewResults returns a zero tally for every option.
func NewResults(options []string) map[string]int64 {
	results := make(map[string]int64, len(options))
	for _, o := range options {
		results[o] = 0
	}
	return results
}

// ReconcileResults keys the tally by exactly the given options. Surviving
// options keep their counts, new ones start at zero, removed ones are dropped.
func ReconcileResults(options []string, current map[string]int64) map[string]int64 {
	results := NewResults(options)
	for o := range results {
		results[o] = current[o]
	}
	return results
}

func (p Poll) Apply(patch PollPatch) Poll {
	if patch.Question != nil {
		p.Question = *patch.Question
	}
	if patch.Options != nil {
		p.Options = slices.Clone(patch.Options)
		p.Results = ReconcileResults(p.Options, p.Results)
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	if patch.Language != nil {
		p.Language = *patch.Language
	}
	return p
}

// Clone deep-copies the slice and map so callers cannot alias stored state.
func (p Poll) Clone() Poll {
	p.Options = slices.Clone(p.Options)
	results := make(map[string]int64, len(p.Results))
	for k, v := range p.Results {
		results[k] = v
	}
	p.Results = results
	return p
}

func (p Poll) HasOption(option string) bool {
	return slices.Contains(p.Options, option)
}

func (p Poll) TotalVotes() int64 {
	var total int64
	for _, v := range p.Results {
		total += v
	}
	return total
}

// Percentage is round(100 * votes / total), and 0 while nobody has voted.
func (p Poll) Percentage(option string) int {
	total := p.TotalVotes()
	if total == 0 {
		return 0
	}
	return int(utils.RoundDecimal(100*float64(p.Results[option])/float64(total), 0))
}

type OptionResult struct {
	Option     string `json:"option"`
	Votes      int64  `json:"votes"`
	Percentage int    `json:"percentage"`
}

type PollResults struct {
	PollID     int64          `json:"pollId"`
	Question   string         `json:"question"`
	Active     bool           `json:"active"`
	TotalVotes int64          `json:"totalVotes"`
	Options    []OptionResult `json:"options"`
}

// Summary lists the options in poll order with their tallies.
func (p Poll) Summary() PollResults {
	out := PollResults{
		PollID:     p.ID,
		Question:   p.Question,
		Active:     p.Active,
		TotalVotes: p.TotalVotes(),
		Options:    make([]OptionResult, 0, len(p.Options)),
	}
	for _, o := range p.Options {
		out.Options = append(out.Options, OptionResult{
			Option:     o,
			Votes:      p.Results[o],
			Percentage: p.Percentage(o),
		})
	}
	return out
}

type PollFilter struct {
	Language Language
	Active   *bool
}

func (f PollFilter) Match(p Poll) bool {
	if f.Language != "" && p.Language != f.Language {
		return false
	}
	if f.Active != nil && p.Active != *f.Active {
		return false
	}
	return true
}
