package dto

import "github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"

type CreatePollRequest struct {
	Question string   `json:"question" validate:"required,min=5"`
	Options  []string `json:"options" validate:"required,min=2,unique,dive,required"`
	Active   *bool    `json:"active,omitempty"`
	Language string   `json:"language" validate:"required,language"`
}

// ToDomain defaults active to true.
func (r CreatePollRequest) ToDomain() domain.Poll {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return domain.Poll{
		Question: r.Question,
		Options:  r.Options,
		Active:   active,
		Language: domain.Language(r.Language),
	}
}

type UpdatePollRequest struct {
	Question *string  `json:"question,omitempty" validate:"omitempty,min=5"`
	Options  []string `json:"options,omitempty" validate:"omitempty,min=2,unique,dive,required"`
	Active   *bool    `json:"active,omitempty"`
	Language *string  `json:"language,omitempty" validate:"omitempty,language"`
}

func (r UpdatePollRequest) ToPatch() domain.PollPatch {
	return domain.PollPatch{
		Question: r.Question,
		Options:  r.Options,
		Active:   r.Active,
		Language: languagePtr(r.Language),
	}
}

type VoteRequest struct {
	PollID int64  `json:"pollId" validate:"required,gt=0"`
	Option string `json:"option" validate:"required"`
}
