package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/domain"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Summary struct {
	Users         int
	Categories    int
	Subcategories int
	Articles      int
	Polls         int
	Videos        int
	Skipped       int
}

type Importer struct {
	store  storage.Store
	hasher PasswordHasher
}

func NewImporter(store storage.Store, hasher PasswordHasher) *Importer {
	return &Importer{store: store, hasher: hasher}
}

// IsEmpty reports whether the store holds no content yet. Users and
// categories are ignored since the admin bootstrap creates one on every start.
func (im *Importer) IsEmpty(ctx context.Context) (bool, error) {
	articles, err := im.store.ListArticles(ctx, domain.ArticleFilter{})
	if err != nil {
		return false, err
	}
	polls, err := im.store.ListPolls(ctx, domain.PollFilter{})
	if err != nil {
		return false, err
	}
	videos, err := im.store.ListVideos(ctx, domain.VideoFilter{})
	if err != nil {
		return false, err
	}
	return len(articles) == 0 && len(polls) == 0 && len(videos) == 0, nil
}

// ImportIfEmpty runs Import only against an empty store.
func (im *Importer) ImportIfEmpty(ctx context.Context, f *Fixtures) (Summary, error) {
	empty, err := im.IsEmpty(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to inspect store: %w", err)
	}
	if !empty {
		slog.Info("Store already has content, skipping fixtures", "fixtures", f.Metadata.Name)
		return Summary{}, nil
	}
	return im.Import(ctx, f)
}

// Import writes every fixture. Users and categories that already exist are
// skipped and counted in Summary.Skipped.
func (im *Importer) Import(ctx context.Context, f *Fixtures) (Summary, error) {
	var sum Summary

	for _, u := range f.Users {
		hash, err := im.hasher.Hash(u.Password)
		if err != nil {
			return sum, fmt.Errorf("failed to hash password of %q: %w", u.Username, err)
		}
		_, err = im.store.CreateUser(ctx, domain.User{Username: u.Username, Password: hash, IsAdmin: u.IsAdmin})
		if errors.Is(err, storage.ErrConflict) {
			sum.Skipped++
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("failed to import user %q: %w", u.Username, err)
		}
		sum.Users++
	}

	for _, c := range f.Categories {
		category, err := im.store.CreateCategory(ctx, domain.Category{Name: c.Name, Label: c.Label, Language: c.Language})
		if errors.Is(err, storage.ErrConflict) {
			sum.Skipped++
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("failed to import category %q: %w", c.Name, err)
		}
		sum.Categories++

		for _, s := range c.Subcategories {
			if _, err := im.store.CreateSubcategory(ctx, domain.Subcategory{
				CategoryID: category.ID,
				Name:       s.Name,
				Label:      s.Label,
			}); err != nil {
				return sum, fmt.Errorf("failed to import subcategory %q: %w", s.Name, err)
			}
			sum.Subcategories++
		}
	}

	for _, a := range f.Articles {
		article, err := im.store.CreateArticle(ctx, a.toDomain())
		if err != nil {
			return sum, fmt.Errorf("failed to import article %q: %w", a.Title, err)
		}
		for range a.Views {
			if err := im.store.IncrementArticleViews(ctx, article.ID); err != nil {
				return sum, fmt.Errorf("failed to replay views of article %d: %w", article.ID, err)
			}
		}
		sum.Articles++
	}

	for _, p := range f.Polls {
		poll, err := im.store.CreatePoll(ctx, p.toDomain())
		if err != nil {
			return sum, fmt.Errorf("failed to import poll %q: %w", p.Question, err)
		}
		// options order keeps the replay deterministic
		for _, option := range p.Options {
			for range p.Votes[option] {
				if _, err := im.store.VotePoll(ctx, poll.ID, option); err != nil {
					return sum, fmt.Errorf("failed to replay votes of poll %d: %w", poll.ID, err)
				}
			}
		}
		sum.Polls++
	}

	for _, v := range f.Videos {
		if _, err := im.store.CreateVideo(ctx, v.toDomain()); err != nil {
			return sum, fmt.Errorf("failed to import video %q: %w", v.Title, err)
		}
		sum.Videos++
	}

	slog.Info("Fixtures imported",
		"fixtures", f.Metadata.Name,
		"users", sum.Users,
		"categories", sum.Categories,
		"articles", sum.Articles,
		"polls", sum.Polls,
		"videos", sum.Videos,
		"skipped", sum.Skipped,
	)
	return sum, nil
}
