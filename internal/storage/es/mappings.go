package es

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

const textAnalyzer = "multilingual_analyzer"

func (e *Storer) EnsureIndices(ctx context.Context) error {
	mappings := map[string]types.TypeMapping{
		e.indices.articles: {
			Properties: map[string]types.Property{
				"id":            types.NewLongNumberProperty(),
				"title":         e.createTextPropertyWithKeyword(textAnalyzer),
				"content":       e.createTextProperty(textAnalyzer),
				"excerpt":       e.createTextProperty(textAnalyzer),
				"cover_image":   types.NewKeywordProperty(),
				"category":      types.NewKeywordProperty(),
				"author":        e.createTextPropertyWithKeyword(""),
				"published_at":  types.NewDateProperty(),
				"view_count":    types.NewLongNumberProperty(),
				"comment_count": types.NewLongNumberProperty(),
				"language":      types.NewKeywordProperty(),
			},
		},
		e.indices.polls: {
			Properties: map[string]types.Property{
				"id":         types.NewLongNumberProperty(),
				"question":   e.createTextProperty(textAnalyzer),
				"options":    types.NewKeywordProperty(),
				"results":    disabledObject(),
				"active":     types.NewBooleanProperty(),
				"created_at": types.NewDateProperty(),
				"language":   types.NewKeywordProperty(),
			},
		},
		e.indices.videos: {
			Properties: map[string]types.Property{
				"id":            types.NewLongNumberProperty(),
				"title":         e.createTextPropertyWithKeyword(textAnalyzer),
				"thumbnail_url": types.NewKeywordProperty(),
				"video_url":     types.NewKeywordProperty(),
				"duration":      types.NewKeywordProperty(),
				"published_at":  types.NewDateProperty(),
				"language":      types.NewKeywordProperty(),
				"category":      types.NewKeywordProperty(),
				"author":        e.createTextPropertyWithKeyword(""),
				"description":   e.createTextProperty(textAnalyzer),
			},
		},
		e.indices.users: {
			Properties: map[string]types.Property{
				"id":         types.NewLongNumberProperty(),
				"username":   types.NewKeywordProperty(),
				"password":   disabledKeyword(),
				"is_admin":   types.NewBooleanProperty(),
				"created_at": types.NewDateProperty(),
			},
		},
		e.indices.categories: {
			Properties: map[string]types.Property{
				"id":         types.NewLongNumberProperty(),
				"name":       types.NewKeywordProperty(),
				"label":      e.createTextPropertyWithKeyword(""),
				"language":   types.NewKeywordProperty(),
				"created_at": types.NewDateProperty(),
			},
		},
		e.indices.subcategories: {
			Properties: map[string]types.Property{
				"id":          types.NewLongNumberProperty(),
				"category_id": types.NewLongNumberProperty(),
				"name":        types.NewKeywordProperty(),
				"label":       e.createTextPropertyWithKeyword(""),
				"created_at":  types.NewDateProperty(),
			},
		},
		e.indices.sequences: {
			Properties: map[string]types.Property{},
		},
	}

	for index, mapping := range mappings {
		if err := e.ensureIndex(ctx, index, mapping); err != nil {
			return err
		}
	}
	return nil
}

func (e *Storer) ensureIndex(ctx context.Context, index string, mappings types.TypeMapping) error {
	existsRes, err := e.client.Indices.Exists(index).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index %s exists: %w", index, err)
	}

	if existsRes {
		slog.Debug("Index already exists", "index", index)
		return nil
	}

	settings := types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				textAnalyzer: types.StandardAnalyzer{
					Stopwords: []string{"_none_"},
				},
			},
		},
	}

	createRes, err := e.client.Indices.Create(index).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", index, err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("creation of index %s was not acknowledged", index)
	}

	slog.Info("Index created successfully", "index", index)
	return nil
}

func (e *Storer) createTextProperty(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	return textProp
}

func (e *Storer) createTextPropertyWithKeyword(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}

// disabledObject keeps the field in _source without indexing it. Poll
// tallies are keyed by free-form option text, which may contain dots.
func disabledObject() types.Property {
	obj := types.NewObjectProperty()
	enabled := false
	obj.Enabled = &enabled
	return obj
}

func disabledKeyword() types.Property {
	kw := types.NewKeywordProperty()
	index := false
	kw.Index = &index
	return kw
}
