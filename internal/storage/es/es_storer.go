package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/result"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

const (
	retryOnConflict = 10
	casAttempts     = 5
)

type indices struct {
	articles      string
	polls         string
	videos        string
	users         string
	categories    string
	subcategories string
	sequences     string
}

func newIndices(prefix string) indices {
	if prefix == "" {
		prefix = "nouvel"
	}
	return indices{
		articles:      prefix + "-articles",
		polls:         prefix + "-polls",
		videos:        prefix + "-videos",
		users:         prefix + "-users",
		categories:    prefix + "-categories",
		subcategories: prefix + "-subcategories",
		sequences:     prefix + "-sequences",
	}
}

// Storer keeps one index per entity. Numeric ids come from the version
// counter of a per-entity document in the sequences index.
type Storer struct {
	client   *elasticsearch.TypedClient
	indices  indices
	config   ClientConfig
	pageSize int
}

func NewStorer(ctx context.Context, config ClientConfig) (*Storer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	storer := &Storer{
		client:  client,
		indices:  newIndices(config.IndexPrefix),
		config:   config,
		pageSize: defaultPageSize,
	}

	if err := storer.EnsureIndices(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indices exist: %w", err)
	}

	return storer, nil
}

func (e *Storer) Healthy(ctx context.Context) bool {
	ok, err := e.client.Ping().Do(ctx)
	if err != nil {
		slog.Warn("elasticsearch ping failed", "error", err)
		return false
	}
	return ok
}

func (e *Storer) Close() error {
	return nil
}

func (e *Storer) nextID(ctx context.Context, entity string) (int64, error) {
	res, err := e.client.Index(e.indices.sequences).
		Id(entity).
		Document(struct{}{}).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", entity, err)
	}
	return res.Version_, nil
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (e *Storer) put(ctx context.Context, index, id string, doc any) error {
	_, err := e.client.Index(index).
		Id(id).
		Document(doc).
		Refresh(refresh.True).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index document %s/%s: %w", index, id, err)
	}
	return nil
}

// get loads the document source into dst. It reports false when the
// document does not exist.
func (e *Storer) get(ctx context.Context, index, id string, dst any) (bool, error) {
	res, err := e.client.Get(index, id).Do(ctx)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get document %s/%s: %w", index, id, err)
	}
	if !res.Found {
		return false, nil
	}
	if err := json.Unmarshal(res.Source_, dst); err != nil {
		return false, fmt.Errorf("failed to unmarshal document %s/%s: %w", index, id, err)
	}
	return true, nil
}

func (e *Storer) remove(ctx context.Context, index, id string) (bool, error) {
	res, err := e.client.Delete(index, id).Refresh(refresh.True).Do(ctx)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete document %s/%s: %w", index, id, err)
	}
	return res.Result == result.Deleted, nil
}

type sortField struct {
	field string
	order sortorder.SortOrder
}

func desc(field string) sortField {
	return sortField{field: field, order: sortorder.Desc}
}

func asc(field string) sortField {
	return sortField{field: field, order: sortorder.Asc}
}

type hit struct {
	id     string
	source json.RawMessage
}

func sortOption(s sortField) *types.SortOptions {
	order := s.order
	return &types.SortOptions{
		SortOptions: map[string]types.FieldSort{
			s.field: {Order: &order},
		},
	}
}

// allHits asks search for every matching document.
const allHits = 0

// defaultPageSize stays well below index.max_result_window.
const defaultPageSize = 1000

// nextPageSize is the size of the next request when limit hits are wanted
// (allHits for no limit) and collected are already in hand. Zero means done.
func nextPageSize(pageSize, limit, collected int) int {
	if limit == allHits {
		return pageSize
	}
	return max(0, min(pageSize, limit-collected))
}

// search returns hits ordered by primary and then by tiebreak. Results are
// fetched a page at a time with search_after, so a limit of allHits returns
// every match regardless of the result window. tiebreak must be unique.
func (e *Storer) search(ctx context.Context, index string, query *types.Query, limit int, primary, tiebreak sortField) ([]hit, error) {
	query = orMatchAll(query)

	hits := make([]hit, 0)
	var after []types.FieldValue
	for {
		size := nextPageSize(e.pageSize, limit, len(hits))
		if size == 0 {
			return hits, nil
		}

		req := e.client.Search().
			Index(index).
			Query(query).
			Size(size).
			Sort(sortOption(primary), sortOption(tiebreak))
		if after != nil {
			req = req.SearchAfter(after...)
		}

		res, err := req.Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", index, err)
		}

		for _, h := range res.Hits.Hits {
			var id string
			if h.Id_ != nil {
				id = *h.Id_
			}
			hits = append(hits, hit{id: id, source: h.Source_})
		}

		page := res.Hits.Hits
		if len(page) < size {
			return hits, nil
		}
		after = page[len(page)-1].Sort
	}
}

func decodeHits[T any](hits []hit) ([]T, error) {
	out := make([]T, 0, len(hits))
	for _, h := range hits {
		var doc T
		if err := json.Unmarshal(h.source, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document %s: %w", h.id, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func termQuery(field string, value any) types.Query {
	return types.Query{
		Term: map[string]types.TermQuery{
			field: {Value: value},
		},
	}
}

func orMatchAll(query *types.Query) *types.Query {
	if query == nil {
		return &types.Query{MatchAll: &types.MatchAllQuery{}}
	}
	return query
}

func filterQuery(filters ...types.Query) *types.Query {
	if len(filters) == 0 {
		return nil
	}
	return &types.Query{
		Bool: &types.BoolQuery{Filter: filters},
	}
}

// rawRequest sends a request the typed API does not cover well, such as
// scripted updates and optimistic concurrency writes.
func (e *Storer) rawRequest(ctx context.Context, method, path string, params url.Values, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := e.client.Perform(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to perform %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return res.StatusCode, payload, nil
}

type painlessScript struct {
	Source string         `json:"source"`
	Lang   string         `json:"lang"`
	Params map[string]any `json:"params,omitempty"`
}

type updateResult struct {
	Result string `json:"result"`
}

// scriptedUpdate runs a painless script against one document. The update is
// applied on the primary shard with retries on version conflicts, so
// concurrent callers never lose increments.
func (e *Storer) scriptedUpdate(ctx context.Context, index, id, source string, params map[string]any) (string, error) {
	body := map[string]any{
		"script": painlessScript{Source: source, Lang: "painless", Params: params},
	}
	query := url.Values{}
	query.Set("retry_on_conflict", strconv.Itoa(retryOnConflict))
	query.Set("refresh", "true")

	status, payload, err := e.rawRequest(ctx, http.MethodPost, "/"+index+"/_update/"+url.PathEscape(id), query, body)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", fmt.Errorf("%s/%s: %w", index, id, storage.ErrNotFound)
	}
	if status >= http.StatusMultipleChoices {
		return "", fmt.Errorf("scripted update %s/%s failed with status %d: %s", index, id, status, payload)
	}

	var res updateResult
	if err := json.Unmarshal(payload, &res); err != nil {
		return "", fmt.Errorf("failed to decode update response: %w", err)
	}
	return res.Result, nil
}

type versionedDoc struct {
	Found       bool            `json:"found"`
	SeqNo       int64           `json:"_seq_no"`
	PrimaryTerm int64           `json:"_primary_term"`
	Source      json.RawMessage `json:"_source"`
}

// compareAndSwap reads the document, lets mutate produce the next version and
// writes it back guarded by if_seq_no/if_primary_term, retrying when another
// writer got there first.
func (e *Storer) compareAndSwap(ctx context.Context, index, id string, mutate func(source json.RawMessage) (any, error)) error {
	path := "/" + index + "/_doc/" + url.PathEscape(id)

	for attempt := 0; attempt < casAttempts; attempt++ {
		status, payload, err := e.rawRequest(ctx, http.MethodGet, path, nil, nil)
		if err != nil {
			return err
		}
		if status == http.StatusNotFound {
			return fmt.Errorf("%s/%s: %w", index, id, storage.ErrNotFound)
		}
		if status >= http.StatusMultipleChoices {
			return fmt.Errorf("get %s/%s failed with status %d: %s", index, id, status, payload)
		}

		var current versionedDoc
		if err := json.Unmarshal(payload, &current); err != nil {
			return fmt.Errorf("failed to decode document %s/%s: %w", index, id, err)
		}
		if !current.Found {
			return fmt.Errorf("%s/%s: %w", index, id, storage.ErrNotFound)
		}

		next, err := mutate(current.Source)
		if err != nil {
			return err
		}

		query := url.Values{}
		query.Set("if_seq_no", strconv.FormatInt(current.SeqNo, 10))
		query.Set("if_primary_term", strconv.FormatInt(current.PrimaryTerm, 10))
		query.Set("refresh", "true")

		status, payload, err = e.rawRequest(ctx, http.MethodPut, path, query, next)
		if err != nil {
			return err
		}
		switch {
		case status == http.StatusConflict:
			slog.Debug("optimistic write conflict, retrying", "index", index, "id", id, "attempt", attempt+1)
			continue
		case status >= http.StatusMultipleChoices:
			return fmt.Errorf("write %s/%s failed with status %d: %s", index, id, status, payload)
		}
		return nil
	}

	return fmt.Errorf("%s/%s: gave up after %d conflicting writes", index, id, casAttempts)
}

func isStatus(err error, status int) bool {
	var esErr *types.ElasticsearchError
	if errors.As(err, &esErr) {
		return esErr.Status == status
	}
	return false
}

var _ storage.Store = (*Storer)(nil)
