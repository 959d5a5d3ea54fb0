package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"accesshub/internal/http-api/models"
	"accesshub/internal/http-api/repository"
)

const (
	defaultListLimit = 50
	searchLimit      = 20
)

// BrowseService answers the read side: category listings, cross-category
// search and polymorphic lookup. Queries against the five tables run in
// parallel and fail fast: if any sub-query errors the whole read errors
// instead of silently omitting a category.
type BrowseService interface {
	GetEntries(ctx context.Context, category models.Category, limit int) ([]models.Entry, error)
	SearchEntries(ctx context.Context, query string, category models.Category) ([]models.Entry, error)
	GetEntry(ctx context.Context, id int64) (models.Entry, error)
}

type browseService struct {
	entries *repository.EntryRepo
}

func NewBrowseService(entries *repository.EntryRepo) BrowseService {
	return &browseService{entries: entries}
}

// GetEntries lists the newest entries. With a category it reads one table;
// without, it fans out to all five with the same per-table cap, merges and
// re-sorts by creation time, then truncates. A very active category can
// crowd the others out of the combined top-N; that is a deliberate
// simplicity trade-off, not a ranking guarantee.
func (s *browseService) GetEntries(ctx context.Context, category models.Category, limit int) ([]models.Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	if category != "" {
		return s.entries.ListByCategory(ctx, category, limit)
	}

	merged, err := s.fanOut(ctx, func(c models.Category) ([]models.Entry, error) {
		return s.entries.ListByCategory(ctx, c, limit)
	})
	if err != nil {
		return nil, err
	}
	sortByNewest(merged)
	return truncate(merged, limit), nil
}

// SearchEntries delegates the text match to the store per table. A blank
// query means "no results", not "all results".
func (s *browseService) SearchEntries(ctx context.Context, query string, category models.Category) ([]models.Entry, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Entry{}, nil
	}

	if category != "" {
		list, err := s.entries.SearchByCategory(ctx, category, query)
		if err != nil {
			return nil, err
		}
		return truncate(list, searchLimit), nil
	}

	merged, err := s.fanOut(ctx, func(c models.Category) ([]models.Entry, error) {
		return s.entries.SearchByCategory(ctx, c, query)
	})
	if err != nil {
		return nil, err
	}
	sortByNewest(merged)
	return truncate(merged, searchLimit), nil
}

// GetEntry looks an id up against all five tables in parallel with no type
// hint; a table that does not know the id answers nil rather than erroring.
// New rows draw their ids from one shared sequence, so at most one table
// matches. Rows created before that sequence existed can still collide, and
// for those the hit in the earliest category (AllCategories order) wins,
// keeping repeated lookups deterministic.
func (s *browseService) GetEntry(ctx context.Context, id int64) (models.Entry, error) {
	merged, err := s.fanOut(ctx, func(c models.Category) ([]models.Entry, error) {
		e, err := s.entries.Lookup(ctx, models.EntryRef{Category: c, ID: id})
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, nil
		}
		return []models.Entry{e}, nil
	})
	if err != nil {
		return nil, err
	}
	if len(merged) == 0 {
		return nil, fmt.Errorf("%w: entry %d", ErrNotFound, id)
	}
	for _, c := range models.AllCategories() {
		for _, e := range merged {
			if e.Category() == c {
				return e, nil
			}
		}
	}
	return merged[0], nil
}

// fanOut runs one query per category concurrently and merges the results.
// All five goroutines are drained before returning so none leaks; the first
// error wins.
func (s *browseService) fanOut(ctx context.Context, query func(models.Category) ([]models.Entry, error)) ([]models.Entry, error) {
	categories := models.AllCategories()

	type result struct {
		entries []models.Entry
		err     error
	}
	ch := make(chan result, len(categories))

	for _, c := range categories {
		go func(c models.Category) {
			entries, err := query(c)
			ch <- result{entries: entries, err: err}
		}(c)
	}

	var (
		merged   []models.Entry
		firstErr error
	)
	for range categories {
		r := <-ch
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		merged = append(merged, r.entries...)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return merged, nil
}

func sortByNewest(entries []models.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Core().CreatedAt.After(entries[j].Core().CreatedAt)
	})
}

func truncate(entries []models.Entry, limit int) []models.Entry {
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
