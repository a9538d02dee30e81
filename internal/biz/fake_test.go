package biz

import (
	"context"
	"fmt"
	"sort"
)

// memoryRepo is an in-memory MovieRepo for use case tests.
type memoryRepo struct {
	movies       map[int64]Movie
	nextID       int64
	updates      int
	rankingSaves int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{movies: make(map[int64]Movie), nextID: 1}
}

func (r *memoryRepo) CreateMovie(_ context.Context, movie *Movie) error {
	for _, m := range r.movies {
		if m.Title == movie.Title {
			return fmt.Errorf("failed to create movie: %w", ErrDuplicateTitle)
		}
	}
	movie.ID = r.nextID
	r.nextID++
	r.movies[movie.ID] = *movie
	return nil
}

func (r *memoryRepo) GetMovie(_ context.Context, id int64) (*Movie, error) {
	m, ok := r.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	return &m, nil
}

func (r *memoryRepo) ListMovies(_ context.Context) ([]*Movie, error) {
	ids := make([]int64, 0, len(r.movies))
	for id := range r.movies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*Movie, 0, len(ids))
	for _, id := range ids {
		m := r.movies[id]
		out = append(out, &m)
	}
	return out, nil
}

func (r *memoryRepo) UpdateMovie(_ context.Context, movie *Movie) error {
	if _, ok := r.movies[movie.ID]; !ok {
		return ErrMovieNotFound
	}
	for id, m := range r.movies {
		if id != movie.ID && m.Title == movie.Title {
			return ErrDuplicateTitle
		}
	}
	r.updates++
	r.movies[movie.ID] = *movie
	return nil
}

func (r *memoryRepo) DeleteMovie(_ context.Context, id int64) error {
	if _, ok := r.movies[id]; !ok {
		return ErrMovieNotFound
	}
	delete(r.movies, id)
	return nil
}

func (r *memoryRepo) SaveRankings(_ context.Context, rankings map[int64]int) error {
	r.rankingSaves++
	for id, rank := range rankings {
		m, ok := r.movies[id]
		if !ok {
			continue
		}
		m.Ranking = &rank
		r.movies[id] = m
	}
	return nil
}

// fakeSearcher returns canned remote results.
type fakeSearcher struct {
	candidates []*Candidate
	details    map[int64]*Detail
	searchErr  error
	detailErr  error
	searches   []string
}

func (f *fakeSearcher) SearchByTitle(_ context.Context, title string) ([]*Candidate, error) {
	f.searches = append(f.searches, title)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.candidates, nil
}

func (f *fakeSearcher) FetchDetail(_ context.Context, remoteID int64) (*Detail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	d, ok := f.details[remoteID]
	if !ok {
		return nil, ErrRemoteDataIncomplete
	}
	return d, nil
}
