package biz

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAddMovieUseCase(t *testing.T, searcher *fakeSearcher) (*AddMovieUseCase, *memoryRepo) {
	t.Helper()
	repo := newMemoryRepo()
	movies := NewMovieUseCase(repo, log.DefaultLogger)
	return NewAddMovieUseCase(searcher, movies, log.DefaultLogger), repo
}

func phoneBoothSearcher() *fakeSearcher {
	return &fakeSearcher{
		candidates: []*Candidate{
			{RemoteID: 1817, Title: "Phone Booth", ReleaseDate: "2002-11-14"},
			{RemoteID: 99, Title: "Phone Booth", ReleaseDate: "1988-01-01"},
		},
		details: map[int64]*Detail{
			1817: {
				RemoteID:    1817,
				Title:       "Phone Booth",
				Year:        2002,
				Description: "A publicist is trapped in a phone booth.",
				ImageURL:    "https://image.tmdb.org/t/p/w500/booth.jpg",
			},
		},
	}
}

func TestAddMovie_HappyPath(t *testing.T) {
	uc, repo := newTestAddMovieUseCase(t, phoneBoothSearcher())
	ctx := context.Background()
	wf := NewAddMovieWorkflow()

	candidates, err := uc.Search(ctx, wf, " Phone Booth ")
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, StateSearchResultsPresented, wf.State)
	assert.Equal(t, "Phone Booth", wf.Query)

	movie, err := uc.Resolve(ctx, wf, 1817)
	require.NoError(t, err)
	assert.Equal(t, StateEditPending, wf.State)
	assert.Equal(t, movie.ID, wf.MovieID)

	stored, err := repo.GetMovie(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, "Phone Booth", stored.Title)
	assert.Equal(t, 2002, stored.Year)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/booth.jpg", stored.ImageURL)
	assert.Nil(t, stored.Rating)
	assert.Nil(t, stored.Ranking)
	assert.Nil(t, stored.Review)

	uc.Complete(wf, movie.ID)
	assert.Equal(t, StateAwaitingTitleInput, wf.State)
	assert.Zero(t, wf.MovieID)
}

func TestAddMovie_SearchRemoteUnavailable(t *testing.T) {
	searcher := &fakeSearcher{searchErr: fmt.Errorf("dial tcp: %w", ErrRemoteUnavailable)}
	uc, _ := newTestAddMovieUseCase(t, searcher)
	wf := NewAddMovieWorkflow()

	_, err := uc.Search(context.Background(), wf, "Heat")
	require.ErrorIs(t, err, ErrRemoteUnavailable)
	assert.Equal(t, StateAwaitingTitleInput, wf.State)
}

func TestAddMovie_SearchBlankTitle(t *testing.T) {
	searcher := phoneBoothSearcher()
	uc, _ := newTestAddMovieUseCase(t, searcher)
	wf := NewAddMovieWorkflow()

	_, err := uc.Search(context.Background(), wf, "   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Empty(t, searcher.searches)
	assert.Equal(t, StateAwaitingTitleInput, wf.State)
}

func TestAddMovie_ResolveIncompleteCreatesNothing(t *testing.T) {
	uc, repo := newTestAddMovieUseCase(t, phoneBoothSearcher())
	ctx := context.Background()
	wf := NewAddMovieWorkflow()

	_, err := uc.Search(ctx, wf, "Phone Booth")
	require.NoError(t, err)

	_, err = uc.Resolve(ctx, wf, 99)
	require.ErrorIs(t, err, ErrRemoteDataIncomplete)
	assert.Empty(t, repo.movies)
	assert.Equal(t, StateAwaitingTitleInput, wf.State)
}

func TestAddMovie_ResolveDuplicateTitle(t *testing.T) {
	uc, repo := newTestAddMovieUseCase(t, phoneBoothSearcher())
	ctx := context.Background()
	require.NoError(t, repo.CreateMovie(ctx, &Movie{Title: "Phone Booth"}))

	wf := NewAddMovieWorkflow()
	_, err := uc.Search(ctx, wf, "Phone Booth")
	require.NoError(t, err)

	_, err = uc.Resolve(ctx, wf, 1817)
	require.ErrorIs(t, err, ErrDuplicateTitle)
	assert.Len(t, repo.movies, 1)
	assert.Equal(t, StateAwaitingTitleInput, wf.State)
}

func TestAddMovie_ResolveWithoutSearch(t *testing.T) {
	uc, repo := newTestAddMovieUseCase(t, phoneBoothSearcher())

	_, err := uc.Resolve(context.Background(), NewAddMovieWorkflow(), 1817)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, repo.movies)
}

func TestAddMovie_AbandonKeepsResults(t *testing.T) {
	uc, _ := newTestAddMovieUseCase(t, phoneBoothSearcher())
	ctx := context.Background()
	wf := NewAddMovieWorkflow()

	_, err := uc.Search(ctx, wf, "Phone Booth")
	require.NoError(t, err)

	assert.Equal(t, StateSearchResultsPresented, uc.Abandon(ctx, wf))
	assert.Equal(t, StateSearchResultsPresented, wf.State)
	assert.Equal(t, "Phone Booth", wf.Query)

	_, err = uc.Search(ctx, wf, "Heat")
	require.NoError(t, err)
	assert.Equal(t, "Heat", wf.Query)
}

func TestAddMovie_AbandonWithoutSearch(t *testing.T) {
	uc, _ := newTestAddMovieUseCase(t, phoneBoothSearcher())

	wf := &AddMovieWorkflow{}
	assert.Equal(t, StateAwaitingTitleInput, uc.Abandon(context.Background(), wf))
	assert.Empty(t, wf.Query)
}

func TestAddMovie_CompleteIgnoresOtherMovie(t *testing.T) {
	uc, _ := newTestAddMovieUseCase(t, phoneBoothSearcher())
	ctx := context.Background()
	wf := NewAddMovieWorkflow()

	_, err := uc.Search(ctx, wf, "Phone Booth")
	require.NoError(t, err)
	movie, err := uc.Resolve(ctx, wf, 1817)
	require.NoError(t, err)

	uc.Complete(wf, movie.ID+1)
	assert.Equal(t, StateEditPending, wf.State)
}

func TestWorkflow_Transitions(t *testing.T) {
	tests := []struct {
		from WorkflowState
		to   WorkflowState
		ok   bool
	}{
		{"", StateSearchResultsPresented, true},
		{StateAwaitingTitleInput, StateDetailSelected, false},
		{StateSearchResultsPresented, StateDetailSelected, true},
		{StateDetailSelected, StateEditPending, false},
		{StatePersisted, StateEditPending, true},
		{StateEditPending, StateSearchResultsPresented, true},
		{StateEditPending, StateDetailSelected, false},
		{StateDetailSelected, StateAwaitingTitleInput, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.from, tt.to), func(t *testing.T) {
			wf := &AddMovieWorkflow{State: tt.from}
			assert.Equal(t, tt.ok, wf.CanTransition(tt.to))
		})
	}
}
