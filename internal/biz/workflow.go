package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
)

// WorkflowState is a step of the add-movie workflow
type WorkflowState string

const (
	StateAwaitingTitleInput     WorkflowState = "awaiting_title_input"
	StateSearchResultsPresented WorkflowState = "search_results_presented"
	StateDetailSelected         WorkflowState = "detail_selected"
	StatePersisted              WorkflowState = "persisted"
	StateEditPending            WorkflowState = "edit_pending"
)

// transitions lists the forward edges of the workflow. Falling back to
// StateAwaitingTitleInput is always allowed.
var transitions = map[WorkflowState][]WorkflowState{
	StateAwaitingTitleInput:     {StateSearchResultsPresented},
	StateSearchResultsPresented: {StateSearchResultsPresented, StateDetailSelected},
	StateDetailSelected:         {StatePersisted},
	StatePersisted:              {StateEditPending},
	StateEditPending:            {StateSearchResultsPresented},
}

// AddMovieWorkflow is the state of one user's add-movie flow. It is plain
// data so the transport layer can carry it between requests.
type AddMovieWorkflow struct {
	State   WorkflowState
	Query   string
	MovieID int64
}

// NewAddMovieWorkflow returns a workflow waiting for a title.
func NewAddMovieWorkflow() *AddMovieWorkflow {
	return &AddMovieWorkflow{State: StateAwaitingTitleInput}
}

func (w *AddMovieWorkflow) current() WorkflowState {
	if w.State == "" {
		return StateAwaitingTitleInput
	}
	return w.State
}

// CanTransition reports whether the workflow may move to the given state.
func (w *AddMovieWorkflow) CanTransition(to WorkflowState) bool {
	if to == StateAwaitingTitleInput {
		return true
	}
	for _, next := range transitions[w.current()] {
		if next == to {
			return true
		}
	}
	return false
}

func (w *AddMovieWorkflow) transition(to WorkflowState) error {
	if !w.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, w.current(), to)
	}
	w.State = to
	return nil
}

// Reset returns the workflow to StateAwaitingTitleInput.
func (w *AddMovieWorkflow) Reset() {
	w.State = StateAwaitingTitleInput
	w.Query = ""
	w.MovieID = 0
}

// AddMovieUseCase drives the add-movie workflow: search the remote database,
// resolve one candidate to a full record and persist it for editing.
type AddMovieUseCase struct {
	searcher MovieSearcher
	movies   *MovieUseCase
	log      *log.Helper
}

// NewAddMovieUseCase creates a new AddMovieUseCase instance
func NewAddMovieUseCase(searcher MovieSearcher, movies *MovieUseCase, logger log.Logger) *AddMovieUseCase {
	return &AddMovieUseCase{
		searcher: searcher,
		movies:   movies,
		log:      log.NewHelper(logger),
	}
}

// Search looks up candidates for a free-text title. A remote failure leaves
// the workflow waiting for a title.
func (uc *AddMovieUseCase) Search(ctx context.Context, wf *AddMovieWorkflow, title string) ([]*Candidate, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Fields: FieldErrors{"title": "this field is required"}}
	}
	if !wf.CanTransition(StateSearchResultsPresented) {
		return nil, fmt.Errorf("%w: cannot search from %s", ErrInvalidTransition, wf.current())
	}

	candidates, err := uc.searcher.SearchByTitle(ctx, title)
	if err != nil {
		wf.Reset()
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}

	if err := wf.transition(StateSearchResultsPresented); err != nil {
		return nil, err
	}
	wf.Query = title
	wf.MovieID = 0
	return candidates, nil
}

// Abandon backs out of the candidate list without picking one. The presented
// results stay current, so the user may pick again or start a new search.
// It reports the state the workflow is left in.
func (uc *AddMovieUseCase) Abandon(ctx context.Context, wf *AddMovieWorkflow) WorkflowState {
	if wf.current() == StateSearchResultsPresented {
		uc.log.WithContext(ctx).Debugf("search for %q abandoned", wf.Query)
	}
	return wf.current()
}

// Resolve fetches the full record of one candidate and stores it as a partial
// movie. On success the workflow waits for the user to edit the new movie. Any
// failure ends the workflow without creating a record.
func (uc *AddMovieUseCase) Resolve(ctx context.Context, wf *AddMovieWorkflow, remoteID int64) (*Movie, error) {
	if err := wf.transition(StateDetailSelected); err != nil {
		return nil, err
	}

	detail, err := uc.searcher.FetchDetail(ctx, remoteID)
	if err != nil {
		wf.Reset()
		if errors.Is(err, ErrRemoteDataIncomplete) {
			uc.log.WithContext(ctx).Warnf("remote movie %d has no title", remoteID)
		}
		return nil, fmt.Errorf("failed to fetch movie detail: %w", err)
	}

	movie, err := uc.movies.CreateMovie(ctx, &Movie{
		Title:       detail.Title,
		Year:        detail.Year,
		Description: detail.Description,
		ImageURL:    detail.ImageURL,
	})
	if err != nil {
		wf.Reset()
		return nil, err
	}

	if err := wf.transition(StatePersisted); err != nil {
		return nil, err
	}
	if err := wf.transition(StateEditPending); err != nil {
		return nil, err
	}
	wf.MovieID = movie.ID
	return movie, nil
}

// Complete ends the workflow once the pending movie has been edited.
func (uc *AddMovieUseCase) Complete(wf *AddMovieWorkflow, movieID int64) {
	if wf.current() == StateEditPending && wf.MovieID == movieID {
		wf.Reset()
	}
}
