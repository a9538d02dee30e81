package service

import (
	"context"
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/devnitht02/top-movies/internal/biz"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewMovieService, NewWorkflowStore)

// MovieService implements the catalog HTTP API
type MovieService struct {
	movieUC *biz.MovieUseCase
	addUC   *biz.AddMovieUseCase
	log     *log.Helper
}

// NewMovieService creates a new MovieService
func NewMovieService(movieUC *biz.MovieUseCase, addUC *biz.AddMovieUseCase, logger log.Logger) *MovieService {
	return &MovieService{
		movieUC: movieUC,
		addUC:   addUC,
		log:     log.NewHelper(logger),
	}
}

// workflow returns the request's add-movie workflow, or a detached fresh one
// when the transport did not attach any.
func workflow(ctx context.Context) *biz.AddMovieWorkflow {
	if wf, ok := WorkflowFromContext(ctx); ok {
		return wf
	}
	return biz.NewAddMovieWorkflow()
}

// ListMovies implements the list view; every call recomputes rankings
func (s *MovieService) ListMovies(ctx context.Context, req *ListMoviesRequest) (*ListMoviesReply, error) {
	movies, err := s.movieUC.ListMovies(ctx)
	if err != nil {
		return nil, s.toAPIError(ctx, err)
	}

	reply := &ListMoviesReply{
		Items: make([]*MovieItem, 0, len(movies)),
	}
	for _, movie := range movies {
		reply.Items = append(reply.Items, movieToItem(movie))
	}
	return reply, nil
}

// GetEditForm implements the edit view
func (s *MovieService) GetEditForm(ctx context.Context, req *GetEditFormRequest) (*EditFormReply, error) {
	form, err := s.movieUC.EditForm(ctx, req.ID)
	if err != nil {
		return nil, s.toAPIError(ctx, err)
	}

	wf := workflow(ctx)
	return &EditFormReply{
		ID:      req.ID,
		Pending: wf.State == biz.StateEditPending && wf.MovieID == req.ID,
		Form:    form,
	}, nil
}

// EditMovie implements the edit submission
func (s *MovieService) EditMovie(ctx context.Context, req *EditMovieRequest) (*MovieItem, error) {
	movie, err := s.movieUC.EditMovie(ctx, req.ID, req.Form)
	if err != nil {
		return nil, s.toAPIError(ctx, err)
	}

	s.addUC.Complete(workflow(ctx), movie.ID)
	return movieToItem(movie), nil
}

// DeleteMovie implements the delete action
func (s *MovieService) DeleteMovie(ctx context.Context, req *DeleteMovieRequest) (*DeleteMovieReply, error) {
	if err := s.movieUC.DeleteMovie(ctx, req.ID); err != nil {
		return nil, s.toAPIError(ctx, err)
	}
	return &DeleteMovieReply{ID: req.ID, Deleted: true}, nil
}

// SearchMovies implements the add-movie title search
func (s *MovieService) SearchMovies(ctx context.Context, req *SearchMoviesRequest) (*SearchMoviesReply, error) {
	wf := workflow(ctx)
	candidates, err := s.addUC.Search(ctx, wf, req.Title)
	if err != nil {
		return nil, s.toAPIError(ctx, err)
	}

	if candidates == nil {
		candidates = []*biz.Candidate{}
	}
	return &SearchMoviesReply{
		Query:      wf.Query,
		Candidates: candidates,
	}, nil
}

// AbandonSearch leaves the candidate list without picking a movie
func (s *MovieService) AbandonSearch(ctx context.Context, req *AbandonSearchRequest) (*WorkflowReply, error) {
	wf := workflow(ctx)
	state := s.addUC.Abandon(ctx, wf)
	return &WorkflowReply{
		State: string(state),
		Query: wf.Query,
	}, nil
}

// FindMovie implements the add-movie resolve step and redirects to the edit view
func (s *MovieService) FindMovie(ctx context.Context, req *FindMovieRequest) (*FindMovieReply, error) {
	movie, err := s.addUC.Resolve(ctx, workflow(ctx), req.RemoteID)
	if err != nil {
		return nil, s.toAPIError(ctx, err)
	}

	return &FindMovieReply{
		ID:       movie.ID,
		Location: editPath(movie.ID),
	}, nil
}

// HealthCheck implements health check
func (s *MovieService) HealthCheck(ctx context.Context, req *HealthCheckRequest) (*HealthCheckReply, error) {
	return &HealthCheckReply{
		Status: "ok",
	}, nil
}

// toAPIError maps biz errors to Kratos errors carrying the HTTP status
func (s *MovieService) toAPIError(ctx context.Context, err error) error {
	var verr *biz.ValidationError
	switch {
	case errors.As(err, &verr):
		return kerrors.New(422, "VALIDATION_FAILED", verr.Error()).WithMetadata(verr.Fields)
	case errors.Is(err, biz.ErrMovieNotFound):
		return kerrors.NotFound("MOVIE_NOT_FOUND", "movie not found")
	case errors.Is(err, biz.ErrDuplicateTitle):
		return kerrors.New(422, "DUPLICATE_TITLE", biz.ErrDuplicateTitle.Error())
	case errors.Is(err, biz.ErrRemoteDataIncomplete):
		return kerrors.NotFound("TITLE_NOT_FOUND", "Error: Movie title not found in the API response")
	case errors.Is(err, biz.ErrRemoteUnavailable):
		return kerrors.ServiceUnavailable("REMOTE_UNAVAILABLE", "the movie database could not be reached, please try again")
	case errors.Is(err, biz.ErrInvalidTransition):
		return kerrors.Conflict("WORKFLOW_STATE", "search for a title before selecting a movie")
	default:
		s.log.WithContext(ctx).Errorf("unexpected error: %v", err)
		return kerrors.InternalServer("INTERNAL", "internal error")
	}
}

// Helper functions

func movieToItem(movie *biz.Movie) *MovieItem {
	return &MovieItem{
		ID:          movie.ID,
		Title:       movie.Title,
		Year:        movie.Year,
		Description: movie.Description,
		Rating:      movie.Rating,
		Ranking:     movie.Ranking,
		Review:      movie.Review,
		ImageURL:    movie.ImageURL,
	}
}
