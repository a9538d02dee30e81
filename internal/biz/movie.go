package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
)

// MovieUseCase handles the catalog lifecycle: listing with ranking
// recomputation, editing and deleting.
type MovieUseCase struct {
	repo MovieRepo
	log  *log.Helper
}

// NewMovieUseCase creates a new MovieUseCase instance
func NewMovieUseCase(repo MovieRepo, logger log.Logger) *MovieUseCase {
	return &MovieUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// CreateMovie persists a new movie and returns it with its assigned id
func (uc *MovieUseCase) CreateMovie(ctx context.Context, movie *Movie) (*Movie, error) {
	if err := uc.repo.CreateMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	uc.log.WithContext(ctx).Infof("movie %d created: %s", movie.ID, movie.Title)
	return movie, nil
}

// GetMovie retrieves a movie by its id
func (uc *MovieUseCase) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	movie, err := uc.repo.GetMovie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

// ListMovies returns the whole catalog ordered by ascending rating and writes
// the recomputed ranking of every movie back to storage before returning.
//
// Listing is deliberately a read that writes: ranking is a projection of the
// rating order at the time of the last listing, so a ranking set through
// EditMovie only survives until the next call here.
func (uc *MovieUseCase) ListMovies(ctx context.Context) ([]*Movie, error) {
	movies, err := uc.repo.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	rankings := AssignRankings(movies)
	if len(rankings) > 0 {
		if err := uc.repo.SaveRankings(ctx, rankings); err != nil {
			return nil, fmt.Errorf("failed to save rankings: %w", err)
		}
	}

	return movies, nil
}

// EditForm returns the current values of a movie as edit form defaults
func (uc *MovieUseCase) EditForm(ctx context.Context, id int64) (*EditInput, error) {
	movie, err := uc.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	return editInputFrom(movie), nil
}

// EditMovie validates the submission and overwrites every mutable field.
// Nothing is written when validation fails.
func (uc *MovieUseCase) EditMovie(ctx context.Context, id int64, in EditInput) (*Movie, error) {
	movie, err := uc.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	values, fields := ValidateEdit(in)
	if fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	rating := values.Rating
	ranking := values.Ranking
	movie.Title = values.Title
	movie.Year = values.Year
	movie.Description = values.Description
	movie.Rating = &rating
	movie.Ranking = &ranking
	movie.Review = values.Review
	movie.ImageURL = values.ImageURL

	if err := uc.repo.UpdateMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}
	return movie, nil
}

// DeleteMovie removes a movie. Deleting an unknown id reports ErrMovieNotFound.
func (uc *MovieUseCase) DeleteMovie(ctx context.Context, id int64) error {
	if err := uc.repo.DeleteMovie(ctx, id); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	uc.log.WithContext(ctx).Infof("movie %d deleted", id)
	return nil
}
