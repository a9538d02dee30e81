package biz

import (
	"context"
	"errors"
)

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }
func stringPtr(v string) *string    { return &v }

// SeedMovies is the starter catalog written by the seed command.
var SeedMovies = []Movie{
	{
		Title:       "Phone Booth",
		Year:        2002,
		Description: "Publicist Stuart Shepard finds himself trapped in a phone booth, pinned down by an extortionist's sniper rifle. Unable to leave or receive outside help, Stuart's negotiation with the caller leads to a jaw-dropping climax.",
		Rating:      float64Ptr(7.3),
		Ranking:     intPtr(10),
		Review:      stringPtr("My favourite character was the caller."),
		ImageURL:    "https://image.tmdb.org/t/p/w500/tjrX2oWRCM3Tvarz38zlZM7Uc10.jpg",
	},
	{
		Title:       "Avatar The Way of Water",
		Year:        2022,
		Description: "Set more than a decade after the events of the first film, learn the story of the Sully family (Jake, Neytiri, and their kids), the trouble that follows them, the lengths they go to keep each other safe, the battles they fight to stay alive, and the tragedies they endure.",
		Rating:      float64Ptr(7.3),
		Ranking:     intPtr(9),
		Review:      stringPtr("I liked the water."),
		ImageURL:    "https://image.tmdb.org/t/p/w500/t6HIqrRAclMCA60NsSmeqe9RmNV.jpg",
	},
}

// Seed inserts the given movies, skipping titles already in the catalog.
// It returns how many were created.
func (uc *MovieUseCase) Seed(ctx context.Context, movies []Movie) (int, error) {
	created := 0
	for i := range movies {
		movie := movies[i]
		if _, err := uc.CreateMovie(ctx, &movie); err != nil {
			if errors.Is(err, ErrDuplicateTitle) {
				uc.log.Infof("seed: %q already present", movie.Title)
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
