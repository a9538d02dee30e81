package biz

import (
	"context"
	"time"
)

// Movie domain model
type Movie struct {
	ID          int64
	Title       string
	Year        int
	Description string
	Rating      *float64
	Ranking     *int
	Review      *string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Candidate is one search hit from the remote movie database
type Candidate struct {
	RemoteID      int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title,omitempty"`
	ReleaseDate   string  `json:"release_date,omitempty"`
	Overview      string  `json:"overview,omitempty"`
	PosterPath    string  `json:"poster_path,omitempty"`
	VoteAverage   float64 `json:"vote_average,omitempty"`
}

// Detail is the remote payload for one title, already mapped to catalog fields
type Detail struct {
	RemoteID    int64
	Title       string
	Year        int
	Description string
	ImageURL    string
}

// EditInput is a submitted edit form. Pointers distinguish absent fields from zero values.
type EditInput struct {
	Title       string   `json:"title" validate:"required,max=250"`
	Year        *int     `json:"year" validate:"required,gt=0"`
	Description string   `json:"description" validate:"required,max=500"`
	Rating      *float64 `json:"rating" validate:"required,gt=0"`
	Ranking     *int     `json:"ranking" validate:"required,gt=0"`
	Review      string   `json:"review" validate:"max=250"`
	ImageURL    string   `json:"image_url" validate:"required,max=250"`
}

// EditValues is a validated EditInput
type EditValues struct {
	Title       string
	Year        int
	Description string
	Rating      float64
	Ranking     int
	Review      *string
	ImageURL    string
}

// MovieRepo defines the repository interface for the catalog
type MovieRepo interface {
	CreateMovie(ctx context.Context, movie *Movie) error
	GetMovie(ctx context.Context, id int64) (*Movie, error)
	ListMovies(ctx context.Context) ([]*Movie, error)
	UpdateMovie(ctx context.Context, movie *Movie) error
	DeleteMovie(ctx context.Context, id int64) error
	SaveRankings(ctx context.Context, rankings map[int64]int) error
}

// MovieSearcher defines the interface for the remote movie database client
type MovieSearcher interface {
	SearchByTitle(ctx context.Context, title string) ([]*Candidate, error)
	FetchDetail(ctx context.Context, remoteID int64) (*Detail, error)
}
