package service

import (
	"fmt"
	"net/http"

	"github.com/devnitht02/top-movies/internal/biz"
)

// ListMoviesRequest has no parameters: the whole catalog is listed.
type ListMoviesRequest struct{}

// MovieItem is one catalog entry in API replies
type MovieItem struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Year        int      `json:"year,omitempty"`
	Description string   `json:"description"`
	Rating      *float64 `json:"rating"`
	Ranking     *int     `json:"ranking"`
	Review      *string  `json:"review"`
	ImageURL    string   `json:"image_url"`
}

// ListMoviesReply lists movies in ascending rating order
type ListMoviesReply struct {
	Items []*MovieItem `json:"items"`
}

// GetEditFormRequest identifies the movie to edit
type GetEditFormRequest struct {
	ID int64 `json:"id"`
}

// EditFormReply carries the current values as form defaults
type EditFormReply struct {
	ID int64 `json:"id"`
	// Pending is set when the movie was just added and still needs a rating.
	Pending bool           `json:"pending"`
	Form    *biz.EditInput `json:"form"`
}

// EditMovieRequest is a submitted edit form
type EditMovieRequest struct {
	ID   int64         `json:"id"`
	Form biz.EditInput `json:"form"`
}

// DeleteMovieRequest identifies the movie to delete
type DeleteMovieRequest struct {
	ID int64 `json:"id"`
}

// DeleteMovieReply confirms a deletion
type DeleteMovieReply struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// SearchMoviesRequest is the add-movie title form
type SearchMoviesRequest struct {
	Title string `json:"title"`
}

// SearchMoviesReply lists remote candidates to pick from
type SearchMoviesReply struct {
	Query      string           `json:"query"`
	Candidates []*biz.Candidate `json:"candidates"`
}

// AbandonSearchRequest backs out of the candidate list
type AbandonSearchRequest struct{}

// WorkflowReply reports where the add-movie workflow stands
type WorkflowReply struct {
	State string `json:"state"`
	Query string `json:"query,omitempty"`
}

// FindMovieRequest selects one remote candidate
type FindMovieRequest struct {
	RemoteID int64 `json:"id"`
}

// FindMovieReply redirects to the edit view of the movie just added
type FindMovieReply struct {
	ID       int64  `json:"id"`
	Location string `json:"location"`
}

// Redirect implements the response encoder's redirect hook.
func (r *FindMovieReply) Redirect() (string, int) {
	return r.Location, http.StatusSeeOther
}

// HealthCheckRequest has no parameters
type HealthCheckRequest struct{}

// HealthCheckReply reports liveness
type HealthCheckReply struct {
	Status string `json:"status"`
}

func editPath(id int64) string {
	return fmt.Sprintf("/movies/%d/edit", id)
}
