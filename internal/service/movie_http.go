package service

import (
	"context"
	"strconv"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// Operation names identify each API call to middleware.
const (
	OperationMovieServiceListMovies    = "/topmovies.v1.MovieService/ListMovies"
	OperationMovieServiceGetEditForm   = "/topmovies.v1.MovieService/GetEditForm"
	OperationMovieServiceEditMovie     = "/topmovies.v1.MovieService/EditMovie"
	OperationMovieServiceDeleteMovie   = "/topmovies.v1.MovieService/DeleteMovie"
	OperationMovieServiceSearchMovies  = "/topmovies.v1.MovieService/SearchMovies"
	OperationMovieServiceAbandonSearch = "/topmovies.v1.MovieService/AbandonSearch"
	OperationMovieServiceFindMovie     = "/topmovies.v1.MovieService/FindMovie"
	OperationMovieServiceHealthCheck   = "/topmovies.v1.MovieService/HealthCheck"
)

// MovieServiceHTTPServer is the API served over HTTP
type MovieServiceHTTPServer interface {
	ListMovies(context.Context, *ListMoviesRequest) (*ListMoviesReply, error)
	GetEditForm(context.Context, *GetEditFormRequest) (*EditFormReply, error)
	EditMovie(context.Context, *EditMovieRequest) (*MovieItem, error)
	DeleteMovie(context.Context, *DeleteMovieRequest) (*DeleteMovieReply, error)
	SearchMovies(context.Context, *SearchMoviesRequest) (*SearchMoviesReply, error)
	AbandonSearch(context.Context, *AbandonSearchRequest) (*WorkflowReply, error)
	FindMovie(context.Context, *FindMovieRequest) (*FindMovieReply, error)
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckReply, error)
}

// RegisterMovieServiceHTTPServer mounts the API routes on s
func RegisterMovieServiceHTTPServer(s *khttp.Server, srv MovieServiceHTTPServer) {
	r := s.Route("/")
	r.GET("/movies", listMoviesHandler(srv))
	r.POST("/movies/search", searchMoviesHandler(srv))
	r.POST("/movies/search/abandon", abandonSearchHandler(srv))
	r.GET("/movies/find", findMovieHandler(srv))
	r.GET("/movies/{id}/edit", getEditFormHandler(srv))
	r.POST("/movies/{id}/edit", editMovieHandler(srv))
	r.POST("/movies/{id}/delete", deleteMovieHandler(srv))
	r.DELETE("/movies/{id}", deleteMovieHandler(srv))
	r.GET("/healthz", healthCheckHandler(srv))
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, kerrors.BadRequest("INVALID_ID", "invalid "+name+": "+strconv.Quote(raw))
	}
	return id, nil
}

func pathID(ctx khttp.Context) (int64, error) {
	return parseID(ctx.Vars().Get("id"), "movie id")
}

func listMoviesHandler(srv MovieServiceHTTPServer) khttp.HandlerFunc {
	return func(ctx khttp.Context) error {
		var in ListMoviesRequest
		khttp.SetOperation(ctx, OperationMovieServiceListMovies)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListMovies(ctx, req.(*ListMoviesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func getEditFormHandler(srv MovieServiceHTTPServer) khttp.HandlerFunc {
	return func(ctx khttp.Context) error {
		id, err := pathID(ctx)
		if err != nil {
			return err
		}
		in := GetEditFormRequest{ID: id}
		khttp.SetOperation(ctx, OperationMovieServiceGetEditForm)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetEditForm(ctx, req.(*GetEditFormRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func editMovieHandler(srv MovieServiceHTTPServer) khttp.HandlerFunc {
	return func(ctx khttp.Context) error {
		var in EditMovieRequest
		if err := ctx.Bind(&in.Form); err != nil {
			return err
		}
		id, err := pathID(ctx)
		if err != nil {
			return err
		}
		in.ID = id
		khttp.SetOperation(ctx, OperationMovieServiceEditMovie)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.EditMovie(ctx, req.(*EditMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func deleteMovieHandler(srv MovieServiceHTTPServer) khttp.HandlerFunc {
	return func(ctx khttp.Context) error {
		id, err := pathID(ctx)
		if err != nil {
			return err
		}
		in := DeleteMovieRequest{ID: id}
		khttp.SetOperation(ctx, OperationMovieServiceDeleteMovie)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.DeleteMovie(ctx, req.(*DeleteMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func searchMoviesHandler(srv MovieServiceHTTPServer) khttp.HandlerFunc {
	return func(ctx khttp.Context) error {
		var in SearchMoviesRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, OperationMovieServiceSearchMovies)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.SearchMovies(ctx, req.(*SearchMoviesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func abandonSearchHandler(srv MovieServiceHTTPServer) khttp.HandlerFunc {
	return func(ctx khttp.Context) error {
		var in AbandonSearchRequest
		khttp.SetOperation(ctx, OperationMovieServiceAbandonSearch)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.AbandonSearch(ctx, req.(*AbandonSearchRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func findMovieHandler(srv MovieServiceHTTPServer) khttp.HandlerFunc {
	return func(ctx khttp.Context) error {
		remoteID, err := parseID(ctx.Query().Get("id"), "remote id")
		if err != nil {
			return err
		}
		in := FindMovieRequest{RemoteID: remoteID}
		khttp.SetOperation(ctx, OperationMovieServiceFindMovie)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.FindMovie(ctx, req.(*FindMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(303, out)
	}
}

func healthCheckHandler(srv MovieServiceHTTPServer) khttp.HandlerFunc {
	return func(ctx khttp.Context) error {
		var in HealthCheckRequest
		khttp.SetOperation(ctx, OperationMovieServiceHealthCheck)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.HealthCheck(ctx, req.(*HealthCheckRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}
