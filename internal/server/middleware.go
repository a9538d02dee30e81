package server

import (
	"context"
	"net/http"

	"github.com/devnitht02/top-movies/internal/metrics"
	"github.com/devnitht02/top-movies/internal/service"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// workflowOperations are the operations that read or advance the add-movie workflow
var workflowOperations = map[string]bool{
	service.OperationMovieServiceSearchMovies:  true,
	service.OperationMovieServiceAbandonSearch: true,
	service.OperationMovieServiceFindMovie:     true,
	service.OperationMovieServiceGetEditForm:   true,
	service.OperationMovieServiceEditMovie:     true,
}

// cookieSink captures the Set-Cookie header written by the session store.
type cookieSink struct {
	header http.Header
}

func (c *cookieSink) Header() http.Header         { return c.header }
func (c *cookieSink) Write(b []byte) (int, error) { return len(b), nil }
func (c *cookieSink) WriteHeader(int)             {}

// WorkflowSessionMiddleware loads the add-movie workflow from the session
// cookie for workflow operations and writes it back after the handler ran,
// whether it succeeded or not: failed steps reset the workflow too.
func WorkflowSessionMiddleware(store *service.WorkflowStore, logger log.Logger) middleware.Middleware {
	l := log.NewHelper(logger)
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			tr, ok := transport.FromServerContext(ctx)
			if !ok || !workflowOperations[tr.Operation()] {
				return handler(ctx, req)
			}
			ht, ok := tr.(khttp.Transporter)
			if !ok {
				return handler(ctx, req)
			}

			r := ht.Request()
			wf := store.Load(r)
			reply, err := handler(service.NewWorkflowContext(ctx, wf), req)

			sink := &cookieSink{header: make(http.Header)}
			if serr := store.Save(r, sink, wf); serr != nil {
				l.WithContext(ctx).Errorf("failed to save workflow session: %v", serr)
			} else if cookie := sink.header.Get("Set-Cookie"); cookie != "" {
				tr.ReplyHeader().Set("Set-Cookie", cookie)
			}

			return reply, err
		}
	}
}

// MetricsMiddleware counts handled operations by status code
func MetricsMiddleware(m *metrics.Metrics) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			reply, err := handler(ctx, req)

			if tr, ok := transport.FromServerContext(ctx); ok {
				code := http.StatusOK
				if err != nil {
					code = int(errors.FromError(err).Code)
				}
				m.ObserveRequest(tr.Operation(), code)
			}

			return reply, err
		}
	}
}
