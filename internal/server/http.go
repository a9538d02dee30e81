package server

import (
	"net/http"

	"github.com/devnitht02/top-movies/internal/conf"
	"github.com/devnitht02/top-movies/internal/metrics"
	"github.com/devnitht02/top-movies/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(NewHTTPServer)

// redirector is implemented by replies that send the client elsewhere
type redirector interface {
	Redirect() (string, int)
}

// Custom response encoder to turn redirect replies into real redirects
func customResponseEncoder(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if rd, ok := v.(redirector); ok {
		url, code := rd.Redirect()
		http.Redirect(w, r, url, code)
		return nil
	}

	// Use default encoder for the response body
	return khttp.DefaultResponseEncoder(w, r, v)
}

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Server, movieSvc *service.MovieService, sessions *service.WorkflowStore, m *metrics.Metrics, logger log.Logger) *khttp.Server {
	var opts = []khttp.ServerOption{
		khttp.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
			MetricsMiddleware(m),
			WorkflowSessionMiddleware(sessions, logger),
		),
		khttp.ResponseEncoder(customResponseEncoder),
	}
	if c.Http.Network != "" {
		opts = append(opts, khttp.Network(c.Http.Network))
	}
	if c.Http.Addr != "" {
		opts = append(opts, khttp.Address(c.Http.Addr))
	}
	if c.Http.Timeout.AsDuration() > 0 {
		opts = append(opts, khttp.Timeout(c.Http.Timeout.AsDuration()))
	}
	srv := khttp.NewServer(opts...)
	if reg := m.Registry(); reg != nil {
		srv.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	service.RegisterMovieServiceHTTPServer(srv, movieSvc)
	return srv
}
