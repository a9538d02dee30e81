//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/devnitht02/top-movies/internal/biz"
	"github.com/devnitht02/top-movies/internal/conf"
	"github.com/devnitht02/top-movies/internal/data"
	"github.com/devnitht02/top-movies/internal/metrics"
	"github.com/devnitht02/top-movies/internal/server"
	"github.com/devnitht02/top-movies/internal/service"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init kratos application.
func wireApp(*conf.Server, *conf.Data, *conf.TMDB, *conf.Session, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(server.ProviderSet, data.ProviderSet, biz.ProviderSet, service.ProviderSet, metrics.ProviderSet, newApp))
}

// wireSeeder builds the catalog use case for the seed command.
func wireSeeder(*conf.Data, log.Logger) (*biz.MovieUseCase, func(), error) {
	panic(wire.Build(data.NewData, data.NewMovieRepo, metrics.ProviderSet, biz.NewMovieUseCase))
}
