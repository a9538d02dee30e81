package main

import (
	"context"
	"os"

	"github.com/devnitht02/top-movies/internal/biz"
	"github.com/devnitht02/top-movies/internal/conf"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/spf13/cobra"

	_ "go.uber.org/automaxprocs"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name = "topmovies"
	// Version is the version of the compiled software.
	Version string
	// flagconf is the config path.
	flagconf string

	id, _ = os.Hostname()
)

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(
			hs,
		),
	)
}

func loadConfig(path string) (*conf.Bootstrap, func(), error) {
	c := config.New(
		config.WithSource(
			file.NewSource(path),
			env.NewSource("MOVIE_"),
		),
	)
	if err := c.Load(); err != nil {
		c.Close()
		return nil, nil, err
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		c.Close()
		return nil, nil, err
	}
	bc.Defaults()
	return &bc, func() { c.Close() }, nil
}

func newLogger() log.Logger {
	return log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
}

func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          Name,
		Short:        "Personal top movies catalog",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	rootCmd.PersistentFlags().StringVar(&flagconf, "conf", "../../configs", "config path, eg: --conf config.yaml")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the sample movies into the catalog",
			RunE: func(cmd *cobra.Command, args []string) error {
				return seed(cmd.Context())
			},
		},
	)
	return rootCmd
}

func serve() error {
	bc, closeConfig, err := loadConfig(flagconf)
	if err != nil {
		return err
	}
	defer closeConfig()

	logger := newLogger()
	app, cleanup, err := wireApp(bc.Server, bc.Data, bc.TMDB, bc.Session, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	// start and wait for stop signal
	return app.Run()
}

func seed(ctx context.Context) error {
	bc, closeConfig, err := loadConfig(flagconf)
	if err != nil {
		return err
	}
	defer closeConfig()

	logger := newLogger()
	uc, cleanup, err := wireSeeder(bc.Data, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := uc.Seed(ctx, biz.SeedMovies)
	if err != nil {
		return err
	}
	log.NewHelper(logger).Infof("seeded %d movies", n)
	return nil
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
