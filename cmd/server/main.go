package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/spectralens/commonground/internal/biz"
	"github.com/spectralens/commonground/internal/conf"
	"github.com/spectralens/commonground/internal/data"
	"github.com/spectralens/commonground/internal/server"
	"github.com/spectralens/commonground/internal/service"
	"github.com/spectralens/commonground/pkg/generator"
	pkglogger "github.com/spectralens/commonground/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the service name.
	Name string = "commonground"
	// Version is the service version.
	Version string
	// flagconf is the config file path flag.
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	if bc.Log != nil {
		if err := pkglogger.Init(bc.Log.Level, bc.Log.File); err != nil {
			panic(err)
		}
	}

	app, cleanup, err := initApp(&bc, logger)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}

// initApp wires the kratos application by hand: conf -> data -> repos ->
// generator client -> use cases -> service -> HTTP server.
func initApp(bc *conf.Bootstrap, logger log.Logger) (*kratos.App, func(), error) {
	d, cleanup, err := data.NewData(bc.Data, logger)
	if err != nil {
		return nil, nil, err
	}

	gen, err := generator.New(context.Background(), generatorConfig(bc.Generator))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	topicRepo := data.NewTopicRepo(d, logger)
	fetcher := data.NewArticleFetcher(logger)

	ucComparison := biz.NewComparisonUseCase(gen, logger)
	ucTopic := biz.NewTopicUseCase(gen, topicRepo, fetcher, logger)

	svc := service.NewComparisonService(ucComparison, ucTopic, logger)
	srv := server.NewHTTPServer(bc.Server, svc, logger)

	return newApp(logger, srv), cleanup, nil
}

func generatorConfig(c *conf.Generator) generator.Config {
	if c == nil {
		return generator.Config{}
	}
	cfg := generator.Config{
		BaseURL: c.BaseUrl,
		APIKey:  c.ApiKey,
		Model:   c.Model,
	}
	if c.Timeout > 0 {
		cfg.Timeout = time.Duration(c.Timeout) * time.Second
	}
	if c.Concurrency != nil {
		cfg.QPS = int(c.Concurrency.Qps)
		cfg.RPM = int(c.Concurrency.Rpm)
	}
	return cfg
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}
