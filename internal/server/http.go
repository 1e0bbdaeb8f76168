package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/spectralens/commonground/internal/conf"
	"github.com/spectralens/commonground/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.ComparisonService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	route := srv.Route("/api/v1")
	route.POST("/comparison", s.Compare)
	route.POST("/comparison/analytical", s.Analytical)
	route.POST("/articles/perspective", s.Perspective)
	route.POST("/topics/generate", s.GenerateTopic)
	route.GET("/topics", s.ListTopics)
	route.GET("/topics/{id}", s.GetTopic)

	return srv
}
