package server

import (
	"context"
	"fixtured/config"
	"fixtured/ctx"
	"fixtured/daemons/httpd"
	"fixtured/fixtures"
	"fixtured/library/async"
	"github.com/sirupsen/logrus"
	"net"
)

func New(config *config.Config) (*Server, error) {
	files, err := fixtures.NewDir(config.Files.Dir,
		fixtures.WithMarker(config.Files.Marker),
		fixtures.WithNumEntries(config.Files.NumEntries))
	if err != nil {
		return nil, err
	}

	httpServer := httpd.NewServer(config, files)
	return &Server{
		http:     httpServer,
		services: []async.Service{
			httpServer,
		},
	}, nil
}

type Server struct {
	http     *httpd.Server
	services []async.Service
}

// Addr returns the HTTP listener address, or nil when not listening.
func (s *Server) Addr() net.Addr {
	return s.http.Addr()
}

// Run starts all services and blocks until the context is done.
func (s *Server) Run(parent context.Context) error {
	c := ctx.New(parent)

	logrus.Warn("Starting...")
	services := async.Group(s.services...)

	select {
	case <-services.Start():
	case <-c.Done():
		return services.StopAndWait()
	}
	if err := services.StartError(); err != nil {
		return err
	}
	logrus.Warn("Started")

	<-c.Done()
	logrus.Warn("Stopping...")
	err := services.StopAndWait()
	logrus.Warn("Stopped")
	return err
}
