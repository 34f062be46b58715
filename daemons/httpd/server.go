package httpd

import (
	"context"
	"fixtured/config"
	"fixtured/ctx"
	"fixtured/fixtures"
	"fixtured/library/async"
	"fixtured/library/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"net"
	"sync"
)

type Server struct {
	async.Service
	config *config.Config
	files  *fixtures.Dir

	mu   sync.Mutex // Guards addr.
	addr net.Addr
}

func NewServer(config *config.Config, files *fixtures.Dir) *Server {
	s := &Server{
		config: config,
		files:  files,
	}
	s.Service = async.NewService(s.serveHTTP)
	return s
}

// Addr returns the bound listener address, or nil when the server is not listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *Server) setAddr(addr net.Addr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addr = addr
}

// App returns a new fiber application with all middleware and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "fixtured",
		DisableStartupMessage: true,
		CaseSensitive:         true,
		StrictRouting:         true,
		UnescapePath:          true,
		ErrorHandler:          s.errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(s.contextMiddleware)
	app.Use(s.loggerMiddleware)
	app.Use(s.errorMiddleware)

	s.fileRoutes(app)
	return app
}

// Run loop

func (s *Server) serveHTTP(parent context.Context, started chan<- struct{}) error {
	ctx := ctx.New(parent)
	defer logrus.WithContext(ctx).Info("HTTP stopped")

	listen := s.config.Http.Listen
	ln, err := net.Listen("tcp", listen)
	if err != nil {
		logrus.WithContext(ctx).Errorf("Failed to listen to %s, err=%v", listen, err)
		return err
	}
	defer s.setAddr(nil)
	s.setAddr(ln.Addr())

	app := s.App()
	errorChan := make(chan error, 1)
	go func() {
		defer func() {
			if e := recover(); e != nil {
				logrus.WithContext(ctx).Warnf("Panic in HTTP, err=%v", e)

				select {
				case errorChan <- errs.Recovered(e):
				default:
				}
			}
		}()
		err := app.Listener(ln)
		logrus.WithContext(ctx).WithError(err).Debug("HTTP server exited")

		select {
		case errorChan <- err:
		default:
		}
	}()

	logrus.WithContext(ctx).Infof("HTTP listening to %v, dir=%v", ln.Addr(), s.files.Root())
	close(started)

	select {
	case err := <-errorChan:
		logrus.WithContext(ctx).Errorf("HTTP server failed, err=%v", err)
		ln.Close()
		return err
	case <-ctx.Done():
	}
	logrus.WithContext(ctx).Info("Stopping HTTP...")

	timeout := s.config.Http.ShutdownTimeout
	if timeout > 0 {
		err = app.ShutdownWithTimeout(timeout)
	} else {
		err = app.Shutdown()
	}
	// Shutdown does not see a listener which has not been served yet.
	ln.Close()
	return err
}
