package async

import (
	"context"
	"go.uber.org/multierr"
	"sync"
)

type Service interface {
	Starter
	Stopper
}

// ServiceLoop runs until ctx is done. It closes started once it is ready to
// serve. An error returned before started is closed is a start error,
// otherwise it is a stop error.
type ServiceLoop func(ctx context.Context, started chan<- struct{}) error

func NewService(loops ...ServiceLoop) Service {
	if len(loops) == 0 {
		panic("async: empty service loops")
	}
	if len(loops) == 1 {
		return newService(loops[0])
	}

	services := make([]Service, len(loops))
	for i, loop := range loops {
		services[i] = newService(loop)
	}
	return Group(services...)
}

func newService(loop ServiceLoop) Service {
	if loop == nil {
		panic("async: nil service loop")
	}

	return &service{
		loop:    loop,
		started: make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

type service struct {
	loop ServiceLoop
	mu   sync.Mutex

	running  bool
	done     bool // Stopped before it was started.
	cancel   context.CancelFunc
	startErr error
	stopErr  error

	started chan struct{}
	stopped chan struct{}
}

func (s *service) Start() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running && !s.done {
		var ctx context.Context
		ctx, s.cancel = context.WithCancel(context.Background())
		s.running = true
		go s.main(ctx, s.started, s.stopped)
	}

	return s.started
}

func (s *service) Started() <-chan struct{} {
	return s.started
}

func (s *service) StartError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startErr
}

func (s *service) StartAndWait() error {
	<-s.Start()
	return s.StartError()
}

func (s *service) Stop() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.running:
		s.cancel()
	case !s.done:
		// Not started.
		s.done = true
		close(s.started)
		close(s.stopped)
	}

	return s.stopped
}

func (s *service) Stopped() <-chan struct{} {
	return s.stopped
}

func (s *service) StopError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopErr
}

func (s *service) StopAndWait() error {
	<-s.Stop()
	return s.StopError()
}

func (s *service) main(ctx context.Context, started chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	defer closeOrDefault(started)

	err := s.loop(ctx, started)

	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-started:
		s.stopErr = err
	default:
		s.startErr = err
	}
}

func closeOrDefault(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}

// Group starts services together and stops them together. The group fails to
// start when any service fails to start, and its stop error combines the stop
// errors of all services.
func Group(services ...Service) Service {
	return newService(func(ctx context.Context, started chan<- struct{}) (err error) {
		defer func() {
			for _, s := range services {
				s.Stop()
			}
			for _, s := range services {
				<-s.Stopped()
			}
			if err != nil {
				return
			}

			for _, s := range services {
				err = multierr.Append(err, s.StopError())
			}
		}()

		for _, s := range services {
			s.Start()
		}
		for _, s := range services {
			select {
			case <-s.Started():
			case <-ctx.Done():
				return nil
			}

			err = multierr.Append(err, s.StartError())
		}
		if err != nil {
			return err
		}

		close(started)
		<-ctx.Done()
		return nil
	})
}
