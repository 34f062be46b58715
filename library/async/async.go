package async

// Starter starts a background process and reports when it is up.
type Starter interface {
	Start() <-chan struct{}
	StartAndWait() error
	Started() <-chan struct{}
	StartError() error
}

// Stopper stops a background process and reports when it is down.
type Stopper interface {
	Stop() <-chan struct{}
	StopAndWait() error
	Stopped() <-chan struct{}
	StopError() error
}
