package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

//go:generate mockgen -destination=./app_mock.go -package=app -source=app.go

// Dependency is a long-lived part of the dashboard process the App starts and stops.
type Dependency interface {
	// Start is anything a dependency needs to do before it's ready to be used
	Start() error
	// Stop is anything a dependency needs to do before it's ready to be stopped
	Stop() error
	// Name is the name of the dependency. It is used for logging and identification purposes, only.
	Name() string
}

type App struct {
	serviceName string
	deps        []Dependency
	// onReady runs once every dependency has started.
	onReady func()
	// depFailChan signals that a dependency failed to start.
	depFailChan  chan error
	osSignalChan chan os.Signal
	runCalled    *atomic.Bool
	stopCalled   *atomic.Bool
	stopTimeout  time.Duration
}

type Config struct {
	ServiceName string
	StopTimeout time.Duration
	// OnReady is called after all dependencies started successfully.
	OnReady func()
}

func (c *Config) validate() error {
	var errs []error
	if c.ServiceName == "" {
		errs = append(errs, errors.New("service name is required"))
	}
	if c.StopTimeout == 0 {
		errs = append(errs, errors.New("stop timeout is required"))
	}
	return errors.Join(errs...)
}

// CreateApp creates a new application with the provided dependencies.
func CreateApp(cfg *Config, deps ...Dependency) (*App, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &App{
		serviceName:  cfg.ServiceName,
		deps:         deps,
		onReady:      cfg.OnReady,
		stopTimeout:  cfg.StopTimeout,
		runCalled:    &atomic.Bool{},
		stopCalled:   &atomic.Bool{},
		depFailChan:  make(chan error, len(deps)),
		osSignalChan: make(chan os.Signal, 1),
	}, nil
}

// Run starts every dependency in order and blocks until ctx is cancelled, a dependency
// fails to start, or the process receives SIGINT/SIGTERM. It then stops the started
// dependencies in reverse order.
func (a *App) Run(ctx context.Context) error {
	if !a.runCalled.CompareAndSwap(false, true) {
		return errors.New("run has already been called")
	}

	ctxCancel, cancel := context.WithCancel(ctx)
	defer cancel()

	signal.Notify(a.osSignalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(a.osSignalChan)

	log.Info().Str("service", a.serviceName).Msg("starting")

	started := 0
	for _, dep := range a.deps {
		log.Info().Msg("Starting dependency: " + dep.Name())
		if err := a.start(dep); err != nil {
			a.depFailChan <- err
			break
		}
		started++
	}

	if started == len(a.deps) && a.onReady != nil {
		a.onReady()
	}

	var runErr error
	select {
	case <-ctxCancel.Done():
		log.Info().Msg("App Context cancelled: shutting down")
	case depErr := <-a.depFailChan:
		log.Error().Err(depErr).Msg("Dependency failed to start")
		runErr = depErr
	case sig := <-a.osSignalChan:
		log.Info().Msg("OS Signal received: " + sig.String() + " shutdown beginning...")
	}

	if err := a.stop(a.deps[:started]); err != nil {
		log.Error().Err(err).Msg("Error stopping application")
		return errors.Join(runErr, err)
	}
	return runErr
}

// start runs dep.Start, turning a panic into an error.
func (a *App) start(dep Dependency) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in Start() for dependency %s: %v", dep.Name(), r)
		}
	}()

	if err := dep.Start(); err != nil {
		return fmt.Errorf("failure in Start() for dependency %s: %w", dep.Name(), err)
	}
	return nil
}

// stop shuts dependencies down in reverse start order within the stop timeout.
func (a *App) stop(deps []Dependency) error {
	if !a.stopCalled.CompareAndSwap(false, true) {
		return errors.New("stop has already been called")
	}

	ctxTo, cancel := context.WithTimeout(context.Background(), a.stopTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		var errs []error
		for i := len(deps) - 1; i >= 0; i-- {
			dep := deps[i]
			log.Info().Msg("Stopping dependency: " + dep.Name())
			if err := dep.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("failure in Stop() for dependency %s: %w", dep.Name(), err))
			}
		}
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctxTo.Done():
		return fmt.Errorf("stopping dependencies: %w", ctxTo.Err())
	}
}
