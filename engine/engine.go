package engine

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mobile-next/touchgestures/actions"
	"github.com/mobile-next/touchgestures/config"
	"github.com/mobile-next/touchgestures/events"
	"github.com/mobile-next/touchgestures/gesture/touchpad"
	"github.com/mobile-next/touchgestures/gesture/touchscreen"
)

// Engine serializes raw events from one device pair into the touch-screen
// coordinator and the touchpad recognizer. It is safe for concurrent use;
// each event is fully handled before the next one is accepted.
type Engine struct {
	mu       sync.Mutex
	screen   *touchscreen.Coordinator
	touchpad *touchpad.Recognizer
}

// New wires the recognizers to cfg's mapping and the given executor
func New(cfg *config.Config, executor actions.Executor, windows actions.WindowOracle) (*Engine, error) {
	screenResolver, err := resolverFor(cfg, config.DeviceTouchScreen)
	if err != nil {
		return nil, err
	}

	padResolver, err := resolverFor(cfg, config.DeviceTouchpad)
	if err != nil {
		return nil, err
	}

	screen := touchscreen.NewDefaultCoordinator(actions.NewDispatcher(screenResolver, executor, windows), cfg.TwoFingerZoom)
	pad := touchpad.NewRecognizer(touchpad.NewHandler(actions.NewDispatcher(padResolver, executor, windows)))

	return &Engine{
		screen:   screen,
		touchpad: pad,
	}, nil
}

func resolverFor(cfg *config.Config, device string) (actions.Resolver, error) {
	resolver := cfg.Resolver(device)
	if cfg.ResolverCache == 0 {
		return resolver, nil
	}

	cached, err := actions.NewCachedResolver(resolver, cfg.ResolverCache)
	if err != nil {
		return nil, fmt.Errorf("failed to set up %s resolver: %w", device, err)
	}
	return cached, nil
}

// Handle routes a decoded record to the matching side
func (e *Engine) Handle(rec events.Record) error {
	source, err := rec.Source()
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch source {
	case events.SourceTouchScreen:
		ev, err := rec.TouchEvent()
		if err != nil {
			return err
		}
		e.screen.ProcessEvent(ev)
	case events.SourceTouchpad:
		ev, err := rec.PadEvent()
		if err != nil {
			return err
		}
		e.touchpad.HandleEvent(ev)
	}
	return nil
}

// Reset forgets all in-flight gestures on both sides
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.screen.ForceReset()
	e.touchpad.Reset()
}

// Status is a snapshot of both recognizer sides
type Status struct {
	Recognizers []touchscreen.RecognizerStatus `json:"recognizers"`
	Touchpad    touchpad.State                 `json:"touchpad"`
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Status{
		Recognizers: e.screen.Status(),
		Touchpad:    e.touchpad.State(),
	}
}

// Replay feeds every record from reader until it is exhausted and returns
// how many were handled.
func (e *Engine) Replay(reader *events.Reader) (int, error) {
	count := 0
	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}

		if err := e.Handle(rec); err != nil {
			return count, err
		}
		count++
	}
}
