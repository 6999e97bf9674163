package actions

import (
	"fmt"

	"github.com/mobile-next/touchgestures/gesture"
	"github.com/mobile-next/touchgestures/utils"
)

// Action is an opaque action descriptor, usually a key sequence such as
// "Meta+Left". Only the reserved values below are ever inspected.
type Action string

const (
	// MaximizeToggle toggles the active window between maximized and restored
	MaximizeToggle Action = "Meta+PgUp"

	// continuous zoom feedback for two-finger zoom on the touch screen
	ZoomInShortcut  Action = "Ctrl++"
	ZoomOutShortcut Action = "Ctrl+-"
)

// Resolver maps a classified gesture to an action. The bool is false when
// nothing is mapped.
type Resolver interface {
	Resolve(fingers int, kind gesture.Kind, phase gesture.Phase, direction gesture.Direction) (Action, bool)
}

// Executor performs actions on the host
type Executor interface {
	Execute(action Action) error
	WheelScroll(amount float64) error
	SecondaryClick() error
}

// WindowHandle identifies a top-level window
type WindowHandle uint64

// WindowOracle answers questions about window manager state
type WindowOracle interface {
	ActiveWindow() (WindowHandle, error)
	IsMaximized(window WindowHandle) (bool, error)
}

// Dispatcher resolves notifications and hands the result to an executor
type Dispatcher struct {
	resolver Resolver
	executor Executor
	windows  WindowOracle
}

func NewDispatcher(resolver Resolver, executor Executor, windows WindowOracle) *Dispatcher {
	return &Dispatcher{
		resolver: resolver,
		executor: executor,
		windows:  windows,
	}
}

// Dispatch resolves n and executes the mapped action, if any. A finished
// zoom or pinch mapped to MaximizeToggle is suppressed when the active
// window is already in the state the gesture asks for.
func (d *Dispatcher) Dispatch(n gesture.Notification) error {
	action, ok := d.resolver.Resolve(n.Fingers, n.Kind, n.Phase, n.Direction)
	if !ok {
		utils.Verbose("no action mapped for %d finger %s %s %s", n.Fingers, n.Kind, n.Phase, n.Direction)
		return nil
	}

	if isScale(n.Kind) && n.Phase == gesture.Finished && action == MaximizeToggle {
		satisfied, err := d.windowAlready(n.Direction)
		if err != nil {
			return fmt.Errorf("failed to query active window: %w", err)
		}
		if satisfied {
			utils.Verbose("active window already in target state for %s, skipping %s", n.Direction, action)
			return nil
		}
	}

	return d.Execute(action)
}

func (d *Dispatcher) Execute(action Action) error {
	utils.Verbose("executing %s", action)
	if err := d.executor.Execute(action); err != nil {
		return fmt.Errorf("failed to execute %s: %w", action, err)
	}
	return nil
}

func (d *Dispatcher) WheelScroll(amount float64) error {
	if err := d.executor.WheelScroll(amount); err != nil {
		return fmt.Errorf("failed to scroll wheel by %.2f: %w", amount, err)
	}
	return nil
}

func (d *Dispatcher) SecondaryClick() error {
	if err := d.executor.SecondaryClick(); err != nil {
		return fmt.Errorf("failed to click secondary button: %w", err)
	}
	return nil
}

// windowAlready reports whether the active window is maximized when
// zooming in, or restored when zooming out.
func (d *Dispatcher) windowAlready(direction gesture.Direction) (bool, error) {
	if d.windows == nil {
		return false, nil
	}

	window, err := d.windows.ActiveWindow()
	if err != nil {
		return false, err
	}

	maximized, err := d.windows.IsMaximized(window)
	if err != nil {
		return false, err
	}

	switch direction {
	case gesture.ZoomIn:
		return maximized, nil
	case gesture.ZoomOut:
		return !maximized, nil
	}
	return false, nil
}

func isScale(kind gesture.Kind) bool {
	return kind == gesture.Zoom || kind == gesture.Pinch
}
