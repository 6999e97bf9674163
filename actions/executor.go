package actions

import (
	"github.com/mobile-next/touchgestures/utils"
)

// LogExecutor only reports what it would have done
type LogExecutor struct{}

func (LogExecutor) Execute(action Action) error {
	utils.Info("action: %s", action)
	return nil
}

func (LogExecutor) WheelScroll(amount float64) error {
	utils.Info("wheel: %.2f", amount)
	return nil
}

func (LogExecutor) SecondaryClick() error {
	utils.Info("secondary click")
	return nil
}

// StaticWindows reports a fixed maximized state for a single window
type StaticWindows struct {
	Maximized bool
}

func (StaticWindows) ActiveWindow() (WindowHandle, error) {
	return 1, nil
}

func (w StaticWindows) IsMaximized(WindowHandle) (bool, error) {
	return w.Maximized, nil
}

// MultiExecutor fans an action out to several executors, stopping at the
// first failure.
type MultiExecutor []Executor

func (m MultiExecutor) Execute(action Action) error {
	for _, e := range m {
		if err := e.Execute(action); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiExecutor) WheelScroll(amount float64) error {
	for _, e := range m {
		if err := e.WheelScroll(amount); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiExecutor) SecondaryClick() error {
	for _, e := range m {
		if err := e.SecondaryClick(); err != nil {
			return err
		}
	}
	return nil
}
