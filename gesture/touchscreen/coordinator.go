package touchscreen

import (
	"github.com/mobile-next/touchgestures/actions"
	"github.com/mobile-next/touchgestures/gesture"
	"github.com/mobile-next/touchgestures/utils"
)

// Coordinator owns the touch-screen recognizers, fans every raw event out
// to them and resolves conflicts when they report progress. It is not safe
// for concurrent use; events from one device must be delivered in order.
type Coordinator struct {
	recognizers []Recognizer
	dispatcher  *actions.Dispatcher
}

func NewCoordinator(dispatcher *actions.Dispatcher) *Coordinator {
	return &Coordinator{
		dispatcher: dispatcher,
	}
}

// NewDefaultCoordinator registers the standard recognizer set: two-finger
// swipe, three-finger zoom, four-finger swipe and drag-and-tap, plus a
// two-finger zoom when twoFingerZoom is set.
func NewDefaultCoordinator(dispatcher *actions.Dispatcher, twoFingerZoom bool) *Coordinator {
	c := NewCoordinator(dispatcher)
	c.Register(NewTwoFingerSwipe())
	if twoFingerZoom {
		c.Register(NewZoom(2))
	}
	c.Register(NewThreeFingerZoom())
	c.Register(NewFourFingerSwipe())
	c.Register(NewDragAndTap())
	return c
}

// Register appends r and returns its index, which stays valid for the
// lifetime of the coordinator. Registration is meant for startup only.
func (c *Coordinator) Register(r Recognizer) int {
	index := len(c.recognizers)
	c.recognizers = append(c.recognizers, r)
	r.attach(index, c)
	return index
}

// Recognizer returns the recognizer registered at index
func (c *Coordinator) Recognizer(index int) Recognizer {
	return c.recognizers[index]
}

func (c *Coordinator) Len() int {
	return len(c.recognizers)
}

// ProcessEvent delivers ev to every recognizer in registration order. All
// reactions complete before it returns.
func (c *Coordinator) ProcessEvent(ev gesture.TouchEvent) {
	for _, r := range c.recognizers {
		r.HandleEvent(ev)
	}
}

// ForceReset returns every recognizer to idle and forgets all contacts,
// for use when the device goes away.
func (c *Coordinator) ForceReset() {
	for _, r := range c.recognizers {
		r.Reset()
		r.releaseContacts()
	}
}

// RecognizerStatus describes one registered recognizer at a point in time
type RecognizerStatus struct {
	Index     int    `json:"index"`
	Kind      string `json:"kind"`
	Fingers   int    `json:"fingers"`
	Started   bool   `json:"started"`
	Cancelled bool   `json:"cancelled"`
	Contacts  int    `json:"contacts"`
	Taps      int    `json:"taps,omitempty"`
}

// Status lists every recognizer in registration order
func (c *Coordinator) Status() []RecognizerStatus {
	status := make([]RecognizerStatus, len(c.recognizers))
	for i, r := range c.recognizers {
		status[i] = RecognizerStatus{
			Index:     i,
			Kind:      r.Kind().String(),
			Fingers:   r.FingerCount(),
			Started:   r.IsStarted(),
			Cancelled: r.IsCancelled(),
			Contacts:  r.ActiveContacts(),
		}
		if d, ok := r.(*DragAndTap); ok {
			status[i].Taps = d.Taps()
		}
	}
	return status
}

func (c *Coordinator) resetAll() {
	for _, r := range c.recognizers {
		r.Reset()
	}
}

func (c *Coordinator) cancelKind(kind gesture.Kind) {
	for _, r := range c.recognizers {
		if r.Kind() == kind {
			r.Cancel()
		}
	}
}

func (c *Coordinator) OnBegin(index int) {
	r := c.recognizers[index]
	utils.Verbose("%d finger %s began", r.FingerCount(), r.Kind())
}

func (c *Coordinator) OnUpdate(index int) {
	r := c.recognizers[index]
	utils.Verbose("%d finger %s updated, current direction: %s", r.FingerCount(), r.Kind(), r.LastDirection())

	switch {
	case r.Kind() == gesture.Zoom:
		// a live zoom rules out any swipe
		c.cancelKind(gesture.Swipe)
		if r.FingerCount() == 2 {
			shortcut := actions.ZoomOutShortcut
			if r.LastDirection() == gesture.ZoomIn {
				shortcut = actions.ZoomInShortcut
			}
			c.report(c.dispatcher.Execute(shortcut))
		}
	case r.Kind() == gesture.Swipe && r.FingerCount() == 2:
		if swipe, ok := r.(*Swipe); ok {
			c.report(c.dispatcher.WheelScroll(swipe.LastOffset() / 10))
		}
	}

	if r.Kind() == gesture.Swipe || r.Kind() == gesture.Zoom {
		c.cancelKind(gesture.DragAndTap)
	}

	if d, ok := r.(*DragAndTap); ok {
		utils.Verbose("drag-and-tap tap %d", d.Taps())
		c.report(c.dispatcher.SecondaryClick())
	}
}

func (c *Coordinator) OnCancelled(index int) {
	r := c.recognizers[index]
	utils.Verbose("%d finger %s cancelled", r.FingerCount(), r.Kind())
}

func (c *Coordinator) OnFinished(index int) {
	r := c.recognizers[index]
	direction := r.TotalDirection()
	utils.Verbose("%d finger %s finished, total direction: %s", r.FingerCount(), r.Kind(), direction)

	c.report(c.dispatcher.Dispatch(gesture.Notification{
		Fingers:   r.FingerCount(),
		Kind:      r.Kind(),
		Phase:     gesture.Finished,
		Direction: direction,
	}))

	c.resetAll()
}

func (c *Coordinator) report(err error) {
	if err != nil {
		utils.Warn("touch screen dispatch failed: %v", err)
	}
}
