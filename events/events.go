package events

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mobile-next/touchgestures/gesture"
)

// ErrUnknownEventType is returned for records whose type is not recognized
var ErrUnknownEventType = errors.New("unknown event type")

// Source tells which recognizer side a record belongs to
type Source int

const (
	SourceTouchScreen Source = iota
	SourceTouchpad
)

// Record is the JSON wire form of one raw event from either device.
//
//	{"type":"down","slot":0,"x":12.5,"y":40}
//	{"type":"swipe_update","dx":3.2,"dy":-0.4}
//	{"type":"pinch_end","fingers":2,"cancelled":true}
type Record struct {
	Type       string  `json:"type"`
	Slot       int     `json:"slot,omitempty"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Fingers    int     `json:"fingers,omitempty"`
	DX         float64 `json:"dx,omitempty"`
	DY         float64 `json:"dy,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	AngleDelta float64 `json:"angle_delta,omitempty"`
	Cancelled  bool    `json:"cancelled,omitempty"`
}

var touchTypes = map[string]gesture.TouchEventType{
	"down":   gesture.TouchDown,
	"motion": gesture.TouchMotion,
	"up":     gesture.TouchUp,
	"frame":  gesture.TouchFrame,
	"cancel": gesture.TouchCancel,
}

var padTypes = map[string]gesture.PadEventType{
	"swipe_begin":  gesture.SwipeBegin,
	"swipe_update": gesture.SwipeUpdate,
	"swipe_end":    gesture.SwipeEnd,
	"pinch_begin":  gesture.PinchBegin,
	"pinch_update": gesture.PinchUpdate,
	"pinch_end":    gesture.PinchEnd,
}

// Source reports which side the record is for
func (r Record) Source() (Source, error) {
	if _, ok := touchTypes[r.Type]; ok {
		return SourceTouchScreen, nil
	}
	if _, ok := padTypes[r.Type]; ok {
		return SourceTouchpad, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEventType, r.Type)
}

func (r Record) TouchEvent() (gesture.TouchEvent, error) {
	t, ok := touchTypes[r.Type]
	if !ok {
		return gesture.TouchEvent{}, fmt.Errorf("%w: %q is not a touch screen event", ErrUnknownEventType, r.Type)
	}
	return gesture.TouchEvent{
		Type:     t,
		Slot:     r.Slot,
		Position: gesture.Point{X: r.X, Y: r.Y},
	}, nil
}

func (r Record) PadEvent() (gesture.PadEvent, error) {
	t, ok := padTypes[r.Type]
	if !ok {
		return gesture.PadEvent{}, fmt.Errorf("%w: %q is not a touchpad event", ErrUnknownEventType, r.Type)
	}
	return gesture.PadEvent{
		Type:       t,
		Fingers:    r.Fingers,
		DX:         r.DX,
		DY:         r.DY,
		Scale:      r.Scale,
		AngleDelta: r.AngleDelta,
		Cancelled:  r.Cancelled,
	}, nil
}

// FromTouch converts a touch-screen event to its wire form
func FromTouch(ev gesture.TouchEvent) Record {
	return Record{Type: ev.Type.String(), Slot: ev.Slot, X: ev.Position.X, Y: ev.Position.Y}
}

// FromPad converts a touchpad event to its wire form
func FromPad(ev gesture.PadEvent) Record {
	return Record{
		Type:       ev.Type.String(),
		Fingers:    ev.Fingers,
		DX:         ev.DX,
		DY:         ev.DY,
		Scale:      ev.Scale,
		AngleDelta: ev.AngleDelta,
		Cancelled:  ev.Cancelled,
	}
}

// Reader decodes one JSON record per line. Blank lines and lines starting
// with '#' are skipped.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next record, or io.EOF when the input is exhausted
func (r *Reader) Next() (Record, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return Record{}, fmt.Errorf("line %d: failed to parse event: %w", r.line, err)
		}
		if _, err := rec.Source(); err != nil {
			return Record{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return rec, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Record{}, fmt.Errorf("failed to read events: %w", err)
	}
	return Record{}, io.EOF
}
