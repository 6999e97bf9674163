package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mobile-next/touchgestures/events"
)

// ErrInvalidParams marks handler errors caused by the request parameters
var ErrInvalidParams = errors.New("invalid params")

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// EventsParams carries a batch of raw events, handled in order
type EventsParams struct {
	Events []events.Record `json:"events"`
}

func (s *Server) methods() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"touch_event":     s.handleTouchEvent,
		"touchpad_event":  s.handleTouchpadEvent,
		"events":          s.handleEvents,
		"reset":           s.handleReset,
		"status":          s.handleStatus,
		"server.shutdown": s.handleShutdown,
	}
}

// Execute dispatches a method call outside of any transport
func (s *Server) Execute(method string, params json.RawMessage) (interface{}, error) {
	handler, exists := s.methods()[method]
	if !exists {
		return nil, fmt.Errorf("method not found: %s", method)
	}
	return handler(params)
}

func decodeRecord(params json.RawMessage) (events.Record, error) {
	if len(params) == 0 {
		return events.Record{}, fmt.Errorf("%w: 'params' is required with field: type", ErrInvalidParams)
	}

	var rec events.Record
	if err := json.Unmarshal(params, &rec); err != nil {
		return events.Record{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return rec, nil
}

func (s *Server) handleTouchEvent(params json.RawMessage) (interface{}, error) {
	rec, err := decodeRecord(params)
	if err != nil {
		return nil, err
	}

	if source, err := rec.Source(); err != nil || source != events.SourceTouchScreen {
		return nil, fmt.Errorf("%w: '%s' is not a touch screen event", ErrInvalidParams, rec.Type)
	}

	if err := s.engine.Handle(rec); err != nil {
		return nil, err
	}
	return okResponse, nil
}

func (s *Server) handleTouchpadEvent(params json.RawMessage) (interface{}, error) {
	rec, err := decodeRecord(params)
	if err != nil {
		return nil, err
	}

	if source, err := rec.Source(); err != nil || source != events.SourceTouchpad {
		return nil, fmt.Errorf("%w: '%s' is not a touchpad event", ErrInvalidParams, rec.Type)
	}

	if err := s.engine.Handle(rec); err != nil {
		return nil, err
	}
	return okResponse, nil
}

func (s *Server) handleEvents(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: 'params' is required with field: events", ErrInvalidParams)
	}

	var batch EventsParams
	if err := json.Unmarshal(params, &batch); err != nil {
		return nil, fmt.Errorf("%w: %v. Expected fields: events", ErrInvalidParams, err)
	}

	for i, rec := range batch.Events {
		if err := s.engine.Handle(rec); err != nil {
			return nil, fmt.Errorf("%w: event %d: %w", ErrInvalidParams, i, err)
		}
	}

	return map[string]interface{}{"handled": len(batch.Events)}, nil
}

func (s *Server) handleReset(params json.RawMessage) (interface{}, error) {
	s.engine.Reset()
	return okResponse, nil
}

func (s *Server) handleStatus(params json.RawMessage) (interface{}, error) {
	subscribers := 0
	if s.hub != nil {
		subscribers = s.hub.Subscribers()
	}

	return map[string]interface{}{
		"engine":      s.engine.Status(),
		"subscribers": subscribers,
	}, nil
}

func (s *Server) handleShutdown(params json.RawMessage) (interface{}, error) {
	select {
	case s.shutdown <- struct{}{}:
	default:
	}
	return okResponse, nil
}
