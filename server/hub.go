package server

import (
	"sync"

	"github.com/mobile-next/touchgestures/actions"
	"github.com/mobile-next/touchgestures/utils"
)

// notifications buffered per subscriber before new ones are dropped
const subscriberQueueSize = 64

// ActionParams is the payload of an "action" notification
type ActionParams struct {
	Type   string  `json:"type"`
	Action string  `json:"action,omitempty"`
	Amount float64 `json:"amount,omitempty"`
}

type notificationWriter interface {
	sendJSON(v interface{}) error
}

type subscriber struct {
	id     string
	writer notificationWriter
	queue  chan ActionParams
	done   chan struct{}
}

// run delivers queued notifications until the subscriber is removed
func (s *subscriber) run() {
	for {
		select {
		case params := <-s.queue:
			notification := JSONRPCNotification{
				JSONRPC: "2.0",
				Method:  "action",
				Params:  params,
			}
			if err := s.writer.sendJSON(notification); err != nil {
				// the session is dropped when its read loop ends
				utils.Verbose("Failed to notify WebSocket session %s: %v", s.id, err)
			}
		case <-s.done:
			return
		}
	}
}

// Hub pushes every dispatched action to subscribed WebSocket clients, so
// a remote agent can perform the injection. It implements actions.Executor.
// Each subscriber has its own queue and writer goroutine; a slow client
// loses notifications instead of holding up the event path.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*subscriber),
	}
}

// add registers writer under id. Adding an id twice keeps the first.
func (h *Hub) add(id string, writer notificationWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.subscribers[id]; exists {
		return
	}

	sub := &subscriber{
		id:     id,
		writer: writer,
		queue:  make(chan ActionParams, subscriberQueueSize),
		done:   make(chan struct{}),
	}
	h.subscribers[id] = sub
	go sub.run()
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, exists := h.subscribers[id]; exists {
		close(sub.done)
		delete(h.subscribers, id)
	}
}

// Subscribers returns the number of connected subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) broadcast(params ActionParams) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, sub := range h.subscribers {
		select {
		case sub.queue <- params:
		default:
			utils.Warn("WebSocket session %s is not keeping up, dropping %s notification", id, params.Type)
		}
	}
}

func (h *Hub) Execute(action actions.Action) error {
	h.broadcast(ActionParams{Type: "shortcut", Action: string(action)})
	return nil
}

func (h *Hub) WheelScroll(amount float64) error {
	h.broadcast(ActionParams{Type: "wheel", Amount: amount})
	return nil
}

func (h *Hub) SecondaryClick() error {
	h.broadcast(ActionParams{Type: "secondary_click"})
	return nil
}
