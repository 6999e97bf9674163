package touchpad

import (
	"github.com/mobile-next/touchgestures/actions"
	"github.com/mobile-next/touchgestures/gesture"
	"github.com/mobile-next/touchgestures/utils"
)

// Handler dispatches every touchpad notification through the action
// mapping, Update and Cancelled included.
type Handler struct {
	dispatcher *actions.Dispatcher
}

func NewHandler(dispatcher *actions.Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

func (h *Handler) OnGesture(n gesture.Notification) {
	if err := h.dispatcher.Dispatch(n); err != nil {
		utils.Warn("touchpad dispatch failed: %v", err)
	}
}
