// Package events defines the event types published on the dispatch bus.
// External executors subscribe to these; natctl itself never executes an
// action.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/natctl/natctl/pkg/models"
)

type EventType string

// Topic is the bus topic all command pipeline events are published on.
const Topic = "natctl.commands"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	CommandReceivedEvent  EventType = "command.received"
	ActionDispatchedEvent EventType = "action.dispatched"
	CommandRejectedEvent  EventType = "command.rejected"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id,omitempty"`
}

func newBaseEvent(eventType EventType, sessionID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
	}
}

// CommandReceived marks the arrival of one raw text command, before
// interpretation.
type CommandReceived struct {
	BaseEvent

	Text string `json:"text"`
}

func NewCommandReceived(sessionID, text string) CommandReceived {
	return CommandReceived{
		BaseEvent: newBaseEvent(CommandReceivedEvent, sessionID),
		Text:      text,
	}
}

func (e CommandReceived) GetType() EventType {
	return CommandReceivedEvent
}

// ActionDispatched carries one validated action toward executors.
type ActionDispatched struct {
	BaseEvent

	CommandID string         `json:"command_id"`
	Action    *models.Action `json:"action"`
}

func NewActionDispatched(sessionID, commandID string, action *models.Action) ActionDispatched {
	return ActionDispatched{
		BaseEvent: newBaseEvent(ActionDispatchedEvent, sessionID),
		CommandID: commandID,
		Action:    action,
	}
}

func (e ActionDispatched) GetType() EventType {
	return ActionDispatchedEvent
}

// CommandRejected records a command whose action failed validation; nothing
// is dispatched for it.
type CommandRejected struct {
	BaseEvent

	CommandID string `json:"command_id"`
	Text      string `json:"text"`
	Reason    string `json:"reason"`
}

func NewCommandRejected(sessionID, commandID, text, reason string) CommandRejected {
	return CommandRejected{
		BaseEvent: newBaseEvent(CommandRejectedEvent, sessionID),
		CommandID: commandID,
		Text:      text,
		Reason:    reason,
	}
}

func (e CommandRejected) GetType() EventType {
	return CommandRejectedEvent
}
