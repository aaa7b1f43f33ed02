package events

import (
	"time"

	"github.com/spec-kit/sales-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated          EventType = "user_created"
	EventCustomerCreated      EventType = "customer_created"
	EventInteractionRecorded  EventType = "interaction_recorded"
	EventInteractionCommented EventType = "interaction_commented"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actorId"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	UserID string      `json:"userId"`
	Role   domain.Role `json:"role"`
}

// CustomerCreatedPayload payload.
type CustomerCreatedPayload struct {
	CustomerID string `json:"customerId"`
	AgentID    string `json:"agentId"`
	Name       string `json:"name"`
}

// InteractionRecordedPayload payload.
type InteractionRecordedPayload struct {
	InteractionID  string                `json:"interactionId"`
	CustomerID     string                `json:"customerId"`
	AgentID        string                `json:"agentId"`
	CallStatus     domain.CallStatus     `json:"callStatus"`
	FollowUpStatus domain.FollowUpStatus `json:"followUpStatus"`
}

// InteractionCommentedPayload payload.
type InteractionCommentedPayload struct {
	InteractionID  string `json:"interactionId"`
	CommentPreview string `json:"commentPreview"`
}
