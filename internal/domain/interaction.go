package domain

import "time"

// FollowUpStatus is the lifecycle state of post-call action required.
type FollowUpStatus string

const (
	FollowUpPending    FollowUpStatus = "pending"
	FollowUpInProgress FollowUpStatus = "in-progress"
	FollowUpCompleted  FollowUpStatus = "completed"
	FollowUpClosed     FollowUpStatus = "closed"
)

// Valid reports whether the status is one of the known values.
func (s FollowUpStatus) Valid() bool {
	switch s {
	case FollowUpPending, FollowUpInProgress, FollowUpCompleted, FollowUpClosed:
		return true
	}
	return false
}

// CallStatus is the outcome of a logged call.
type CallStatus string

const (
	CallStatusCalled     CallStatus = "called"
	CallStatusNotReached CallStatus = "not-reached"
	CallStatusBusy       CallStatus = "busy"
	CallStatusVoicemail  CallStatus = "voicemail"
	CallStatusScheduled  CallStatus = "scheduled"
)

// Valid reports whether the status is one of the known values.
func (s CallStatus) Valid() bool {
	switch s {
	case CallStatusCalled, CallStatusNotReached, CallStatusBusy, CallStatusVoicemail, CallStatusScheduled:
		return true
	}
	return false
}

// Interaction is a logged customer-contact event. Interactions are
// append-only history; only the supervisor comment is mutated in place.
type Interaction struct {
	ID                string         `json:"id"`
	CustomerID        string         `json:"customerId"`
	AgentID           string         `json:"agentId"`
	CallDuration      int            `json:"callDuration"`
	FollowUpStatus    FollowUpStatus `json:"followUpStatus"`
	CallStatus        CallStatus     `json:"callStatus"`
	Note              string         `json:"note"`
	SupervisorComment *string        `json:"supervisorComment,omitempty"`
	Date              time.Time      `json:"date"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// InteractionDetail denormalizes an interaction with customer and agent
// display fields for supervisor/admin views.
type InteractionDetail struct {
	Interaction
	CustomerName         string `json:"customerName"`
	CustomerContactTitle string `json:"customerContactTitle"`
	CustomerEmail        string `json:"customerEmail"`
	AgentName            string `json:"agentName"`
}
