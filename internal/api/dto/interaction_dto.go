package dto

import "time"

// InteractionCreateRequest payload for recording a call. AgentID is
// ignored for agent callers. Optional fields default in the service.
type InteractionCreateRequest struct {
	CustomerID     string     `json:"customerId"`
	AgentID        string     `json:"agentId"`
	CallDuration   *int       `json:"callDuration"`
	FollowUpStatus string     `json:"followUpStatus"`
	CallStatus     string     `json:"callStatus"`
	Note           string     `json:"note"`
	Date           *time.Time `json:"date"`
}

// InteractionCommentRequest payload for the supervisor comment path, the
// only interaction update the API allows.
type InteractionCommentRequest struct {
	ID                string  `json:"id"`
	SupervisorComment *string `json:"supervisorComment"`
}
