package domain

import "time"

// Customer is a contact owned by exactly one agent.
type Customer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactTitle string    `json:"contactTitle,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	AgentID      string    `json:"agentId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CustomerWithLatest pairs a customer with its most recent interaction and
// the owning agent's display name. LatestInteraction is nil for customers
// that have never been contacted ("New" customers).
type CustomerWithLatest struct {
	Customer
	AgentName         string       `json:"agentName,omitempty"`
	LatestInteraction *Interaction `json:"latestInteraction,omitempty"`
}
