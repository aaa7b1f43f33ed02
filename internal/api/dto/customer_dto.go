package dto

// CustomerCreateRequest payload for new customers. AgentID is ignored for
// agent callers, who always own what they create.
type CustomerCreateRequest struct {
	Name         string `json:"name"`
	ContactTitle string `json:"contactTitle"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AgentID      string `json:"agentId"`
}

// CustomerUpdateRequest payload for partial customer updates. AgentID only
// takes effect for admin callers (ownership reassignment).
type CustomerUpdateRequest struct {
	Name         *string `json:"name"`
	ContactTitle *string `json:"contactTitle"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	AgentID      *string `json:"agentId"`
}
