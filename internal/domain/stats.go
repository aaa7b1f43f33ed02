package domain

// AgentCustomerCount reports how many customers an agent owns. Every user
// with the agent role appears in the rollup, zero-count agents included.
type AgentCustomerCount struct {
	AgentID       string `json:"agentId"`
	AgentName     string `json:"agentName"`
	CustomerCount int    `json:"customerCount"`
}

// AgentPendingFollowUps counts customers whose latest interaction still
// needs follow-up (pending or in-progress), grouped by agent.
type AgentPendingFollowUps struct {
	AgentID      string `json:"agentId"`
	PendingCount int    `json:"pendingCount"`
}
