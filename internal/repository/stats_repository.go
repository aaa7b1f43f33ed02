package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sales-tracker/internal/domain"
)

// StatsRepository runs the per-agent rollups behind the supervisor and
// admin dashboards.
type StatsRepository interface {
	CustomerCountByAgent(ctx context.Context) ([]domain.AgentCustomerCount, error)
	PendingFollowUpsByAgent(ctx context.Context) ([]domain.AgentPendingFollowUps, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository instantiates repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

// CustomerCountByAgent returns every agent paired with the number of
// customers they own. Agents without customers keep a zero count.
func (r *statsRepository) CustomerCountByAgent(ctx context.Context) ([]domain.AgentCustomerCount, error) {
	const query = `
        SELECT u.id, u.name, COUNT(c.id)
        FROM users u
        LEFT JOIN customers c ON c.agent_id = u.id
        WHERE u.role = 'agent'
        GROUP BY u.id, u.name
        ORDER BY u.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.AgentCustomerCount{}
	for rows.Next() {
		var count domain.AgentCustomerCount
		if err := rows.Scan(&count.AgentID, &count.AgentName, &count.CustomerCount); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	return counts, rows.Err()
}

// PendingFollowUpsByAgent picks each customer's latest interaction (max
// date, ties broken by insertion order), keeps those still pending or
// in-progress, and counts them per agent. Agents with none keep a zero.
func (r *statsRepository) PendingFollowUpsByAgent(ctx context.Context) ([]domain.AgentPendingFollowUps, error) {
	const query = `
        WITH latest AS (
            SELECT DISTINCT ON (customer_id) *
            FROM interactions
            ORDER BY customer_id, date DESC, created_at DESC, id DESC
        )
        SELECT u.id, COUNT(l.id)
        FROM users u
        LEFT JOIN latest l
            ON l.agent_id = u.id
            AND l.follow_up_status IN ('pending', 'in-progress')
        WHERE u.role = 'agent'
        GROUP BY u.id
        ORDER BY u.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.AgentPendingFollowUps{}
	for rows.Next() {
		var count domain.AgentPendingFollowUps
		if err := rows.Scan(&count.AgentID, &count.PendingCount); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	return counts, rows.Err()
}
