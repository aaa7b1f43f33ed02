package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sales-tracker/internal/domain"
)

// InteractionRepository encapsulates interaction persistence. Listings are
// sorted by event date, most recent first.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) error
	GetByID(ctx context.Context, id string) (*domain.Interaction, error)
	ListByAgent(ctx context.Context, agentID string) ([]domain.Interaction, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Interaction, error)
	List(ctx context.Context) ([]domain.Interaction, error)
	ListWithDetails(ctx context.Context) ([]domain.InteractionDetail, error)
	SetSupervisorComment(ctx context.Context, id, comment string) (*domain.Interaction, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type interactionRepository struct {
	pool *pgxpool.Pool
}

// NewInteractionRepository instantiates repository.
func NewInteractionRepository(pool *pgxpool.Pool) InteractionRepository {
	return &interactionRepository{pool: pool}
}

const interactionColumns = `id, customer_id, agent_id, call_duration, follow_up_status,
        call_status, note, supervisor_comment, date, created_at, updated_at`

func scanInteraction(row pgx.Row) (*domain.Interaction, error) {
	var interaction domain.Interaction
	if err := row.Scan(
		&interaction.ID,
		&interaction.CustomerID,
		&interaction.AgentID,
		&interaction.CallDuration,
		&interaction.FollowUpStatus,
		&interaction.CallStatus,
		&interaction.Note,
		&interaction.SupervisorComment,
		&interaction.Date,
		&interaction.CreatedAt,
		&interaction.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &interaction, nil
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	const query = `
        INSERT INTO interactions (customer_id, agent_id, call_duration, follow_up_status, call_status, note, supervisor_comment, date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	var date any
	if !interaction.Date.IsZero() {
		date = interaction.Date
	} else {
		date = time.Now()
		interaction.Date = date.(time.Time)
	}

	return r.pool.QueryRow(ctx, query,
		interaction.CustomerID,
		interaction.AgentID,
		interaction.CallDuration,
		interaction.FollowUpStatus,
		interaction.CallStatus,
		interaction.Note,
		interaction.SupervisorComment,
		date,
	).Scan(&interaction.ID, &interaction.CreatedAt, &interaction.UpdatedAt)
}

func (r *interactionRepository) GetByID(ctx context.Context, id string) (*domain.Interaction, error) {
	const query = `SELECT ` + interactionColumns + ` FROM interactions WHERE id=$1`
	return scanInteraction(r.pool.QueryRow(ctx, query, id))
}

func (r *interactionRepository) ListByAgent(ctx context.Context, agentID string) ([]domain.Interaction, error) {
	const query = `SELECT ` + interactionColumns + ` FROM interactions WHERE agent_id=$1 ORDER BY date DESC`
	return r.queryInteractions(ctx, query, agentID)
}

func (r *interactionRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Interaction, error) {
	const query = `SELECT ` + interactionColumns + ` FROM interactions WHERE customer_id=$1 ORDER BY date DESC`
	return r.queryInteractions(ctx, query, customerID)
}

func (r *interactionRepository) List(ctx context.Context) ([]domain.Interaction, error) {
	const query = `SELECT ` + interactionColumns + ` FROM interactions ORDER BY date DESC`
	return r.queryInteractions(ctx, query)
}

func (r *interactionRepository) queryInteractions(ctx context.Context, query string, args ...any) ([]domain.Interaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interactions := []domain.Interaction{}
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, *interaction)
	}
	return interactions, rows.Err()
}

// ListWithDetails joins every interaction with its customer's display
// fields and its agent's name. Dangling references surface as "Unknown"
// rather than dropping the row; referential integrity is an application
// invariant, not a store constraint.
func (r *interactionRepository) ListWithDetails(ctx context.Context) ([]domain.InteractionDetail, error) {
	const query = `
        SELECT i.id, i.customer_id, i.agent_id, i.call_duration, i.follow_up_status,
               i.call_status, i.note, i.supervisor_comment, i.date, i.created_at, i.updated_at,
               COALESCE(c.name, 'Unknown'),
               COALESCE(c.contact_title, ''),
               COALESCE(c.email, ''),
               COALESCE(u.name, 'Unknown')
        FROM interactions i
        LEFT JOIN customers c ON c.id = i.customer_id
        LEFT JOIN users u ON u.id = i.agent_id
        ORDER BY i.date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []domain.InteractionDetail{}
	for rows.Next() {
		var detail domain.InteractionDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.CustomerID,
			&detail.AgentID,
			&detail.CallDuration,
			&detail.FollowUpStatus,
			&detail.CallStatus,
			&detail.Note,
			&detail.SupervisorComment,
			&detail.Date,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.CustomerName,
			&detail.CustomerContactTitle,
			&detail.CustomerEmail,
			&detail.AgentName,
		); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}

// SetSupervisorComment is the only in-place mutation interactions support.
func (r *interactionRepository) SetSupervisorComment(ctx context.Context, id, comment string) (*domain.Interaction, error) {
	const query = `
        UPDATE interactions SET supervisor_comment=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + interactionColumns

	return scanInteraction(r.pool.QueryRow(ctx, query, comment, id))
}

// Delete reports success only when exactly one row was removed.
func (r *interactionRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM interactions WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}
