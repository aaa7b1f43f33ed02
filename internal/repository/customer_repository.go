package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sales-tracker/internal/domain"
)

// CustomerUpdate carries the optional fields of a customer update; nil
// fields are left untouched. AgentID is only ever set on admin reassignment.
type CustomerUpdate struct {
	Name         *string
	ContactTitle *string
	Email        *string
	Phone        *string
	AgentID      *string
}

// CustomerRepository encapsulates customer persistence and the
// latest-interaction join.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	ListByAgent(ctx context.Context, agentID string) ([]domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	ListWithLatestInteraction(ctx context.Context, agentID *string) ([]domain.CustomerWithLatest, error)
	Update(ctx context.Context, id string, update CustomerUpdate) (*domain.Customer, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository instantiates repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, name, contact_title, email, phone, agent_id, created_at, updated_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var customer domain.Customer
	if err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.ContactTitle,
		&customer.Email,
		&customer.Phone,
		&customer.AgentID,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (name, contact_title, email, phone, agent_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		customer.Name,
		customer.ContactTitle,
		customer.Email,
		customer.Phone,
		customer.AgentID,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}

func (r *customerRepository) ListByAgent(ctx context.Context, agentID string) ([]domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE agent_id=$1 ORDER BY created_at`
	return r.queryCustomers(ctx, query, agentID)
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at`
	return r.queryCustomers(ctx, query)
}

func (r *customerRepository) queryCustomers(ctx context.Context, query string, args ...any) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}
	return customers, rows.Err()
}

// ListWithLatestInteraction left-joins each matching customer with its most
// recent interaction (max date, ties broken by insertion order) and the
// owning agent's name. Customers without interactions are still returned.
func (r *customerRepository) ListWithLatestInteraction(ctx context.Context, agentID *string) ([]domain.CustomerWithLatest, error) {
	const query = `
        SELECT c.id, c.name, c.contact_title, c.email, c.phone, c.agent_id, c.created_at, c.updated_at,
               u.name,
               i.id, i.customer_id, i.agent_id, i.call_duration, i.follow_up_status, i.call_status,
               i.note, i.supervisor_comment, i.date, i.created_at, i.updated_at
        FROM customers c
        LEFT JOIN users u ON u.id = c.agent_id
        LEFT JOIN LATERAL (
            SELECT * FROM interactions
            WHERE customer_id = c.id
            ORDER BY date DESC, created_at DESC, id DESC
            LIMIT 1
        ) i ON TRUE
        WHERE $1::uuid IS NULL OR c.agent_id = $1::uuid
        ORDER BY c.created_at`

	rows, err := r.pool.Query(ctx, query, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.CustomerWithLatest{}
	for rows.Next() {
		var (
			item      domain.CustomerWithLatest
			agentName *string

			intID             *string
			intCustomerID     *string
			intAgentID        *string
			callDuration      *int
			followUpStatus    *domain.FollowUpStatus
			callStatus        *domain.CallStatus
			note              *string
			supervisorComment *string
			date              *time.Time
			intCreatedAt      *time.Time
			intUpdatedAt      *time.Time
		)
		if err := rows.Scan(
			&item.ID, &item.Name, &item.ContactTitle, &item.Email, &item.Phone,
			&item.AgentID, &item.CreatedAt, &item.UpdatedAt,
			&agentName,
			&intID, &intCustomerID, &intAgentID, &callDuration, &followUpStatus,
			&callStatus, &note, &supervisorComment, &date, &intCreatedAt, &intUpdatedAt,
		); err != nil {
			return nil, err
		}
		if agentName != nil {
			item.AgentName = *agentName
		}
		if intID != nil {
			item.LatestInteraction = &domain.Interaction{
				ID:                *intID,
				CustomerID:        *intCustomerID,
				AgentID:           *intAgentID,
				CallDuration:      *callDuration,
				FollowUpStatus:    *followUpStatus,
				CallStatus:        *callStatus,
				Note:              *note,
				SupervisorComment: supervisorComment,
				Date:              *date,
				CreatedAt:         *intCreatedAt,
				UpdatedAt:         *intUpdatedAt,
			}
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *customerRepository) Update(ctx context.Context, id string, update CustomerUpdate) (*domain.Customer, error) {
	const query = `
        UPDATE customers SET
            name = COALESCE($1, name),
            contact_title = COALESCE($2, contact_title),
            email = COALESCE($3, email),
            phone = COALESCE($4, phone),
            agent_id = COALESCE($5::uuid, agent_id),
            updated_at = NOW()
        WHERE id=$6
        RETURNING ` + customerColumns

	return scanCustomer(r.pool.QueryRow(ctx, query,
		update.Name,
		update.ContactTitle,
		update.Email,
		update.Phone,
		update.AgentID,
		id,
	))
}

// Delete reports success only when exactly one row was removed.
func (r *customerRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}
