package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-tracker/internal/cache"
	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/events"
	"github.com/spec-kit/sales-tracker/internal/repository"
	"github.com/spec-kit/sales-tracker/internal/validation"
	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

// CustomerService owns customer mutations and the per-agent read cache.
// Callers apply RBAC before reaching this layer.
type CustomerService struct {
	customers  repository.CustomerRepository
	users      repository.UserRepository
	cache      cache.Cache
	dispatcher events.Dispatcher
}

// CustomerDependencies bundles requirements for the customer service.
type CustomerDependencies struct {
	CustomerRepo repository.CustomerRepository
	UserRepo     repository.UserRepository
	Cache        cache.Cache
	Dispatcher   events.Dispatcher
}

// NewCustomerService builds the service.
func NewCustomerService(deps CustomerDependencies) *CustomerService {
	return &CustomerService{
		customers:  deps.CustomerRepo,
		users:      deps.UserRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// CustomerCreateInput describes a new customer. AgentID is stamped from the
// session for agents and explicit for admins.
type CustomerCreateInput struct {
	Name         string
	ContactTitle string
	Email        string
	Phone        string
	AgentID      string
}

// Create validates, checks the owning agent reference, and persists.
func (s *CustomerService) Create(ctx context.Context, in CustomerCreateInput) (*domain.Customer, error) {
	errs := validation.ValidateCustomer(validation.CustomerInput{
		Name:         in.Name,
		ContactTitle: in.ContactTitle,
		Email:        in.Email,
		Phone:        in.Phone,
		AgentID:      in.AgentID,
	})
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs)
	}
	if err := s.checkAgentRef(ctx, in.AgentID); err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Name:         in.Name,
		ContactTitle: in.ContactTitle,
		Email:        in.Email,
		Phone:        in.Phone,
		AgentID:      in.AgentID,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Delete(ctx, cache.CustomersByAgentKey(customer.AgentID))
	s.publish(ctx, customer.AgentID, events.Event{
		Type: events.EventCustomerCreated,
		Payload: events.CustomerCreatedPayload{
			CustomerID: customer.ID,
			AgentID:    customer.AgentID,
			Name:       customer.Name,
		},
	})
	return customer, nil
}

// GetByID returns nil without error when the customer does not exist.
func (s *CustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// ListByAgent memoizes the per-agent listing for two minutes.
func (s *CustomerService) ListByAgent(ctx context.Context, agentID string) ([]domain.Customer, error) {
	key := cache.CustomersByAgentKey(agentID)
	var cached []domain.Customer
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	customers, err := s.customers.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, key, customers, cache.CustomersByAgentTTL)
	return customers, nil
}

// ListAll returns every customer.
func (s *CustomerService) ListAll(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return customers, nil
}

// ListWithLatest joins each matching customer with its most recent
// interaction; a nil agentID means all agents.
func (s *CustomerService) ListWithLatest(ctx context.Context, agentID *string) ([]domain.CustomerWithLatest, error) {
	result, err := s.customers.ListWithLatestInteraction(ctx, agentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Update applies partial updates and invalidates the cache entries of
// every agent whose listing could have gone stale. Returns nil without
// error when the customer does not exist.
func (s *CustomerService) Update(ctx context.Context, id string, update repository.CustomerUpdate) (*domain.Customer, error) {
	existing, err := s.customers.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	candidate := validation.CustomerInput{
		Name:         existing.Name,
		ContactTitle: existing.ContactTitle,
		Email:        existing.Email,
		Phone:        existing.Phone,
		AgentID:      existing.AgentID,
	}
	if update.Name != nil {
		candidate.Name = *update.Name
	}
	if update.ContactTitle != nil {
		candidate.ContactTitle = *update.ContactTitle
	}
	if update.Email != nil {
		candidate.Email = *update.Email
	}
	if update.Phone != nil {
		candidate.Phone = *update.Phone
	}
	if update.AgentID != nil {
		candidate.AgentID = *update.AgentID
	}
	if errs := validation.ValidateCustomer(candidate); len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs)
	}
	if update.AgentID != nil && *update.AgentID != existing.AgentID {
		if err := s.checkAgentRef(ctx, *update.AgentID); err != nil {
			return nil, err
		}
	}

	updated, err := s.customers.Update(ctx, id, update)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	keys := []string{cache.CustomersByAgentKey(existing.AgentID)}
	if updated.AgentID != existing.AgentID {
		keys = append(keys, cache.CustomersByAgentKey(updated.AgentID))
	}
	s.cache.Delete(ctx, keys...)
	return updated, nil
}

// Delete removes a customer and invalidates the owning agent's listing.
// Reports false when nothing was deleted.
func (s *CustomerService) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := s.customers.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperrors.MapError(err)
	}

	deleted, err := s.customers.Delete(ctx, id)
	if err != nil {
		return false, apperrors.MapError(err)
	}
	if deleted {
		s.cache.Delete(ctx, cache.CustomersByAgentKey(existing.AgentID))
	}
	return deleted, nil
}

// checkAgentRef enforces the customer→agent reference at validation time:
// the store itself carries no foreign keys.
func (s *CustomerService) checkAgentRef(ctx context.Context, agentID string) error {
	user, err := s.users.GetByID(ctx, agentID)
	if err == pgx.ErrNoRows {
		return apperrors.NewValidationError([]string{"Agent ID must reference an existing agent"})
	}
	if err != nil {
		return apperrors.MapError(err)
	}
	if user.Role != domain.RoleAgent {
		return apperrors.NewValidationError([]string{"Agent ID must reference an existing agent"})
	}
	return nil
}

func (s *CustomerService) publish(ctx context.Context, actorID string, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.ActorID = actorID
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
