package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-tracker/internal/cache"
	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/events"
	"github.com/spec-kit/sales-tracker/internal/repository"
)

func agentLookup(id string) func(ctx context.Context, id string) (*domain.User, error) {
	agent := &domain.User{ID: id, Name: "Agent Smith", Role: domain.RoleAgent}
	return func(_ context.Context, got string) (*domain.User, error) {
		if got == agent.ID {
			return agent, nil
		}
		return nil, pgx.ErrNoRows
	}
}

func newCustomerService(customers *mockCustomerRepo, users *mockUserRepo, c cache.Cache, d events.Dispatcher) *CustomerService {
	return NewCustomerService(CustomerDependencies{
		CustomerRepo: customers,
		UserRepo:     users,
		Cache:        c,
		Dispatcher:   d,
	})
}

func TestCustomerServiceCreate(t *testing.T) {
	// Arrange
	repo := &mockCustomerRepo{
		CreateFn: func(_ context.Context, customer *domain.Customer) error {
			customer.ID = "cust-1"
			return nil
		},
	}
	users := &mockUserRepo{GetByIDFn: agentLookup("agent-1")}
	mem := cache.NewMemoryCacheWithClock(time.Now)
	ctx := context.Background()
	mem.Set(ctx, cache.CustomersByAgentKey("agent-1"), []domain.Customer{}, time.Minute)
	dispatcher := &recordingDispatcher{}
	svc := newCustomerService(repo, users, mem, dispatcher)

	// Act
	customer, err := svc.Create(ctx, CustomerCreateInput{
		Name:    "Acme Corp",
		Email:   "info@acme.test",
		AgentID: "agent-1",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.ID != "cust-1" {
		t.Fatalf("got %+v", customer)
	}

	var stale []domain.Customer
	if mem.Get(ctx, cache.CustomersByAgentKey("agent-1"), &stale) {
		t.Fatal("agent listing cache not invalidated")
	}
	published := dispatcher.published()
	if len(published) != 1 || published[0].Type != events.EventCustomerCreated {
		t.Fatalf("expected one customer-created event, got %+v", published)
	}
}

func TestCustomerServiceCreateRejectsNonAgentOwner(t *testing.T) {
	// Arrange
	users := &mockUserRepo{
		GetByIDFn: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleSupervisor}, nil
		},
	}
	svc := newCustomerService(&mockCustomerRepo{}, users, cache.NewMemoryCacheWithClock(time.Now), nil)

	// Act
	_, err := svc.Create(context.Background(), CustomerCreateInput{Name: "Acme Corp", AgentID: "super-1"})

	// Assert
	de := domainErrorOf(t, err)
	if de.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("got %+v", de)
	}
	if len(de.Errors) != 1 || de.Errors[0] != "Agent ID must reference an existing agent" {
		t.Fatalf("got %+v", de.Errors)
	}
}

func TestCustomerServiceCreateRejectsMissingAgent(t *testing.T) {
	svc := newCustomerService(&mockCustomerRepo{}, &mockUserRepo{}, cache.NewMemoryCacheWithClock(time.Now), nil)

	_, err := svc.Create(context.Background(), CustomerCreateInput{Name: "Acme Corp", AgentID: "ghost"})

	de := domainErrorOf(t, err)
	if len(de.Errors) != 1 || de.Errors[0] != "Agent ID must reference an existing agent" {
		t.Fatalf("got %+v", de.Errors)
	}
}

func TestCustomerServiceListByAgentMemoizes(t *testing.T) {
	// Arrange
	calls := 0
	repo := &mockCustomerRepo{
		ListByAgentFn: func(_ context.Context, agentID string) ([]domain.Customer, error) {
			calls++
			return []domain.Customer{{ID: "cust-1", Name: "Acme Corp", AgentID: agentID}}, nil
		},
	}
	svc := newCustomerService(repo, &mockUserRepo{}, cache.NewMemoryCacheWithClock(time.Now), nil)
	ctx := context.Background()

	// Act
	first, err := svc.ListByAgent(ctx, "agent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ListByAgent(ctx, "agent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Assert
	if calls != 1 {
		t.Fatalf("repo hit %d times, want 1", calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].ID != "cust-1" {
		t.Fatalf("cached read mismatch: %+v vs %+v", first, second)
	}
}

func TestCustomerServiceUpdateReassignInvalidatesBothAgents(t *testing.T) {
	// Arrange
	existing := &domain.Customer{ID: "cust-1", Name: "Acme Corp", AgentID: "agent-1"}
	repo := &mockCustomerRepo{
		GetByIDFn: func(_ context.Context, _ string) (*domain.Customer, error) {
			return existing, nil
		},
		UpdateFn: func(_ context.Context, id string, update repository.CustomerUpdate) (*domain.Customer, error) {
			updated := *existing
			updated.AgentID = *update.AgentID
			return &updated, nil
		},
	}
	users := &mockUserRepo{GetByIDFn: agentLookup("agent-2")}
	mem := cache.NewMemoryCacheWithClock(time.Now)
	ctx := context.Background()
	mem.Set(ctx, cache.CustomersByAgentKey("agent-1"), []domain.Customer{}, time.Minute)
	mem.Set(ctx, cache.CustomersByAgentKey("agent-2"), []domain.Customer{}, time.Minute)
	svc := newCustomerService(repo, users, mem, nil)

	newAgent := "agent-2"

	// Act
	updated, err := svc.Update(ctx, "cust-1", repository.CustomerUpdate{AgentID: &newAgent})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.AgentID != "agent-2" {
		t.Fatalf("got %+v", updated)
	}

	var stale []domain.Customer
	if mem.Get(ctx, cache.CustomersByAgentKey("agent-1"), &stale) {
		t.Fatal("old agent cache not invalidated")
	}
	if mem.Get(ctx, cache.CustomersByAgentKey("agent-2"), &stale) {
		t.Fatal("new agent cache not invalidated")
	}
}

func TestCustomerServiceUpdateNotFound(t *testing.T) {
	svc := newCustomerService(&mockCustomerRepo{}, &mockUserRepo{}, cache.NewMemoryCacheWithClock(time.Now), nil)

	customer, err := svc.Update(context.Background(), "absent", repository.CustomerUpdate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer != nil {
		t.Fatalf("expected nil customer, got %+v", customer)
	}
}

func TestCustomerServiceUpdateValidatesMergedState(t *testing.T) {
	// Arrange
	repo := &mockCustomerRepo{
		GetByIDFn: func(_ context.Context, _ string) (*domain.Customer, error) {
			return &domain.Customer{ID: "cust-1", Name: "Acme Corp", AgentID: "agent-1"}, nil
		},
	}
	svc := newCustomerService(repo, &mockUserRepo{}, cache.NewMemoryCacheWithClock(time.Now), nil)
	blank := "   "

	// Act
	_, err := svc.Update(context.Background(), "cust-1", repository.CustomerUpdate{Name: &blank})

	// Assert
	de := domainErrorOf(t, err)
	if len(de.Errors) != 1 || de.Errors[0] != "Customer name is required" {
		t.Fatalf("got %+v", de.Errors)
	}
}

func TestCustomerServiceDeleteInvalidatesOwnerCache(t *testing.T) {
	// Arrange
	repo := &mockCustomerRepo{
		GetByIDFn: func(_ context.Context, _ string) (*domain.Customer, error) {
			return &domain.Customer{ID: "cust-1", AgentID: "agent-1"}, nil
		},
		DeleteFn: func(_ context.Context, _ string) (bool, error) {
			return true, nil
		},
	}
	mem := cache.NewMemoryCacheWithClock(time.Now)
	ctx := context.Background()
	mem.Set(ctx, cache.CustomersByAgentKey("agent-1"), []domain.Customer{}, time.Minute)
	svc := newCustomerService(repo, &mockUserRepo{}, mem, nil)

	// Act
	deleted, err := svc.Delete(ctx, "cust-1")

	// Assert
	if err != nil || !deleted {
		t.Fatalf("deleted=%v err=%v", deleted, err)
	}
	var stale []domain.Customer
	if mem.Get(ctx, cache.CustomersByAgentKey("agent-1"), &stale) {
		t.Fatal("owner cache not invalidated")
	}
}

func TestCustomerServiceDeleteNotFound(t *testing.T) {
	svc := newCustomerService(&mockCustomerRepo{}, &mockUserRepo{}, cache.NewMemoryCacheWithClock(time.Now), nil)

	deleted, err := svc.Delete(context.Background(), "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Fatal("expected not deleted")
	}
}
