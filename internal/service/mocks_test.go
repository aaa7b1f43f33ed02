package service

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/events"
	"github.com/spec-kit/sales-tracker/internal/repository"
	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

// Function-field mocks so each test overrides only the calls it cares
// about. Unset fields report pgx.ErrNoRows where a row lookup is implied.

type mockUserRepo struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	ListFn       func(ctx context.Context) ([]domain.User, error)
	UpdateFn     func(ctx context.Context, id string, update repository.UserUpdate) (*domain.User, error)
	DeleteFn     func(ctx context.Context, id string) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByEmailFn(ctx, email)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(ctx)
}

func (m *mockUserRepo) Update(ctx context.Context, id string, update repository.UserUpdate) (*domain.User, error) {
	if m.UpdateFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.UpdateFn(ctx, id, update)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteFn == nil {
		return false, nil
	}
	return m.DeleteFn(ctx, id)
}

type mockCustomerRepo struct {
	CreateFn                    func(ctx context.Context, customer *domain.Customer) error
	GetByIDFn                   func(ctx context.Context, id string) (*domain.Customer, error)
	ListByAgentFn               func(ctx context.Context, agentID string) ([]domain.Customer, error)
	ListFn                      func(ctx context.Context) ([]domain.Customer, error)
	ListWithLatestInteractionFn func(ctx context.Context, agentID *string) ([]domain.CustomerWithLatest, error)
	UpdateFn                    func(ctx context.Context, id string, update repository.CustomerUpdate) (*domain.Customer, error)
	DeleteFn                    func(ctx context.Context, id string) (bool, error)
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, customer)
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if m.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockCustomerRepo) ListByAgent(ctx context.Context, agentID string) ([]domain.Customer, error) {
	if m.ListByAgentFn == nil {
		return nil, nil
	}
	return m.ListByAgentFn(ctx, agentID)
}

func (m *mockCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(ctx)
}

func (m *mockCustomerRepo) ListWithLatestInteraction(ctx context.Context, agentID *string) ([]domain.CustomerWithLatest, error) {
	if m.ListWithLatestInteractionFn == nil {
		return nil, nil
	}
	return m.ListWithLatestInteractionFn(ctx, agentID)
}

func (m *mockCustomerRepo) Update(ctx context.Context, id string, update repository.CustomerUpdate) (*domain.Customer, error) {
	if m.UpdateFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.UpdateFn(ctx, id, update)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteFn == nil {
		return false, nil
	}
	return m.DeleteFn(ctx, id)
}

type mockInteractionRepo struct {
	CreateFn               func(ctx context.Context, interaction *domain.Interaction) error
	GetByIDFn              func(ctx context.Context, id string) (*domain.Interaction, error)
	ListByAgentFn          func(ctx context.Context, agentID string) ([]domain.Interaction, error)
	ListByCustomerFn       func(ctx context.Context, customerID string) ([]domain.Interaction, error)
	ListFn                 func(ctx context.Context) ([]domain.Interaction, error)
	ListWithDetailsFn      func(ctx context.Context) ([]domain.InteractionDetail, error)
	SetSupervisorCommentFn func(ctx context.Context, id, comment string) (*domain.Interaction, error)
	DeleteFn               func(ctx context.Context, id string) (bool, error)
}

func (m *mockInteractionRepo) Create(ctx context.Context, interaction *domain.Interaction) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, interaction)
}

func (m *mockInteractionRepo) GetByID(ctx context.Context, id string) (*domain.Interaction, error) {
	if m.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockInteractionRepo) ListByAgent(ctx context.Context, agentID string) ([]domain.Interaction, error) {
	if m.ListByAgentFn == nil {
		return nil, nil
	}
	return m.ListByAgentFn(ctx, agentID)
}

func (m *mockInteractionRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Interaction, error) {
	if m.ListByCustomerFn == nil {
		return nil, nil
	}
	return m.ListByCustomerFn(ctx, customerID)
}

func (m *mockInteractionRepo) List(ctx context.Context) ([]domain.Interaction, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(ctx)
}

func (m *mockInteractionRepo) ListWithDetails(ctx context.Context) ([]domain.InteractionDetail, error) {
	if m.ListWithDetailsFn == nil {
		return nil, nil
	}
	return m.ListWithDetailsFn(ctx)
}

func (m *mockInteractionRepo) SetSupervisorComment(ctx context.Context, id, comment string) (*domain.Interaction, error) {
	if m.SetSupervisorCommentFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.SetSupervisorCommentFn(ctx, id, comment)
}

func (m *mockInteractionRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteFn == nil {
		return false, nil
	}
	return m.DeleteFn(ctx, id)
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.Event, len(d.events))
	copy(out, d.events)
	return out
}

func domainErrorOf(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	return apperrors.ToDomainError(err)
}
