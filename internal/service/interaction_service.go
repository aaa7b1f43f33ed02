package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-tracker/internal/cache"
	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/events"
	"github.com/spec-kit/sales-tracker/internal/repository"
	"github.com/spec-kit/sales-tracker/internal/validation"
	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

// InteractionService owns the append-only call history and its caches.
// Callers apply RBAC before reaching this layer.
type InteractionService struct {
	interactions repository.InteractionRepository
	cache        cache.Cache
	dispatcher   events.Dispatcher
}

// InteractionDependencies bundles requirements for the interaction service.
type InteractionDependencies struct {
	InteractionRepo repository.InteractionRepository
	Cache           cache.Cache
	Dispatcher      events.Dispatcher
}

// NewInteractionService builds the service.
func NewInteractionService(deps InteractionDependencies) *InteractionService {
	return &InteractionService{
		interactions: deps.InteractionRepo,
		cache:        deps.Cache,
		dispatcher:   deps.Dispatcher,
	}
}

// InteractionRecordInput describes a logged call. Optional fields fall
// back to their defaults: zero duration, pending follow-up, "called"
// outcome, event time now.
type InteractionRecordInput struct {
	CustomerID     string
	AgentID        string
	CallDuration   *int
	FollowUpStatus string
	CallStatus     string
	Note           string
	Date           *time.Time
}

// Record validates and appends a new interaction.
func (s *InteractionService) Record(ctx context.Context, in InteractionRecordInput) (*domain.Interaction, error) {
	errs := validation.ValidateInteraction(validation.InteractionInput{
		CustomerID:     in.CustomerID,
		AgentID:        in.AgentID,
		CallDuration:   in.CallDuration,
		FollowUpStatus: in.FollowUpStatus,
		CallStatus:     in.CallStatus,
		Note:           in.Note,
	})
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs)
	}

	interaction := &domain.Interaction{
		CustomerID:     in.CustomerID,
		AgentID:        in.AgentID,
		FollowUpStatus: domain.FollowUpPending,
		CallStatus:     domain.CallStatusCalled,
		Note:           in.Note,
	}
	if in.CallDuration != nil {
		interaction.CallDuration = *in.CallDuration
	}
	if in.FollowUpStatus != "" {
		interaction.FollowUpStatus = domain.FollowUpStatus(in.FollowUpStatus)
	}
	if in.CallStatus != "" {
		interaction.CallStatus = domain.CallStatus(in.CallStatus)
	}
	if in.Date != nil {
		interaction.Date = *in.Date
	}

	if err := s.interactions.Create(ctx, interaction); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Delete(ctx,
		cache.InteractionsByAgentKey(interaction.AgentID),
		cache.InteractionsWithDetailsKey,
	)
	s.publish(ctx, interaction.AgentID, events.Event{
		Type: events.EventInteractionRecorded,
		Payload: events.InteractionRecordedPayload{
			InteractionID:  interaction.ID,
			CustomerID:     interaction.CustomerID,
			AgentID:        interaction.AgentID,
			CallStatus:     interaction.CallStatus,
			FollowUpStatus: interaction.FollowUpStatus,
		},
	})
	return interaction, nil
}

// GetByID returns nil without error when the interaction does not exist.
func (s *InteractionService) GetByID(ctx context.Context, id string) (*domain.Interaction, error) {
	interaction, err := s.interactions.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return interaction, nil
}

// ListByAgent memoizes the per-agent listing for one minute.
func (s *InteractionService) ListByAgent(ctx context.Context, agentID string) ([]domain.Interaction, error) {
	key := cache.InteractionsByAgentKey(agentID)
	var cached []domain.Interaction
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	interactions, err := s.interactions.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, key, interactions, cache.InteractionsByAgentTTL)
	return interactions, nil
}

// ListByCustomer returns a customer's history, most recent first.
func (s *InteractionService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Interaction, error) {
	interactions, err := s.interactions.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return interactions, nil
}

// ListAll returns every interaction, most recent first.
func (s *InteractionService) ListAll(ctx context.Context) ([]domain.Interaction, error) {
	interactions, err := s.interactions.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return interactions, nil
}

// ListWithDetails memoizes the denormalized supervisor view for one minute.
func (s *InteractionService) ListWithDetails(ctx context.Context) ([]domain.InteractionDetail, error) {
	var cached []domain.InteractionDetail
	if s.cache.Get(ctx, cache.InteractionsWithDetailsKey, &cached) {
		return cached, nil
	}

	details, err := s.interactions.ListWithDetails(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, cache.InteractionsWithDetailsKey, details, cache.InteractionsWithDetailsTTL)
	return details, nil
}

// Comment sets the supervisor comment, the only field interactions allow
// updating in place. Returns nil without error when the interaction does
// not exist.
func (s *InteractionService) Comment(ctx context.Context, id, comment, actorID string) (*domain.Interaction, error) {
	if len(comment) > 1000 {
		return nil, apperrors.NewValidationError([]string{"Supervisor comment must be less than 1000 characters"})
	}

	interaction, err := s.interactions.SetSupervisorComment(ctx, id, comment)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Delete(ctx, cache.InteractionsWithDetailsKey)
	s.publish(ctx, actorID, events.Event{
		Type: events.EventInteractionCommented,
		Payload: events.InteractionCommentedPayload{
			InteractionID:  interaction.ID,
			CommentPreview: preview(comment, 80),
		},
	})
	return interaction, nil
}

// Delete removes an interaction and invalidates the caches it fed.
// Reports false when nothing was deleted.
func (s *InteractionService) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := s.interactions.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperrors.MapError(err)
	}

	deleted, err := s.interactions.Delete(ctx, id)
	if err != nil {
		return false, apperrors.MapError(err)
	}
	if deleted {
		s.cache.Delete(ctx,
			cache.InteractionsByAgentKey(existing.AgentID),
			cache.InteractionsWithDetailsKey,
		)
	}
	return deleted, nil
}

// preview truncates to at most max bytes without splitting a rune.
func preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func (s *InteractionService) publish(ctx context.Context, actorID string, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.ActorID = actorID
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
