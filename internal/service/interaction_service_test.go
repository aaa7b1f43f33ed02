package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/spec-kit/sales-tracker/internal/cache"
	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/events"
)

func newInteractionService(repo *mockInteractionRepo, c cache.Cache, d events.Dispatcher) *InteractionService {
	return NewInteractionService(InteractionDependencies{
		InteractionRepo: repo,
		Cache:           c,
		Dispatcher:      d,
	})
}

func TestInteractionServiceRecordAppliesDefaults(t *testing.T) {
	// Arrange
	var stored *domain.Interaction
	repo := &mockInteractionRepo{
		CreateFn: func(_ context.Context, interaction *domain.Interaction) error {
			interaction.ID = "int-1"
			stored = interaction
			return nil
		},
	}
	mem := cache.NewMemoryCacheWithClock(time.Now)
	ctx := context.Background()
	mem.Set(ctx, cache.InteractionsByAgentKey("agent-1"), []domain.Interaction{}, time.Minute)
	mem.Set(ctx, cache.InteractionsWithDetailsKey, []domain.InteractionDetail{}, time.Minute)
	dispatcher := &recordingDispatcher{}
	svc := newInteractionService(repo, mem, dispatcher)

	// Act
	interaction, err := svc.Record(ctx, InteractionRecordInput{
		CustomerID: "cust-1",
		AgentID:    "agent-1",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.FollowUpStatus != domain.FollowUpPending {
		t.Fatalf("follow-up default missing: %+v", stored)
	}
	if stored.CallStatus != domain.CallStatusCalled {
		t.Fatalf("call status default missing: %+v", stored)
	}
	if stored.CallDuration != 0 {
		t.Fatalf("duration default missing: %+v", stored)
	}
	if interaction.ID != "int-1" {
		t.Fatalf("generated id not propagated: %+v", interaction)
	}

	var stale []domain.Interaction
	if mem.Get(ctx, cache.InteractionsByAgentKey("agent-1"), &stale) {
		t.Fatal("agent listing cache not invalidated")
	}
	var staleDetails []domain.InteractionDetail
	if mem.Get(ctx, cache.InteractionsWithDetailsKey, &staleDetails) {
		t.Fatal("details cache not invalidated")
	}

	published := dispatcher.published()
	if len(published) != 1 || published[0].Type != events.EventInteractionRecorded {
		t.Fatalf("expected one interaction-recorded event, got %+v", published)
	}
}

func TestInteractionServiceRecordKeepsExplicitValues(t *testing.T) {
	// Arrange
	var stored *domain.Interaction
	repo := &mockInteractionRepo{
		CreateFn: func(_ context.Context, interaction *domain.Interaction) error {
			stored = interaction
			return nil
		},
	}
	svc := newInteractionService(repo, cache.NewMemoryCacheWithClock(time.Now), nil)
	duration := 420
	date := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	// Act
	_, err := svc.Record(context.Background(), InteractionRecordInput{
		CustomerID:     "cust-1",
		AgentID:        "agent-1",
		CallDuration:   &duration,
		FollowUpStatus: "completed",
		CallStatus:     "voicemail",
		Note:           "left a message",
		Date:           &date,
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.CallDuration != 420 || stored.FollowUpStatus != domain.FollowUpCompleted ||
		stored.CallStatus != domain.CallStatusVoicemail || !stored.Date.Equal(date) {
		t.Fatalf("explicit values not preserved: %+v", stored)
	}
}

func TestInteractionServiceRecordRejectsNegativeDuration(t *testing.T) {
	svc := newInteractionService(&mockInteractionRepo{}, cache.NewMemoryCacheWithClock(time.Now), nil)
	negative := -5

	_, err := svc.Record(context.Background(), InteractionRecordInput{
		CustomerID:   "cust-1",
		AgentID:      "agent-1",
		CallDuration: &negative,
	})

	de := domainErrorOf(t, err)
	if len(de.Errors) != 1 || de.Errors[0] != "Call duration must be a positive number" {
		t.Fatalf("got %+v", de.Errors)
	}
}

func TestInteractionServiceListByAgentMemoizes(t *testing.T) {
	// Arrange
	calls := 0
	repo := &mockInteractionRepo{
		ListByAgentFn: func(_ context.Context, agentID string) ([]domain.Interaction, error) {
			calls++
			return []domain.Interaction{{ID: "int-1", AgentID: agentID}}, nil
		},
	}
	svc := newInteractionService(repo, cache.NewMemoryCacheWithClock(time.Now), nil)
	ctx := context.Background()

	// Act
	if _, err := svc.ListByAgent(ctx, "agent-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ListByAgent(ctx, "agent-1")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("repo hit %d times, want 1", calls)
	}
	if len(second) != 1 || second[0].ID != "int-1" {
		t.Fatalf("cached read mismatch: %+v", second)
	}
}

func TestInteractionServiceCommentInvalidatesDetails(t *testing.T) {
	// Arrange
	comment := "good handling of the objection"
	repo := &mockInteractionRepo{
		SetSupervisorCommentFn: func(_ context.Context, id, got string) (*domain.Interaction, error) {
			return &domain.Interaction{ID: id, SupervisorComment: &got}, nil
		},
	}
	mem := cache.NewMemoryCacheWithClock(time.Now)
	ctx := context.Background()
	mem.Set(ctx, cache.InteractionsWithDetailsKey, []domain.InteractionDetail{}, time.Minute)
	dispatcher := &recordingDispatcher{}
	svc := newInteractionService(repo, mem, dispatcher)

	// Act
	interaction, err := svc.Comment(ctx, "int-1", comment, "super-1")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if interaction.SupervisorComment == nil || *interaction.SupervisorComment != comment {
		t.Fatalf("got %+v", interaction)
	}

	var staleDetails []domain.InteractionDetail
	if mem.Get(ctx, cache.InteractionsWithDetailsKey, &staleDetails) {
		t.Fatal("details cache not invalidated")
	}
	published := dispatcher.published()
	if len(published) != 1 || published[0].Type != events.EventInteractionCommented {
		t.Fatalf("expected one interaction-commented event, got %+v", published)
	}
}

func TestInteractionServiceCommentTooLong(t *testing.T) {
	svc := newInteractionService(&mockInteractionRepo{}, cache.NewMemoryCacheWithClock(time.Now), nil)

	_, err := svc.Comment(context.Background(), "int-1", strings.Repeat("c", 1001), "super-1")

	de := domainErrorOf(t, err)
	if len(de.Errors) != 1 || de.Errors[0] != "Supervisor comment must be less than 1000 characters" {
		t.Fatalf("got %+v", de.Errors)
	}
}

func TestInteractionServiceCommentNotFound(t *testing.T) {
	svc := newInteractionService(&mockInteractionRepo{}, cache.NewMemoryCacheWithClock(time.Now), nil)

	interaction, err := svc.Comment(context.Background(), "absent", "fine", "super-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if interaction != nil {
		t.Fatalf("expected nil interaction, got %+v", interaction)
	}
}

func TestInteractionServiceDeleteInvalidatesCaches(t *testing.T) {
	// Arrange
	repo := &mockInteractionRepo{
		GetByIDFn: func(_ context.Context, id string) (*domain.Interaction, error) {
			return &domain.Interaction{ID: id, AgentID: "agent-1"}, nil
		},
		DeleteFn: func(_ context.Context, _ string) (bool, error) {
			return true, nil
		},
	}
	mem := cache.NewMemoryCacheWithClock(time.Now)
	ctx := context.Background()
	mem.Set(ctx, cache.InteractionsByAgentKey("agent-1"), []domain.Interaction{}, time.Minute)
	mem.Set(ctx, cache.InteractionsWithDetailsKey, []domain.InteractionDetail{}, time.Minute)
	svc := newInteractionService(repo, mem, nil)

	// Act
	deleted, err := svc.Delete(ctx, "int-1")

	// Assert
	if err != nil || !deleted {
		t.Fatalf("deleted=%v err=%v", deleted, err)
	}
	var stale []domain.Interaction
	if mem.Get(ctx, cache.InteractionsByAgentKey("agent-1"), &stale) {
		t.Fatal("agent listing cache not invalidated")
	}
	var staleDetails []domain.InteractionDetail
	if mem.Get(ctx, cache.InteractionsWithDetailsKey, &staleDetails) {
		t.Fatal("details cache not invalidated")
	}
}

func TestInteractionServiceDeleteNotFound(t *testing.T) {
	svc := newInteractionService(&mockInteractionRepo{}, cache.NewMemoryCacheWithClock(time.Now), nil)

	deleted, err := svc.Delete(context.Background(), "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Fatal("expected not deleted")
	}
}

func TestPreviewCutsOnRuneBoundary(t *testing.T) {
	// 27 three-byte runes: 81 bytes, and byte 80 falls mid-rune.
	long := strings.Repeat("€", 27)

	got := preview(long, 80)

	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if got != strings.Repeat("€", 26) {
		t.Fatalf("got %d bytes, want 78", len(got))
	}
	if short := preview("short", 80); short != "short" {
		t.Fatalf("short input altered: %q", short)
	}
}
