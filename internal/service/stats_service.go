package service

import (
	"context"

	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/repository"
	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

// StatsService exposes the per-agent rollups for supervisor and admin
// dashboards. Reads go straight to the store; the rollups are cheap and
// staleness here would be more confusing than useful.
type StatsService struct {
	stats repository.StatsRepository
}

// NewStatsService builds the service.
func NewStatsService(stats repository.StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

// CustomerCountByAgent reports customers owned per agent, zero included.
func (s *StatsService) CustomerCountByAgent(ctx context.Context) ([]domain.AgentCustomerCount, error) {
	counts, err := s.stats.CustomerCountByAgent(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}

// PendingFollowUpsByAgent reports, per agent, how many of their customers'
// latest interactions still need follow-up.
func (s *StatsService) PendingFollowUpsByAgent(ctx context.Context) ([]domain.AgentPendingFollowUps, error) {
	counts, err := s.stats.PendingFollowUpsByAgent(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}
