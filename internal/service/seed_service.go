package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/sales-tracker/internal/auth"
	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/repository"
	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

// ErrAlreadySeeded signals that bootstrap data already exists.
var ErrAlreadySeeded = errors.New("database already initialized")

// SeedService bootstraps an empty deployment with one account per role and
// a little sample pipeline, mirroring what a fresh install needs to log in
// at all.
type SeedService struct {
	users        repository.UserRepository
	customers    repository.CustomerRepository
	interactions repository.InteractionRepository
	logger       *zap.Logger
	bcryptCost   int
}

// SeedDependencies bundles repositories for seeding.
type SeedDependencies struct {
	UserRepo        repository.UserRepository
	CustomerRepo    repository.CustomerRepository
	InteractionRepo repository.InteractionRepository
	Logger          *zap.Logger
	BcryptCost      int
}

// NewSeedService builds the service.
func NewSeedService(deps SeedDependencies) *SeedService {
	return &SeedService{
		users:        deps.UserRepo,
		customers:    deps.CustomerRepo,
		interactions: deps.InteractionRepo,
		logger:       deps.Logger,
		bcryptCost:   deps.BcryptCost,
	}
}

// SeedResult reports what was created.
type SeedResult struct {
	Users     []domain.User     `json:"users"`
	Customers []domain.Customer `json:"customers"`
}

// Seed populates sample data, refusing when any user already exists.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	existing, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(existing) > 0 {
		return nil, ErrAlreadySeeded
	}

	accounts := []struct {
		name     string
		email    string
		password string
		role     domain.Role
	}{
		{"Admin User", "admin@example.com", "admin123", domain.RoleAdmin},
		{"Supervisor User", "supervisor@example.com", "supervisor123", domain.RoleSupervisor},
		{"Agent User", "agent@example.com", "agent123", domain.RoleAgent},
	}

	result := &SeedResult{}
	var agent *domain.User
	for _, account := range accounts {
		hash, err := auth.HashPassword(account.password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		user := &domain.User{
			Name:         account.name,
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, apperrors.MapError(err)
		}
		if user.Role == domain.RoleAgent {
			agent = user
		}
		result.Users = append(result.Users, *user)
	}

	samples := []struct {
		customer    domain.Customer
		interaction domain.Interaction
	}{
		{
			customer: domain.Customer{
				Name:         "John Doe",
				ContactTitle: "CEO",
				Email:        "john@example.com",
				Phone:        "+1234567890",
			},
			interaction: domain.Interaction{
				CallDuration:   300,
				FollowUpStatus: domain.FollowUpCompleted,
				CallStatus:     domain.CallStatusCalled,
				Note:           "Discussed new product features",
			},
		},
		{
			customer: domain.Customer{
				Name:         "Jane Smith",
				ContactTitle: "Marketing Director",
				Email:        "jane@example.com",
				Phone:        "+1234567891",
			},
			interaction: domain.Interaction{
				CallDuration:   180,
				FollowUpStatus: domain.FollowUpPending,
				CallStatus:     domain.CallStatusVoicemail,
				Note:           "Needs to review proposal",
			},
		},
	}

	for _, sample := range samples {
		customer := sample.customer
		customer.AgentID = agent.ID
		if err := s.customers.Create(ctx, &customer); err != nil {
			return nil, apperrors.MapError(err)
		}
		result.Customers = append(result.Customers, customer)

		interaction := sample.interaction
		interaction.CustomerID = customer.ID
		interaction.AgentID = agent.ID
		// Sample history is best-effort; a failed interaction write leaves
		// the customer in place, matching the tolerated partial-failure mode.
		if err := s.interactions.Create(ctx, &interaction); err != nil {
			s.logger.Warn("seed interaction failed", zap.Error(err))
		}
	}

	s.logger.Info("database seeded",
		zap.Int("users", len(result.Users)),
		zap.Int("customers", len(result.Customers)))
	return result, nil
}
