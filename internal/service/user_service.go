package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sales-tracker/internal/auth"
	"github.com/spec-kit/sales-tracker/internal/domain"
	"github.com/spec-kit/sales-tracker/internal/events"
	"github.com/spec-kit/sales-tracker/internal/repository"
	"github.com/spec-kit/sales-tracker/internal/validation"
	apperrors "github.com/spec-kit/sales-tracker/pkg/util/errorutil"
)

// UserService owns account mutations. Password hashes never leave this
// layer unhashed; handlers strip them from responses.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, bcryptCost int) *UserService {
	return &UserService{users: users, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// UserCreateInput describes an admin-created account.
type UserCreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UserUpdateInput carries optional account updates.
type UserUpdateInput struct {
	Name     *string
	Email    *string
	Role     *domain.Role
	Password *string
}

// Create validates and persists a new account.
func (s *UserService) Create(ctx context.Context, in UserCreateInput) (*domain.User, error) {
	errs := validation.ValidateUser(validation.UserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     string(in.Role),
	})
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewBadRequest("User with this email already exists")
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, user.ID, events.Event{
		Type:    events.EventUserCreated,
		Payload: events.UserCreatedPayload{UserID: user.ID, Role: user.Role},
	})
	return user, nil
}

// GetByID returns nil without error when the account does not exist.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// GetByEmail returns nil without error when the account does not exist.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Update applies partial updates, rehashing the password when supplied.
// Returns nil without error when the account does not exist.
func (s *UserService) Update(ctx context.Context, id string, in UserUpdateInput) (*domain.User, error) {
	update := repository.UserUpdate{
		Name:  in.Name,
		Email: in.Email,
		Role:  in.Role,
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, apperrors.NewValidationError([]string{"Invalid role"})
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, apperrors.NewValidationError([]string{"Password must be at least 6 characters"})
		}
		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		update.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, id, update)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes an account, reporting whether a row was deleted. The
// self-deletion guard lives at the route layer with the rest of RBAC.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, apperrors.MapError(err)
	}
	return deleted, nil
}

func (s *UserService) publish(ctx context.Context, actorID string, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.ActorID = actorID
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
