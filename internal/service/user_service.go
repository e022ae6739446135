package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-portal/internal/domain"
	"github.com/spec-kit/complaint-portal/internal/events"
	"github.com/spec-kit/complaint-portal/internal/repository"
	apperrors "github.com/spec-kit/complaint-portal/pkg/util/errorutil"
)

// UserService backs the admin user directory and role management.
type UserService struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
}

// UserDependencies bundles requirements for the user service.
type UserDependencies struct {
	UserRepo       repository.UserRepository
	DepartmentRepo repository.DepartmentRepository
	Dispatcher     events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:       deps.UserRepo,
		departments: deps.DepartmentRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// List returns every user account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// UpdateRole grants or revokes the department-head capability. A head must
// always reference a department; the supplied department must exist.
func (s *UserService) UpdateRole(ctx context.Context, actorID, userID int64, isDepartmentHead bool, departmentID *int64) (*domain.User, error) {
	if isDepartmentHead && departmentID == nil {
		return nil, apperrors.NewValidationError("department head requires a department", []apperrors.FieldError{{
			Field:   "departmentId",
			Message: "required when isDepartmentHead is true",
		}})
	}
	if departmentID != nil {
		if _, err := s.departments.GetByID(ctx, *departmentID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("department")
			}
			return nil, apperrors.MapError(err)
		}
	}

	user, err := s.users.UpdateRole(ctx, userID, isDepartmentHead, departmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRoleChanged,
			ActorID:   actorID,
			Timestamp: time.Now(),
			Payload: events.UserRoleChangedPayload{
				UserID:           user.ID,
				IsDepartmentHead: user.IsDepartmentHead,
				DepartmentID:     user.DepartmentID,
			},
		})
	}
	return user, nil
}
